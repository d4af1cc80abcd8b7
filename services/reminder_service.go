// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"quotedesk-backend/config"
	"quotedesk-backend/metrics"
	"quotedesk-backend/models"
	"quotedesk-backend/utils"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// MessageSender delivers a text message and returns the provider message id.
type MessageSender interface {
	Send(to, from, body string) (string, error)
}

type TwilioSender struct {
	client *twilio.RestClient
}

func NewTwilioSender(cfg config.TwilioConfig) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
	}
}

func (t *TwilioSender) Send(to, from, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

type ReminderService struct {
	db       *gorm.DB
	sender   MessageSender
	twilio   config.TwilioConfig
	template string
}

func NewReminderService(db *gorm.DB, sender MessageSender, twilioCfg config.TwilioConfig, reminderCfg config.ReminderConfig) *ReminderService {
	return &ReminderService{
		db:       db,
		sender:   sender,
		twilio:   twilioCfg,
		template: reminderCfg.Template,
	}
}

// StartScheduler registers the daily sweep and starts the cron runner. The
// caller stops it on shutdown.
func (s *ReminderService) StartScheduler(ctx context.Context, schedule string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if _, err := s.SendDailyReminders(ctx, time.Now()); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("reminder sweep failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}

	c.Start()
	zerolog.Ctx(ctx).Info().Str("schedule", schedule).Msg("reminder scheduler started")
	return c, nil
}

type ReminderResult struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// SendDailyReminders messages every customer with a Scheduled appointment on
// the day after now. Appointments that already have a sent reminder, or whose
// customer has no phone, are skipped.
func (s *ReminderService) SendDailyReminders(ctx context.Context, now time.Time) (ReminderResult, error) {
	logger := zerolog.Ctx(ctx)
	db := s.db.WithContext(ctx)

	tomorrow := utils.BeginningOfDay(now).AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var candidates []models.Appointment
	if err := db.Preload("Customer").
		Where("status = ? AND date >= ?", string(models.AppointmentScheduled), tomorrow.AddDate(0, 0, -1)).
		Order("date ASC").
		Order("time ASC").
		Find(&candidates).Error; err != nil {
		return ReminderResult{}, fmt.Errorf("loading appointments: %w", err)
	}

	var result ReminderResult
	for i := range candidates {
		appt := &candidates[i]
		if appt.Date.Before(tomorrow) || !appt.Date.Before(dayAfter) {
			continue
		}
		if appt.Customer == nil || strings.TrimSpace(appt.Customer.Phone) == "" {
			result.Skipped++
			continue
		}

		var sent int64
		if err := db.Model(&models.ReminderLog{}).
			Where("appointment_id = ? AND status = ?", appt.ID, models.ReminderSent).
			Count(&sent).Error; err != nil {
			return result, fmt.Errorf("checking reminder log for appointment %d: %w", appt.ID, err)
		}
		if sent > 0 {
			result.Skipped++
			continue
		}

		if s.deliver(ctx, appt) {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	logger.Info().
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Msg("daily reminder processing completed")
	return result, nil
}

func (s *ReminderService) deliver(ctx context.Context, appt *models.Appointment) bool {
	logger := zerolog.Ctx(ctx)
	customer := appt.Customer
	phone := utils.NormalizePhone(customer.Phone)
	message := s.RenderMessage(customer.Name, appt)

	// WhatsApp for E.164 numbers when a WhatsApp sender exists, SMS otherwise
	channel, to, from := ChannelSMS, phone, s.twilio.PhoneNumber
	if strings.HasPrefix(phone, "+") && s.twilio.WhatsAppNumber != "" {
		channel = ChannelWhatsApp
		to = "whatsapp:" + phone
		from = "whatsapp:" + s.twilio.WhatsAppNumber
	}

	status, errorMsg := models.ReminderSent, ""
	sid, err := s.sender.Send(to, from, message)
	if err != nil {
		status, errorMsg = models.ReminderFailed, err.Error()
		logger.Warn().Err(err).Uint("appointment_id", appt.ID).Str("channel", channel).Msg("failed to send reminder")
	} else {
		logger.Info().Uint("appointment_id", appt.ID).Str("channel", channel).Str("sid", sid).Msg("reminder sent")
	}
	metrics.RemindersSent.WithLabelValues(status).Inc()

	reminderLog := models.ReminderLog{
		AppointmentID: appt.ID,
		CustomerID:    customer.ID,
		Channel:       channel,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		SentAt:        time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&reminderLog).Error; err != nil {
		logger.Error().Err(err).Uint("appointment_id", appt.ID).Msg("failed to log reminder")
	}

	return err == nil
}

// RenderMessage fills the [CustomerName], [Date] and [Time] placeholders.
func (s *ReminderService) RenderMessage(customerName string, appt *models.Appointment) string {
	return strings.NewReplacer(
		"[CustomerName]", customerName,
		"[Date]", appt.Date.In(time.Local).Format(utils.DateLayout),
		"[Time]", appt.Time,
	).Replace(s.template)
}
