// controllers/reminder.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"quotedesk-backend/config"
	"quotedesk-backend/models"
	"quotedesk-backend/services"
	"quotedesk-backend/utils"
)

const reminderLogLimit = 200

// ReminderController exposes the reminder log and a manual trigger for the
// daily sweep. svc is nil when no message provider is configured.
type ReminderController struct {
	svc *services.ReminderService
}

func NewReminderController(svc *services.ReminderService) *ReminderController {
	return &ReminderController{svc: svc}
}

// GetReminderLogs lists the most recent reminder attempts, optionally for one
// appointment or customer
func (rc *ReminderController) GetReminderLogs(c *gin.Context) {
	q := config.DB.WithContext(c.Request.Context()).Model(&models.ReminderLog{})

	for _, p := range []struct{ param, column string }{
		{"appointmentId", "appointment_id"},
		{"customerId", "customer_id"},
	} {
		raw := strings.TrimSpace(c.Query(p.param))
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+p.param)
			return
		}
		q = q.Where(p.column+" = ?", id)
	}

	var logs []models.ReminderLog
	if err := q.Order("sent_at DESC").Order("id DESC").Limit(reminderLogLimit).Find(&logs).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// RunReminders sends tomorrow's reminders immediately instead of waiting for
// the scheduler
func (rc *ReminderController) RunReminders(c *gin.Context) {
	if rc.svc == nil {
		utils.RespondError(c, utils.Conflict("Reminders are not configured"))
		return
	}

	result, err := rc.svc.SendDailyReminders(c.Request.Context(), time.Now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
