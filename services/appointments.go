// services/appointments.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"quotedesk-backend/models"
	"quotedesk-backend/utils"
)

// NextAppointment returns the earliest Scheduled appointment of a customer
// dated today or later, or nil if there is none.
func NextAppointment(ctx context.Context, db *gorm.DB, customerID uint, now time.Time) (*models.Appointment, error) {
	db = db.WithContext(ctx)

	var customer models.Customer
	if err := db.Select("id").First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Customer not found")
		}
		return nil, fmt.Errorf("loading customer %d: %w", customerID, err)
	}

	var scheduled []models.Appointment
	if err := db.
		Where("customer_id = ? AND status = ?", customerID, string(models.AppointmentScheduled)).
		Order("date ASC").
		Order("time ASC").
		Find(&scheduled).Error; err != nil {
		return nil, fmt.Errorf("listing appointments of customer %d: %w", customerID, err)
	}

	// Compared in Go: stored dates carry a zone offset that string ordering
	// in SQLite does not respect.
	today := utils.BeginningOfDay(now)
	var next *models.Appointment
	for i := range scheduled {
		a := &scheduled[i]
		if a.Date.Before(today) {
			continue
		}
		if next == nil || a.Date.Before(next.Date) || (a.Date.Equal(next.Date) && a.Time < next.Time) {
			next = a
		}
	}
	return next, nil
}

// ValidateAppointment normalizes clock, duration and status in place.
func ValidateAppointment(a *models.Appointment) error {
	clock, err := utils.NormalizeClock(a.Time)
	if err != nil {
		return utils.InvalidPayload("Time must be HH:MM")
	}
	a.Time = clock

	if a.Duration == 0 {
		a.Duration = models.DefaultAppointmentDuration
	}
	if a.Duration < 0 {
		return utils.InvalidPayload("Duration must be positive")
	}

	if a.Status == "" {
		a.Status = models.AppointmentScheduled
	}
	if !a.Status.Valid() {
		return utils.InvalidPayload("Status must be one of Scheduled, Completed, Cancelled, No-Show")
	}
	return nil
}
