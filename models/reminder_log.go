// models/reminder_log.go
package models

import (
	"time"
)

const (
	ReminderSent   = "sent"
	ReminderFailed = "failed"
)

type ReminderLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uint      `gorm:"index;not null" json:"appointmentId"`
	CustomerID    uint      `gorm:"index;not null" json:"customerId"`
	Channel       string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	Message       string    `gorm:"type:text" json:"message"`
	Status        string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage  string    `gorm:"type:text" json:"errorMessage"`
	SentAt        time.Time `json:"sentAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&Customer{},
		&Service{},
		&Quote{},
		&QuoteItem{},
		&Appointment{},
		&ReminderLog{},
	}
}
