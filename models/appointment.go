package models

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "Scheduled"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
	AppointmentNoShow    AppointmentStatus = "No-Show"
)

const DefaultAppointmentDuration = 60

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

type Appointment struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	CustomerID uint              `gorm:"index;not null" json:"customerId"`
	Date       time.Time         `gorm:"index;not null" json:"date"`
	Time       string            `gorm:"type:varchar(5);not null" json:"time"` // HH:MM
	Duration   int               `gorm:"not null;default:60" json:"duration"`  // in minutes
	Notes      string            `json:"notes"`
	Status     AppointmentStatus `gorm:"type:varchar(20);not null;default:'Scheduled'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Customer *Customer `json:"customer,omitempty"`
}
