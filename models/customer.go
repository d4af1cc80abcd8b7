package models

import (
	"time"
)

type Customer struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
	Email   string `json:"email"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Quotes       []Quote       `gorm:"foreignKey:CustomerID" json:"quotes,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:CustomerID" json:"appointments,omitempty"`
}
