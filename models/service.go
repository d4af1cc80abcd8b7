package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"uniqueIndex;not null" json:"name"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
