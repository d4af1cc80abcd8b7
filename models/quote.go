package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Totals go over the wire as JSON numbers, like the rest of the payload.
	decimal.MarshalJSONWithoutQuotes = true
}

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "Pending"
	QuoteStatusApproved QuoteStatus = "Approved"
	QuoteStatusRejected QuoteStatus = "Rejected"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusApproved, QuoteStatusRejected:
		return true
	}
	return false
}

type Quote struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Label      string      `gorm:"not null" json:"label"`
	CustomerID uint        `gorm:"index;not null" json:"customerId"`
	Status     QuoteStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Customer   *Customer   `json:"customer,omitempty"`
	QuoteItems []QuoteItem `gorm:"foreignKey:QuoteID" json:"quoteItems"`

	// Total is never persisted; see ComputeTotal.
	Total decimal.Decimal `gorm:"-" json:"total"`
}

// ComputeTotal sums the frozen line totals of the loaded items and stores the
// result on Total.
func (q *Quote) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range q.QuoteItems {
		total = total.Add(item.LineTotal)
	}
	q.Total = total
	return total
}

// QuoteItem keeps a snapshot of the unit cost at creation time. LineTotal is
// never recomputed from the current service cost.
type QuoteItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	QuoteID   uint            `gorm:"index;not null" json:"quoteId"`
	ServiceID uint            `gorm:"index;not null" json:"serviceId"`
	Qty       int             `gorm:"not null" json:"qty"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitCost"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"lineTotal"`

	CreatedAt time.Time `json:"createdAt"`

	Service *Service `json:"service,omitempty"`
}

func LineTotal(cost decimal.Decimal, qty int) decimal.Decimal {
	return cost.Mul(decimal.NewFromInt(int64(qty)))
}
