// services/quote_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"quotedesk-backend/config"
	"quotedesk-backend/metrics"
	"quotedesk-backend/models"
	"quotedesk-backend/utils"
)

// QuoteLine is one requested (service, quantity) pair. Values have already
// been coerced to integers; zero means the input was missing or unusable.
type QuoteLine struct {
	ServiceID int64
	Qty       int64
}

type CreateQuoteRequest struct {
	CustomerID int64
	Label      string
	Items      []QuoteLine
}

// CreatedQuote is the result of pricing a quote request.
type CreatedQuote struct {
	ID    uint            `json:"id"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
	Items int             `json:"-"`
}

type UpdateQuoteRequest struct {
	Label  *string
	Status *string
}

type QuoteService struct {
	db *gorm.DB
}

func NewQuoteService(db *gorm.DB) *QuoteService {
	return &QuoteService{db: db}
}

// Create prices and persists a quote. Lines with a missing service id, a
// quantity below one, or an unknown service are skipped without error; the
// quote header is created even if every line is skipped.
func (s *QuoteService) Create(ctx context.Context, req CreateQuoteRequest) (*CreatedQuote, error) {
	label := strings.TrimSpace(req.Label)
	if req.CustomerID <= 0 || label == "" || len(req.Items) == 0 {
		return nil, utils.InvalidPayload("Payload must include customer (ID), non-empty items array, and a quote label.")
	}

	var created *CreatedQuote
	dropped := map[string]int{}

	err := config.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Select("id").First(&customer, req.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.InvalidPayload("Customer not found")
			}
			return fmt.Errorf("loading customer %d: %w", req.CustomerID, err)
		}

		quote := models.Quote{
			Label:      label,
			CustomerID: customer.ID,
			Status:     models.QuoteStatusPending,
		}
		if err := tx.Create(&quote).Error; err != nil {
			return fmt.Errorf("creating quote: %w", err)
		}

		total := decimal.Zero
		count := 0
		for _, line := range req.Items {
			if line.ServiceID <= 0 || line.Qty < 1 {
				dropped[metrics.DropInvalidLine]++
				continue
			}

			var service models.Service
			if err := tx.First(&service, line.ServiceID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					dropped[metrics.DropUnknownService]++
					continue
				}
				return fmt.Errorf("loading service %d: %w", line.ServiceID, err)
			}

			qty := int(line.Qty)
			item := models.QuoteItem{
				QuoteID:   quote.ID,
				ServiceID: service.ID,
				Qty:       qty,
				UnitCost:  service.Cost,
				LineTotal: models.LineTotal(service.Cost, qty),
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("creating quote item: %w", err)
			}

			total = total.Add(item.LineTotal)
			count++
		}

		created = &CreatedQuote{ID: quote.ID, Label: quote.Label, Total: total, Items: count}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.QuotesCreated.Inc()
	for reason, n := range dropped {
		metrics.QuoteLinesDropped.WithLabelValues(reason).Add(float64(n))
	}

	event := zerolog.Ctx(ctx).Info().
		Uint("quote_id", created.ID).
		Int64("customer_id", req.CustomerID).
		Int("items", created.Items).
		Str("total", created.Total.StringFixed(2))
	if len(dropped) > 0 {
		event = event.Interface("dropped", dropped)
	}
	event.Msg("quote created")

	return created, nil
}

func preloadQuote(db *gorm.DB) *gorm.DB {
	return db.
		Preload("QuoteItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("quote_items.id ASC")
		}).
		Preload("QuoteItems.Service").
		Preload("Customer")
}

// List returns every quote, newest first, with items, services and customer.
func (s *QuoteService) List(ctx context.Context) ([]models.Quote, error) {
	var quotes []models.Quote
	if err := preloadQuote(s.db.WithContext(ctx)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	for i := range quotes {
		finalizeQuote(&quotes[i])
	}
	return quotes, nil
}

func (s *QuoteService) Get(ctx context.Context, id uint) (*models.Quote, error) {
	var quote models.Quote
	if err := preloadQuote(s.db.WithContext(ctx)).First(&quote, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Quote not found")
		}
		return nil, fmt.Errorf("loading quote %d: %w", id, err)
	}

	finalizeQuote(&quote)
	return &quote, nil
}

// Update changes the label and/or status of a quote. Items and totals are
// immutable.
func (s *QuoteService) Update(ctx context.Context, id uint, req UpdateQuoteRequest) (*models.Quote, error) {
	updates := map[string]any{}
	if req.Label != nil {
		label := strings.TrimSpace(*req.Label)
		if label == "" {
			return nil, utils.InvalidPayload("Quote label cannot be empty")
		}
		updates["label"] = label
	}
	if req.Status != nil {
		status := models.QuoteStatus(strings.TrimSpace(*req.Status))
		if !status.Valid() {
			return nil, utils.InvalidPayload("Status must be one of Pending, Approved, Rejected")
		}
		updates["status"] = string(status)
	}

	var quote models.Quote
	if err := s.db.WithContext(ctx).First(&quote, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Quote not found")
		}
		return nil, fmt.Errorf("loading quote %d: %w", id, err)
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&quote).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("updating quote %d: %w", id, err)
		}
	}

	return s.Get(ctx, id)
}

// Delete removes one quote and its items.
func (s *QuoteService) Delete(ctx context.Context, id uint) error {
	return config.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.Select("id").First(&quote, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Quote not found")
			}
			return fmt.Errorf("loading quote %d: %w", id, err)
		}
		if err := tx.Where("quote_id = ?", id).Delete(&models.QuoteItem{}).Error; err != nil {
			return fmt.Errorf("deleting items of quote %d: %w", id, err)
		}
		if err := tx.Delete(&models.Quote{}, id).Error; err != nil {
			return fmt.Errorf("deleting quote %d: %w", id, err)
		}
		return nil
	})
}

// Clear removes every quote and quote item.
func (s *QuoteService) Clear(ctx context.Context) error {
	return config.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.QuoteItem{}).Error; err != nil {
			return fmt.Errorf("clearing quote items: %w", err)
		}
		if err := all.Delete(&models.Quote{}).Error; err != nil {
			return fmt.Errorf("clearing quotes: %w", err)
		}
		return nil
	})
}

func finalizeQuote(q *models.Quote) {
	if q.QuoteItems == nil {
		q.QuoteItems = []models.QuoteItem{}
	}
	q.ComputeTotal()
}
