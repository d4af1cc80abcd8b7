// services/cascade.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"quotedesk-backend/config"
	"quotedesk-backend/models"
	"quotedesk-backend/utils"
)

// DeleteCustomer removes a customer together with its quotes, quote items,
// appointments and reminder logs. Either everything goes or nothing does.
func DeleteCustomer(ctx context.Context, db *gorm.DB, id uint) error {
	err := config.WithTx(ctx, db, func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Select("id").First(&customer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Customer not found")
			}
			return fmt.Errorf("loading customer %d: %w", id, err)
		}

		quoteIDs := tx.Model(&models.Quote{}).Select("id").Where("customer_id = ?", id)
		if err := tx.Where("quote_id IN (?)", quoteIDs).Delete(&models.QuoteItem{}).Error; err != nil {
			return fmt.Errorf("deleting quote items of customer %d: %w", id, err)
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Quote{}).Error; err != nil {
			return fmt.Errorf("deleting quotes of customer %d: %w", id, err)
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.ReminderLog{}).Error; err != nil {
			return fmt.Errorf("deleting reminder logs of customer %d: %w", id, err)
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return fmt.Errorf("deleting appointments of customer %d: %w", id, err)
		}
		if err := tx.Delete(&models.Customer{}, id).Error; err != nil {
			return fmt.Errorf("deleting customer %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Uint("customer_id", id).Msg("customer deleted")
	return nil
}

// DeleteCatalogService removes a service and every quote item referencing it.
// Quotes that contained the service keep their remaining items, so their
// totals shrink.
func DeleteCatalogService(ctx context.Context, db *gorm.DB, id uint) error {
	var removed int64
	err := config.WithTx(ctx, db, func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.Select("id").First(&service, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Service not found")
			}
			return fmt.Errorf("loading service %d: %w", id, err)
		}

		result := tx.Where("service_id = ?", id).Delete(&models.QuoteItem{})
		if result.Error != nil {
			return fmt.Errorf("deleting quote items of service %d: %w", id, result.Error)
		}
		removed = result.RowsAffected

		if err := tx.Delete(&models.Service{}, id).Error; err != nil {
			return fmt.Errorf("deleting service %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Uint("service_id", id).
		Int64("quote_items_removed", removed).
		Msg("service deleted")
	return nil
}
