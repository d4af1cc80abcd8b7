// Package testutil holds database fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quotedesk-backend/config"
	"quotedesk-backend/models"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DBConfig{
		Driver:       config.DriverSQLite,
		URL:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()),
		MaxOpenConns: 1,
	}
	db, err := config.OpenDB(cfg)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(context.Background(), db, config.DriverSQLite))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func CreateCustomer(t testing.TB, db *gorm.DB, name, phone string) models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, Phone: phone}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func CreateService(t testing.TB, db *gorm.DB, name, cost string) models.Service {
	t.Helper()
	service := models.Service{Name: name, Cost: decimal.RequireFromString(cost)}
	require.NoError(t, db.Create(&service).Error)
	return service
}

func CreateAppointment(t testing.TB, db *gorm.DB, customerID uint, date time.Time, clock string, status models.AppointmentStatus) models.Appointment {
	t.Helper()
	appt := models.Appointment{
		CustomerID: customerID,
		Date:       date,
		Time:       clock,
		Duration:   models.DefaultAppointmentDuration,
		Status:     status,
	}
	require.NoError(t, db.Create(&appt).Error)
	return appt
}
