package config

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_URL", "")
	t.Setenv("AUTH_PASSWORD", "")
	t.Setenv("AUTH_PASSWORD_HASH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "file:quotedesk.db?_foreign_keys=1", cfg.DB.URL)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 200*time.Millisecond, cfg.App.SlowRequest)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:4000"}, cfg.App.CORSOrigins)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, "0 9 * * *", cfg.Reminder.Schedule)
	assert.False(t, cfg.App.IsProd())
}

func TestLoadValidation(t *testing.T) {
	t.Run("postgres needs a url", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_URL", "")
		_, err := Load()
		assert.EqualError(t, err, "DB_URL is required")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")
		_, err := Load()
		assert.ErrorContains(t, err, "unsupported DB_DRIVER")
	})

	t.Run("auth needs a secret", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("AUTH_PASSWORD", "letmein")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET is required")
	})

	t.Run("auth enabled", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("AUTH_PASSWORD", "letmein")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("JWT_EXPIRY_HOURS", "2")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Auth.Enabled())
		assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL())
	})
}

func TestTwilioConfigured(t *testing.T) {
	assert.False(t, TwilioConfig{}.Configured())
	assert.False(t, TwilioConfig{AccountSID: "AC1", AuthToken: "tok"}.Configured())
	assert.True(t, TwilioConfig{AccountSID: "AC1", AuthToken: "tok", WhatsAppNumber: "+15550000000"}.Configured())
}

type txProbe struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenDB(DBConfig{
		Driver:       DriverSQLite,
		URL:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&txProbe{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestWithTx(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db, func(tx *gorm.DB) error {
		return tx.Create(&txProbe{Name: "kept"}).Error
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = WithTx(ctx, db, func(tx *gorm.DB) error {
		require.NoError(t, tx.Create(&txProbe{Name: "dropped"}).Error)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.Panics(t, func() {
		_ = WithTx(ctx, db, func(tx *gorm.DB) error {
			require.NoError(t, tx.Create(&txProbe{Name: "panicked"}).Error)
			panic("boom")
		})
	})

	var names []string
	require.NoError(t, db.Model(&txProbe{}).Order("id").Pluck("name", &names).Error)
	assert.Equal(t, []string{"kept"}, names)
}

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	_, err := OpenDB(DBConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
