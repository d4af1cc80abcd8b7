package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk-backend/models"
	dbtest "quotedesk-backend/testutil"
	"quotedesk-backend/utils"
)

func TestNextAppointment(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx := context.Background()
	customer := dbtest.CreateCustomer(t, db, "Kai", "")
	other := dbtest.CreateCustomer(t, db, "Lee", "")

	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)
	today := utils.BeginningOfDay(now)

	dbtest.CreateAppointment(t, db, customer.ID, today.AddDate(0, 0, -1), "09:00", models.AppointmentScheduled)
	dbtest.CreateAppointment(t, db, customer.ID, today.AddDate(0, 0, 2), "08:00", models.AppointmentScheduled)
	dbtest.CreateAppointment(t, db, customer.ID, today, "11:00", models.AppointmentCancelled)
	want := dbtest.CreateAppointment(t, db, customer.ID, today, "14:00", models.AppointmentScheduled)
	dbtest.CreateAppointment(t, db, customer.ID, today, "16:00", models.AppointmentScheduled)
	dbtest.CreateAppointment(t, db, other.ID, today, "07:00", models.AppointmentScheduled)

	next, err := NextAppointment(ctx, db, customer.ID, now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, want.ID, next.ID)
}

func TestNextAppointment_NoneScheduled(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx := context.Background()
	customer := dbtest.CreateCustomer(t, db, "Max", "")
	now := time.Now()

	dbtest.CreateAppointment(t, db, customer.ID, utils.BeginningOfDay(now).AddDate(0, 0, 3), "10:00", models.AppointmentCompleted)

	next, err := NextAppointment(ctx, db, customer.ID, now)
	require.NoError(t, err)
	assert.Nil(t, next)

	_, err = NextAppointment(ctx, db, customer.ID+50, now)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestValidateAppointment(t *testing.T) {
	appt := models.Appointment{Time: "9:05"}
	require.NoError(t, ValidateAppointment(&appt))
	assert.Equal(t, "09:05", appt.Time)
	assert.Equal(t, models.DefaultAppointmentDuration, appt.Duration)
	assert.Equal(t, models.AppointmentScheduled, appt.Status)

	bad := models.Appointment{Time: "10:00", Status: "Postponed"}
	assert.True(t, utils.IsCode(ValidateAppointment(&bad), utils.CodeInvalidPayload))

	badClock := models.Appointment{Time: "25:00"}
	assert.True(t, utils.IsCode(ValidateAppointment(&badClock), utils.CodeInvalidPayload))

	negative := models.Appointment{Time: "10:00", Duration: -5}
	assert.True(t, utils.IsCode(ValidateAppointment(&negative), utils.CodeInvalidPayload))
}
