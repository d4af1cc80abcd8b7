// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"quotedesk-backend/config"
	"quotedesk-backend/models"
	"quotedesk-backend/services"
	"quotedesk-backend/utils"
)

// CreateAppointmentInput defines the expected JSON structure for booking an
// appointment. Date is YYYY-MM-DD, Time is HH:MM.
type CreateAppointmentInput struct {
	CustomerID uint   `json:"customerId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Duration   int    `json:"duration" binding:"omitempty,min=1"`
	Notes      string `json:"notes"`
	Status     string `json:"status" binding:"omitempty,appointment_status"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Duration *int    `json:"duration" binding:"omitempty,min=1"`
	Notes    *string `json:"notes"`
	Status   *string `json:"status" binding:"omitempty,appointment_status"`
}

func scheduleOrder(db *gorm.DB) *gorm.DB {
	return db.Order("date ASC").Order("time ASC").Order("id ASC")
}

// CreateAppointment books an appointment for an existing customer
func CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if !bindJSON(c, &input) {
		return
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Date must be YYYY-MM-DD")
		return
	}

	db := config.DB.WithContext(c.Request.Context())

	var customer models.Customer
	if err := db.Select("id").First(&customer, input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondError(c, err)
		}
		return
	}

	appointment := models.Appointment{
		CustomerID: customer.ID,
		Date:       date,
		Time:       input.Time,
		Duration:   input.Duration,
		Notes:      input.Notes,
		Status:     models.AppointmentStatus(input.Status),
	}
	if err := services.ValidateAppointment(&appointment); err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := db.Create(&appointment).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists every appointment in schedule order
func GetAppointments(c *gin.Context) {
	var appointments []models.Appointment
	if err := scheduleOrder(config.DB.WithContext(c.Request.Context()).Preload("Customer")).
		Find(&appointments).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func findAppointment(c *gin.Context) (*models.Appointment, bool) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return nil, false
	}

	var appointment models.Appointment
	if err := config.DB.WithContext(c.Request.Context()).Preload("Customer").First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondError(c, err)
		}
		return nil, false
	}
	return &appointment, true
}

func GetAppointment(c *gin.Context) {
	appointment, ok := findAppointment(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// GetCustomerAppointments lists the appointments of one customer
func GetCustomerAppointments(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	db := config.DB.WithContext(c.Request.Context())

	var customer models.Customer
	if err := db.Select("id").First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondError(c, err)
		}
		return
	}

	var appointments []models.Appointment
	if err := scheduleOrder(db.Where("customer_id = ?", id)).Find(&appointments).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetNextAppointment returns the customer's next scheduled appointment, or
// null when there is none
func GetNextAppointment(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	next, err := services.NextAppointment(c.Request.Context(), config.DB, id, time.Now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, next)
}

// UpdateAppointment reschedules or changes the status of an appointment
func UpdateAppointment(c *gin.Context) {
	appointment, ok := findAppointment(c)
	if !ok {
		return
	}

	var input UpdateAppointmentInput
	if !bindJSON(c, &input) {
		return
	}

	if input.Date != nil {
		date, err := utils.ParseDate(*input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Date must be YYYY-MM-DD")
			return
		}
		appointment.Date = date
	}
	if input.Time != nil {
		appointment.Time = *input.Time
	}
	if input.Duration != nil {
		appointment.Duration = *input.Duration
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}
	if input.Status != nil {
		appointment.Status = models.AppointmentStatus(*input.Status)
	}
	if err := services.ValidateAppointment(appointment); err != nil {
		utils.RespondError(c, err)
		return
	}

	// Customer is preloaded for the response only
	customer := appointment.Customer
	appointment.Customer = nil
	if err := config.DB.WithContext(c.Request.Context()).Save(appointment).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	appointment.Customer = customer

	c.JSON(http.StatusOK, appointment)
}

func DeleteAppointment(c *gin.Context) {
	id, ok := parseID(c, "id", "appointment")
	if !ok {
		return
	}

	err := config.WithTx(c.Request.Context(), config.DB, func(tx *gorm.DB) error {
		if err := tx.Where("appointment_id = ?", id).Delete(&models.ReminderLog{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Appointment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NotFound("Appointment not found")
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
