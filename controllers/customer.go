// controllers/customer.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"quotedesk-backend/config"
	"quotedesk-backend/models"
	"quotedesk-backend/services"
	"quotedesk-backend/utils"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
	Email   *string `json:"email" binding:"omitempty,email"`
}

func totalQuotes(customer *models.Customer) {
	for i := range customer.Quotes {
		q := &customer.Quotes[i]
		if q.QuoteItems == nil {
			q.QuoteItems = []models.QuoteItem{}
		}
		q.ComputeTotal()
	}
}

// CreateCustomer registers a new customer
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if !bindJSON(c, &input) {
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Name is required")
		return
	}

	// Phone is optional, but must be well formed when given
	phone := strings.TrimSpace(input.Phone)
	if phone != "" && !utils.ValidatePhone(phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	customer := models.Customer{
		Name:    name,
		Phone:   phone,
		Address: input.Address,
		Notes:   input.Notes,
		Email:   input.Email,
	}

	if err := config.DB.WithContext(c.Request.Context()).Create(&customer).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers, newest first, with their quotes and items
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.WithContext(c.Request.Context()).
		Preload("Quotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("quotes.created_at DESC")
		}).
		Preload("Quotes.QuoteItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("quote_items.id ASC")
		}).
		Order("id DESC").
		Find(&customers).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	for i := range customers {
		totalQuotes(&customers[i])
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves one customer with quotes (newest first), their items
// and services, and appointments
func GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.WithContext(c.Request.Context()).
		Preload("Quotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("quotes.created_at DESC").Order("quotes.id DESC")
		}).
		Preload("Quotes.QuoteItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("quote_items.id ASC")
		}).
		Preload("Quotes.QuoteItems.Service").
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("appointments.date ASC").Order("appointments.time ASC")
		}).
		First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondError(c, err)
		}
		return
	}

	totalQuotes(&customer)
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if !bindJSON(c, &input) {
		return
	}

	var customer models.Customer
	if err := config.DB.WithContext(c.Request.Context()).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondError(c, err)
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		customer.Name = name
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != "" && !utils.ValidatePhone(phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}

	if err := config.DB.WithContext(c.Request.Context()).Save(&customer).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer with all quotes, items and appointments
func DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	if err := services.DeleteCustomer(c.Request.Context(), config.DB, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
