// controllers/service.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"quotedesk-backend/config"
	"quotedesk-backend/models"
	"quotedesk-backend/services"
	"quotedesk-backend/utils"
)

// CreateServiceInput defines the expected JSON structure for creating a service.
// Cost accepts a JSON number or a numeric string.
type CreateServiceInput struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Cost        *decimal.Decimal `json:"cost" binding:"required"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Cost        *decimal.Decimal `json:"cost"`
}

func serviceNameTaken(name string, exceptID uint) (bool, error) {
	var count int64
	q := config.DB.Model(&models.Service{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateService adds a service to the catalog
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if !bindJSON(c, &input) {
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "name and cost are required")
		return
	}
	if input.Cost.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Cost cannot be negative")
		return
	}

	taken, err := serviceNameTaken(name, 0)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if taken {
		utils.RespondWithError(c, http.StatusConflict, "A service with this name already exists")
		return
	}

	service := models.Service{
		Name:        name,
		Description: input.Description,
		Cost:        *input.Cost,
	}

	if err := config.DB.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "A service with this name already exists")
			return
		}
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices lists the catalog ordered by name
func GetServices(c *gin.Context) {
	var catalog []models.Service
	if err := config.DB.WithContext(c.Request.Context()).Order("name ASC").Find(&catalog).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, catalog)
}

func findService(c *gin.Context) (*models.Service, bool) {
	id, ok := parseID(c, "id", "service")
	if !ok {
		return nil, false
	}

	var service models.Service
	if err := config.DB.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondError(c, err)
		}
		return nil, false
	}
	return &service, true
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	service, ok := findService(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service. Existing quote items keep the
// cost they were created with.
func UpdateService(c *gin.Context) {
	service, ok := findService(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if !bindJSON(c, &input) {
		return
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		taken, err := serviceNameTaken(name, service.ID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if taken {
			utils.RespondWithError(c, http.StatusConflict, "A service with this name already exists")
			return
		}
		service.Name = name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Cost != nil {
		if input.Cost.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Cost cannot be negative")
			return
		}
		service.Cost = *input.Cost
	}

	if err := config.DB.WithContext(c.Request.Context()).Save(service).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "A service with this name already exists")
			return
		}
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service and every quote item that references it
func DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id", "service")
	if !ok {
		return
	}

	if err := services.DeleteCatalogService(c.Request.Context(), config.DB, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
