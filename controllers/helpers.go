// controllers/helpers.go
package controllers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"quotedesk-backend/models"
	"quotedesk-backend/utils"
)

var registerOnce sync.Once

// RegisterValidators adds the enum tags used in input bindings.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("quote_status", func(fl validator.FieldLevel) bool {
			return models.QuoteStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("appointment_status", func(fl validator.FieldLevel) bool {
			return models.AppointmentStatus(fl.Field().String()).Valid()
		})
	})
}

// parseID reads a positive integer path parameter, responding 400 otherwise.
func parseID(c *gin.Context, param, entity string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+entity+" ID format")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return false
	}
	return true
}
