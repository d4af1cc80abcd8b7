// controllers/quote.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotedesk-backend/config"
	"quotedesk-backend/services"
	"quotedesk-backend/utils"
)

// QuoteItemInput tolerates numeric strings and junk; unusable values become
// zero and the line is skipped by the quote engine.
type QuoteItemInput struct {
	ServiceID utils.FlexInt `json:"serviceId"`
	Qty       utils.FlexInt `json:"qty"`
}

// CreateQuoteInput defines the expected JSON structure for creating a quote
type CreateQuoteInput struct {
	Customer utils.FlexInt    `json:"customer"`
	Label    string           `json:"label"`
	Items    []QuoteItemInput `json:"items"`
}

// UpdateQuoteInput defines the expected JSON structure for updating a quote
type UpdateQuoteInput struct {
	Label  *string `json:"label"`
	Status *string `json:"status" binding:"omitempty,quote_status"`
}

func quoteService() *services.QuoteService {
	return services.NewQuoteService(config.DB)
}

// CreateQuote prices and stores a new quote
func CreateQuote(c *gin.Context) {
	var input CreateQuoteInput
	if !bindJSON(c, &input) {
		return
	}

	req := services.CreateQuoteRequest{
		CustomerID: input.Customer.Int(),
		Label:      input.Label,
		Items:      make([]services.QuoteLine, 0, len(input.Items)),
	}
	for _, item := range input.Items {
		req.Items = append(req.Items, services.QuoteLine{
			ServiceID: item.ServiceID.Int(),
			Qty:       item.Qty.Int(),
		})
	}

	created, err := quoteService().Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetQuotes lists every quote, newest first
func GetQuotes(c *gin.Context) {
	quotes, err := quoteService().List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quotes)
}

func GetQuote(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
	if !ok {
		return
	}

	quote, err := quoteService().Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// UpdateQuote changes label and/or status
func UpdateQuote(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
	if !ok {
		return
	}

	var input UpdateQuoteInput
	if !bindJSON(c, &input) {
		return
	}

	quote, err := quoteService().Update(c.Request.Context(), id, services.UpdateQuoteRequest{
		Label:  input.Label,
		Status: input.Status,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func DeleteQuote(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
	if !ok {
		return
	}

	if err := quoteService().Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearQuotes deletes all quotes and their items
func ClearQuotes(c *gin.Context) {
	if err := quoteService().Clear(c.Request.Context()); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
