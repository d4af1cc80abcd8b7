// controllers/report.go
package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"quotedesk-backend/config"
	"quotedesk-backend/models"
	"quotedesk-backend/services"
	"quotedesk-backend/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController handles all reporting functions
type ReportController struct{}

// parseFilter reads customerId, label, status, from and to from the query
// string. Empty parameters are ignored.
func (rc *ReportController) parseFilter(c *gin.Context) (services.QuoteFilter, error) {
	var f services.QuoteFilter

	if raw := strings.TrimSpace(c.Query("customerId")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return f, utils.InvalidPayload("Invalid customerId")
		}
		f.CustomerID = uint(id)
	}

	f.Label = strings.TrimSpace(c.Query("label"))

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := models.QuoteStatus(raw)
		if !status.Valid() {
			return f, utils.InvalidPayload("Status must be one of Pending, Approved, Rejected")
		}
		f.Status = status
	}

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		raw := strings.TrimSpace(c.Query(p.name))
		if raw == "" {
			continue
		}
		t, err := utils.ParseDate(raw)
		if err != nil {
			return f, utils.InvalidPayload(fmt.Sprintf("Invalid %s date, expected YYYY-MM-DD", p.name))
		}
		*p.dst = &t
	}

	return f, nil
}

func (rc *ReportController) filteredQuotes(c *gin.Context) ([]models.Quote, bool) {
	filter, err := rc.parseFilter(c)
	if err != nil {
		utils.RespondError(c, err)
		return nil, false
	}

	quotes, err := services.NewQuoteService(config.DB).List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return nil, false
	}

	return services.FilterQuotes(quotes, filter), true
}

// GetReport returns revenue and volume aggregates for the filtered quotes
func (rc *ReportController) GetReport(c *gin.Context) {
	quotes, ok := rc.filteredQuotes(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, services.BuildReport(quotes))
}

// ExportQuotes streams the filtered quotes as an XLSX workbook
func (rc *ReportController) ExportQuotes(c *gin.Context) {
	quotes, ok := rc.filteredQuotes(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := services.ExportQuotesXLSX(&buf, quotes); err != nil {
		utils.RespondError(c, err)
		return
	}

	fileName := fmt.Sprintf("quotes_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
