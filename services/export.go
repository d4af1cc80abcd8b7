// services/export.go
package services

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"quotedesk-backend/models"
)

const (
	QuotesSheet    = "Quotes"
	LineItemsSheet = "Line Items"
)

// ExportQuotesXLSX writes one row per quote and one row per line item.
func ExportQuotesXLSX(w io.Writer, quotes []models.Quote) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), QuotesSheet); err != nil {
		return fmt.Errorf("naming quotes sheet: %w", err)
	}
	if _, err := f.NewSheet(LineItemsSheet); err != nil {
		return fmt.Errorf("creating line items sheet: %w", err)
	}

	quoteHeader := []interface{}{"Quote ID", "Label", "Customer ID", "Customer", "Status", "Created", "Items", "Total"}
	if err := f.SetSheetRow(QuotesSheet, "A1", &quoteHeader); err != nil {
		return fmt.Errorf("writing quotes header: %w", err)
	}
	itemHeader := []interface{}{"Quote ID", "Quote", "Service ID", "Service", "Qty", "Unit Cost", "Line Total"}
	if err := f.SetSheetRow(LineItemsSheet, "A1", &itemHeader); err != nil {
		return fmt.Errorf("writing line items header: %w", err)
	}

	quoteRow, itemRow := 2, 2
	for i := range quotes {
		q := &quotes[i]
		total := q.ComputeTotal()

		customerName := ""
		if q.Customer != nil {
			customerName = q.Customer.Name
		}

		row := []interface{}{
			q.ID,
			q.Label,
			q.CustomerID,
			customerName,
			string(q.Status),
			q.CreatedAt.In(time.Local).Format("2006-01-02 15:04"),
			len(q.QuoteItems),
			total.InexactFloat64(),
		}
		if err := setRow(f, QuotesSheet, quoteRow, row); err != nil {
			return err
		}
		quoteRow++

		for _, item := range q.QuoteItems {
			serviceName := ""
			if item.Service != nil {
				serviceName = item.Service.Name
			}
			row := []interface{}{
				q.ID,
				q.Label,
				item.ServiceID,
				serviceName,
				item.Qty,
				item.UnitCost.InexactFloat64(),
				item.LineTotal.InexactFloat64(),
			}
			if err := setRow(f, LineItemsSheet, itemRow, row); err != nil {
				return err
			}
			itemRow++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}
