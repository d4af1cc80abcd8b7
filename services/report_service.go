// services/report_service.go
package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quotedesk-backend/models"
	"quotedesk-backend/utils"
)

const topServicesLimit = 10

// QuoteFilter narrows a quote list. Zero values match everything.
type QuoteFilter struct {
	CustomerID uint
	Label      string
	Status     models.QuoteStatus
	From       *time.Time
	To         *time.Time // inclusive of the whole day
}

func (f QuoteFilter) Match(q *models.Quote) bool {
	if f.CustomerID != 0 && q.CustomerID != f.CustomerID {
		return false
	}
	if f.Label != "" && q.Label != f.Label {
		return false
	}
	if f.Status != "" && q.Status != f.Status {
		return false
	}
	if f.From != nil && q.CreatedAt.Before(utils.BeginningOfDay(*f.From)) {
		return false
	}
	if f.To != nil && q.CreatedAt.After(utils.EndOfDay(*f.To)) {
		return false
	}
	return true
}

func FilterQuotes(quotes []models.Quote, f QuoteFilter) []models.Quote {
	filtered := make([]models.Quote, 0, len(quotes))
	for i := range quotes {
		if f.Match(&quotes[i]) {
			filtered = append(filtered, quotes[i])
		}
	}
	return filtered
}

type ServiceSummary struct {
	ServiceID uint            `json:"serviceId"`
	Name      string          `json:"name"`
	Count     int             `json:"count"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type CustomerSummary struct {
	CustomerID uint            `json:"customerId"`
	Name       string          `json:"name"`
	Quotes     int             `json:"quotes"`
	Total      decimal.Decimal `json:"total"`
}

type DaySummary struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ReportSummary aggregates a set of quotes for the manager view.
type ReportSummary struct {
	TotalRevenue decimal.Decimal   `json:"totalRevenue"`
	QuoteCount   int               `json:"quoteCount"`
	AverageValue decimal.Decimal   `json:"averageValue"`
	ByStatus     map[string]int    `json:"byStatus"`
	ByCustomer   []CustomerSummary `json:"byCustomer"`
	ByDay        []DaySummary      `json:"byDay"`
	TopServices  []ServiceSummary  `json:"topServices"`
}

// BuildReport expects quotes with items loaded and totals computed, as
// returned by QuoteService.List.
func BuildReport(quotes []models.Quote) ReportSummary {
	report := ReportSummary{
		TotalRevenue: decimal.Zero,
		AverageValue: decimal.Zero,
		ByStatus:     map[string]int{},
		ByCustomer:   []CustomerSummary{},
		ByDay:        []DaySummary{},
		TopServices:  []ServiceSummary{},
	}

	customers := map[uint]*CustomerSummary{}
	days := map[string]*DaySummary{}
	services := map[uint]*ServiceSummary{}

	for i := range quotes {
		q := &quotes[i]
		total := q.ComputeTotal()

		report.QuoteCount++
		report.TotalRevenue = report.TotalRevenue.Add(total)
		report.ByStatus[string(q.Status)]++

		cs, ok := customers[q.CustomerID]
		if !ok {
			cs = &CustomerSummary{CustomerID: q.CustomerID, Total: decimal.Zero}
			if q.Customer != nil {
				cs.Name = q.Customer.Name
			}
			customers[q.CustomerID] = cs
		}
		cs.Quotes++
		cs.Total = cs.Total.Add(total)

		day := q.CreatedAt.In(time.Local).Format(utils.DateLayout)
		ds, ok := days[day]
		if !ok {
			ds = &DaySummary{Date: day, Revenue: decimal.Zero}
			days[day] = ds
		}
		ds.Revenue = ds.Revenue.Add(total)

		for _, item := range q.QuoteItems {
			ss, ok := services[item.ServiceID]
			if !ok {
				ss = &ServiceSummary{ServiceID: item.ServiceID, Revenue: decimal.Zero}
				if item.Service != nil {
					ss.Name = item.Service.Name
				}
				services[item.ServiceID] = ss
			}
			ss.Count++
			ss.Quantity += item.Qty
			ss.Revenue = ss.Revenue.Add(item.LineTotal)
		}
	}

	if report.QuoteCount > 0 {
		report.AverageValue = report.TotalRevenue.
			Div(decimal.NewFromInt(int64(report.QuoteCount))).
			Round(2)
	}

	for _, cs := range customers {
		report.ByCustomer = append(report.ByCustomer, *cs)
	}
	sort.Slice(report.ByCustomer, func(i, j int) bool {
		a, b := report.ByCustomer[i], report.ByCustomer[j]
		if c := a.Total.Cmp(b.Total); c != 0 {
			return c > 0
		}
		return a.CustomerID < b.CustomerID
	})

	for _, ds := range days {
		report.ByDay = append(report.ByDay, *ds)
	}
	sort.Slice(report.ByDay, func(i, j int) bool {
		return report.ByDay[i].Date < report.ByDay[j].Date
	})

	for _, ss := range services {
		report.TopServices = append(report.TopServices, *ss)
	}
	sort.Slice(report.TopServices, func(i, j int) bool {
		a, b := report.TopServices[i], report.TopServices[j]
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return strings.Compare(a.Name, b.Name) < 0
	})
	if len(report.TopServices) > topServicesLimit {
		report.TopServices = report.TopServices[:topServicesLimit]
	}

	return report
}
