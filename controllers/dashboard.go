package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"quotedesk-backend/config"
	"quotedesk-backend/models"
	"quotedesk-backend/utils"
)

const (
	dashboardRecentQuotes     = 3
	dashboardUpcomingDays     = 7
	dashboardUpcomingListSize = 7
)

type DashboardOverview struct {
	TotalCustomers       int64                 `json:"totalCustomers"`
	TotalServices        int64                 `json:"totalServices"`
	TotalQuotes          int64                 `json:"totalQuotes"`
	PendingQuotes        int64                 `json:"pendingQuotes"`
	MonthlyRevenue       decimal.Decimal       `json:"monthlyRevenue"`
	RecentQuotes         []RecentQuote         `json:"recentQuotes"`
	UpcomingAppointments []UpcomingAppointment `json:"upcomingAppointments"`
}

type RecentQuote struct {
	ID       uint            `json:"id"`
	Customer string          `json:"customer"`
	Label    string          `json:"label"`
	Total    decimal.Decimal `json:"total"`
	Created  string          `json:"created"` // e.g. "Today", "Yesterday"
}

type UpcomingAppointment struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"` // e.g. "Tomorrow", "3 days"
	Time string `json:"time"`
}

func daysAgoLabel(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func daysUntilLabel(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func calendarDays(from, to time.Time) int {
	return int(utils.BeginningOfDay(to).Sub(utils.BeginningOfDay(from)).Hours()+12) / 24
}

// GetDashboardOverview summarizes the shop's current state for the landing page
func GetDashboardOverview(c *gin.Context) {
	db := config.DB.WithContext(c.Request.Context())
	now := time.Now()
	overview := DashboardOverview{
		MonthlyRevenue:       decimal.Zero,
		RecentQuotes:         []RecentQuote{},
		UpcomingAppointments: []UpcomingAppointment{},
	}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&overview.TotalCustomers, db.Model(&models.Customer{})},
		{&overview.TotalServices, db.Model(&models.Service{})},
		{&overview.TotalQuotes, db.Model(&models.Quote{})},
		{&overview.PendingQuotes, db.Model(&models.Quote{}).Where("status = ?", string(models.QuoteStatusPending))},
	}
	for _, cnt := range counts {
		if err := cnt.query.Count(cnt.dst).Error; err != nil {
			utils.RespondError(c, err)
			return
		}
	}

	// This month's revenue
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthItems []models.QuoteItem
	if err := db.Joins("JOIN quotes ON quotes.id = quote_items.quote_id").
		Where("quotes.created_at >= ?", firstOfMonth).
		Find(&monthItems).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	for _, item := range monthItems {
		overview.MonthlyRevenue = overview.MonthlyRevenue.Add(item.LineTotal)
	}

	// Recent quotes
	var recent []models.Quote
	if err := db.Preload("Customer").Preload("QuoteItems").
		Order("created_at DESC").Order("id DESC").
		Limit(dashboardRecentQuotes).
		Find(&recent).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	for i := range recent {
		q := &recent[i]
		name := ""
		if q.Customer != nil {
			name = q.Customer.Name
		}
		overview.RecentQuotes = append(overview.RecentQuotes, RecentQuote{
			ID:       q.ID,
			Customer: name,
			Label:    q.Label,
			Total:    q.ComputeTotal(),
			Created:  daysAgoLabel(calendarDays(q.CreatedAt.In(now.Location()), now)),
		})
	}

	// Upcoming appointments (next 7 days)
	var scheduled []models.Appointment
	if err := db.Preload("Customer").
		Where("status = ?", string(models.AppointmentScheduled)).
		Order("date ASC").Order("time ASC").
		Find(&scheduled).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	today := utils.BeginningOfDay(now)
	for _, a := range scheduled {
		if a.Date.Before(today) {
			continue
		}
		daysUntil := calendarDays(now, a.Date.In(now.Location()))
		if daysUntil >= dashboardUpcomingDays {
			continue
		}
		name := ""
		if a.Customer != nil {
			name = a.Customer.Name
		}
		overview.UpcomingAppointments = append(overview.UpcomingAppointments, UpcomingAppointment{
			ID:   a.ID,
			Name: name,
			Date: daysUntilLabel(daysUntil),
			Time: a.Time,
		})
		if len(overview.UpcomingAppointments) >= dashboardUpcomingListSize {
			break
		}
	}

	c.JSON(http.StatusOK, overview)
}
