package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk-backend/metrics"
	"quotedesk-backend/models"
	dbtest "quotedesk-backend/testutil"
	"quotedesk-backend/utils"
)

func strPtr(s string) *string { return &s }

func TestCreateQuote_PricesValidLinesAndDropsUnknownService(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx := context.Background()
	customer := dbtest.CreateCustomer(t, db, "Ana", "")
	oil := dbtest.CreateService(t, db, "Oil Change", "39.99")

	dropsBefore := testutil.ToFloat64(metrics.QuoteLinesDropped.WithLabelValues(metrics.DropUnknownService))

	svc := NewQuoteService(db)
	created, err := svc.Create(ctx, CreateQuoteRequest{
		CustomerID: int64(customer.ID),
		Label:      "Spring Service",
		Items: []QuoteLine{
			{ServiceID: int64(oil.ID), Qty: 2},
			{ServiceID: 999, Qty: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Spring Service", created.Label)
	assert.Equal(t, "79.98", created.Total.StringFixed(2))

	var items []models.QuoteItem
	require.NoError(t, db.Where("quote_id = ?", created.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
	assert.True(t, items[0].UnitCost.Equal(decimal.RequireFromString("39.99")))
	assert.True(t, items[0].LineTotal.Equal(decimal.RequireFromString("79.98")))

	assert.Equal(t, dropsBefore+1, testutil.ToFloat64(metrics.QuoteLinesDropped.WithLabelValues(metrics.DropUnknownService)))
}

func TestCreateQuote_SkipsQuantityBelowOne(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx := context.Background()
	customer := dbtest.CreateCustomer(t, db, "Ben", "")
	wash := dbtest.CreateService(t, db, "Wash", "10.00")

	svc := NewQuoteService(db)
	created, err := svc.Create(ctx, CreateQuoteRequest{
		CustomerID: int64(customer.ID),
		Label:      "Wash only",
		Items: []QuoteLine{
			{ServiceID: int64(wash.ID), Qty: 0},
			{ServiceID: int64(wash.ID), Qty: -3},
			{ServiceID: 0, Qty: 4},
			{ServiceID: int64(wash.ID), Qty: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "30.00", created.Total.StringFixed(2))

	var count int64
	require.NoError(t, db.Model(&models.QuoteItem{}).Where("quote_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateQuote_AllLinesInvalidStillCreatesEmptyQuote(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx := context.Background()
	customer := dbtest.CreateCustomer(t, db, "Cleo", "")

	svc := NewQuoteService(db)
	created, err := svc.Create(ctx, CreateQuoteRequest{
		CustomerID: int64(customer.ID),
		Label:      "Nothing",
		Items:      []QuoteLine{{ServiceID: 42, Qty: 1}},
	})
	require.NoError(t, err)
	assert.True(t, created.Total.IsZero())

	quote, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, quote.QuoteItems)
	assert.NotNil(t, quote.QuoteItems)
	assert.Equal(t, models.QuoteStatusPending, quote.Status)
}

func TestCreateQuote_Validation(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx := context.Background()
	customer := dbtest.CreateCustomer(t, db, "Dora", "")
	service := dbtest.CreateService(t, db, "Tune", "5.00")
	line := []QuoteLine{{ServiceID: int64(service.ID), Qty: 1}}

	tests := []struct {
		name string
		req  CreateQuoteRequest
	}{
		{"empty label", CreateQuoteRequest{CustomerID: int64(customer.ID), Label: "", Items: line}},
		{"whitespace label", CreateQuoteRequest{CustomerID: int64(customer.ID), Label: "   ", Items: line}},
		{"no items", CreateQuoteRequest{CustomerID: int64(customer.ID), Label: "x", Items: nil}},
		{"missing customer", CreateQuoteRequest{CustomerID: 0, Label: "x", Items: line}},
		{"unknown customer", CreateQuoteRequest{CustomerID: 9999, Label: "x", Items: line}},
	}

	svc := NewQuoteService(db)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, utils.IsCode(err, utils.CodeInvalidPayload))
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Quote{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateQuote_DuplicateSubmissionsCreateDistinctQuotes(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx := context.Background()
	customer := dbtest.CreateCustomer(t, db, "Eli", "")
	service := dbtest.CreateService(t, db, "Polish", "12.50")

	req := CreateQuoteRequest{
		CustomerID: int64(customer.ID),
		Label:      "Same",
		Items:      []QuoteLine{{ServiceID: int64(service.ID), Qty: 1}},
	}

	svc := NewQuoteService(db)
	first, err := svc.Create(ctx, req)
	require.NoError(t, err)
	second, err := svc.Create(ctx, req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, first.Total.Equal(second.Total))
}

func TestQuoteTotals_FrozenAfterServiceCostChange(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx := context.Background()
	customer := dbtest.CreateCustomer(t, db, "Fay", "")
	service := dbtest.CreateService(t, db, "Detail", "20.00")

	svc := NewQuoteService(db)
	created, err := svc.Create(ctx, CreateQuoteRequest{
		CustomerID: int64(customer.ID),
		Label:      "Detail x2",
		Items:      []QuoteLine{{ServiceID: int64(service.ID), Qty: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&service).Update("cost", decimal.RequireFromString("99.00")).Error)

	quote, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "40.00", quote.Total.StringFixed(2))
	require.Len(t, quote.QuoteItems, 1)
	assert.Equal(t, "20.00", quote.QuoteItems[0].UnitCost.StringFixed(2))
}

func TestListQuotes_NewestFirstWithNestedData(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx := context.Background()
	customer := dbtest.CreateCustomer(t, db, "Gus", "")
	a := dbtest.CreateService(t, db, "A", "1.00")
	b := dbtest.CreateService(t, db, "B", "2.00")

	svc := NewQuoteService(db)
	first, err := svc.Create(ctx, CreateQuoteRequest{
		CustomerID: int64(customer.ID), Label: "first",
		Items: []QuoteLine{{ServiceID: int64(b.ID), Qty: 1}, {ServiceID: int64(a.ID), Qty: 3}},
	})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateQuoteRequest{
		CustomerID: int64(customer.ID), Label: "second",
		Items: []QuoteLine{{ServiceID: int64(a.ID), Qty: 1}},
	})
	require.NoError(t, err)

	quotes, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, second.ID, quotes[0].ID)
	assert.Equal(t, first.ID, quotes[1].ID)

	require.NotNil(t, quotes[1].Customer)
	assert.Equal(t, "Gus", quotes[1].Customer.Name)
	require.Len(t, quotes[1].QuoteItems, 2)
	require.NotNil(t, quotes[1].QuoteItems[0].Service)
	assert.Equal(t, "B", quotes[1].QuoteItems[0].Service.Name)
	assert.Equal(t, "A", quotes[1].QuoteItems[1].Service.Name)
	assert.Equal(t, "5.00", quotes[1].Total.StringFixed(2))
}

func TestGetQuote_NotFound(t *testing.T) {
	db := dbtest.NewDB(t)

	_, err := NewQuoteService(db).Get(context.Background(), 123)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestUpdateQuote(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx := context.Background()
	customer := dbtest.CreateCustomer(t, db, "Hal", "")
	service := dbtest.CreateService(t, db, "Fix", "15.00")

	svc := NewQuoteService(db)
	created, err := svc.Create(ctx, CreateQuoteRequest{
		CustomerID: int64(customer.ID), Label: "Draft",
		Items: []QuoteLine{{ServiceID: int64(service.ID), Qty: 1}},
	})
	require.NoError(t, err)

	t.Run("label and status", func(t *testing.T) {
		quote, err := svc.Update(ctx, created.ID, UpdateQuoteRequest{
			Label:  strPtr("  Renamed  "),
			Status: strPtr("Approved"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", quote.Label)
		assert.Equal(t, models.QuoteStatusApproved, quote.Status)
		assert.Equal(t, "15.00", quote.Total.StringFixed(2))
	})

	t.Run("status only keeps label", func(t *testing.T) {
		quote, err := svc.Update(ctx, created.ID, UpdateQuoteRequest{Status: strPtr("Rejected")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", quote.Label)
		assert.Equal(t, models.QuoteStatusRejected, quote.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, UpdateQuoteRequest{Status: strPtr("Shipped")})
		assert.True(t, utils.IsCode(err, utils.CodeInvalidPayload))
	})

	t.Run("blank label", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, UpdateQuoteRequest{Label: strPtr(" ")})
		assert.True(t, utils.IsCode(err, utils.CodeInvalidPayload))
	})

	t.Run("missing quote", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID+100, UpdateQuoteRequest{Label: strPtr("x")})
		assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	})
}

func TestDeleteAndClearQuotes(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx := context.Background()
	customer := dbtest.CreateCustomer(t, db, "Ida", "")
	service := dbtest.CreateService(t, db, "Check", "3.00")

	svc := NewQuoteService(db)
	req := CreateQuoteRequest{
		CustomerID: int64(customer.ID), Label: "q",
		Items: []QuoteLine{{ServiceID: int64(service.ID), Qty: 1}},
	}
	first, err := svc.Create(ctx, req)
	require.NoError(t, err)
	_, err = svc.Create(ctx, req)
	require.NoError(t, err)
	_, err = svc.Create(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.True(t, utils.IsCode(svc.Delete(ctx, first.ID), utils.CodeNotFound))

	var items int64
	require.NoError(t, db.Model(&models.QuoteItem{}).Where("quote_id = ?", first.ID).Count(&items).Error)
	assert.Zero(t, items)

	quotes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, quotes, 2)

	require.NoError(t, svc.Clear(ctx))
	quotes, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, quotes)
	require.NoError(t, db.Model(&models.QuoteItem{}).Count(&items).Error)
	assert.Zero(t, items)
}
