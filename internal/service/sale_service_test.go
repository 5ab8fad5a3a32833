package service

import (
	"context"
	"testing"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleService_ReadAndCascadeDelete(t *testing.T) {
	db := testutil.NewDB(t)
	seed := testutil.Seed(t, db)
	first := seed.SeedStock(t, db, 5, "", "10")
	second := seed.SeedStock(t, db, 5, "", "2.5")
	sale := seed.SeedSale(t, db, first, second)

	saleRepo := repository.NewSaleRepo(db)
	clientRepo := repository.NewClientRepo(db)
	svc := NewSaleService(db, saleRepo, clientRepo)
	ctx := context.Background()

	got, err := svc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.50", got.TotalAmount)
	assert.Equal(t, "Walk-in", *got.ClientName)
	assert.Equal(t, "depositor", *got.SalespersonName)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Hammer", *got.Items[0].ProductName)

	byClient, err := svc.ListClientSales(ctx, sale.ClientID)
	require.NoError(t, err)
	assert.Len(t, byClient, 1)

	_, err = svc.ListClientSales(ctx, 999)
	assert.Equal(t, KindNotFound, KindOf(err))

	require.NoError(t, svc.DeleteSale(ctx, sale.ID))

	var items int64
	require.NoError(t, db.Model(&model.SaleItem{}).Where("sale_id = ?", sale.ID).Count(&items).Error)
	assert.Zero(t, items)
	_, err = svc.GetSale(ctx, sale.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	// stock rows are untouched by the cascade
	var stocks int64
	require.NoError(t, db.Model(&model.Stock{}).Count(&stocks).Error)
	assert.Equal(t, int64(2), stocks)

	all, err := svc.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestClientService(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewClientService(db, repository.NewClientRepo(db), repository.NewSaleRepo(db))
	ctx := context.Background()

	_, err := svc.CreateClient(ctx, fields(t, `{"contact_phone":"1"}`))
	assert.Equal(t, "Client name is required", PublicMessage(err))

	_, err = svc.CreateClient(ctx, fields(t, `{"name":"Shop","current_month_status":"LATE"}`))
	assert.Equal(t, KindValidation, KindOf(err))

	c, err := svc.CreateClient(ctx, fields(t, `{"name":"Shop","is_credit_client":true,"credit_limit":"1500"}`))
	require.NoError(t, err)
	assert.True(t, c.IsCreditClient)
	assert.Equal(t, "1500.00", *c.CreditLimit)

	updated, err := svc.UpdateClient(ctx, c.ID, fields(t, `{"current_month_status":"PAID"}`))
	require.NoError(t, err)
	assert.Equal(t, "PAID", *updated.CurrentMonthStatus)
	assert.True(t, updated.IsCreditClient)

	require.NoError(t, svc.DeleteClient(ctx, c.ID))
	_, err = svc.GetClient(ctx, c.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestClientService_DeleteWithSalesConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	seed := testutil.Seed(t, db)
	sale := seed.SeedSale(t, db, seed.SeedStock(t, db, 1, "", "1"))
	svc := NewClientService(db, repository.NewClientRepo(db), repository.NewSaleRepo(db))

	err := svc.DeleteClient(context.Background(), sale.ClientID)

	assert.Equal(t, KindConflict, KindOf(err))
}

func TestDashboardService(t *testing.T) {
	db := testutil.NewDB(t)
	seed := testutil.Seed(t, db)
	seed.SeedStock(t, db, 20, "2", "3")
	seed.SeedStock(t, db, 4, "", "10")
	svc := NewDashboardService(repository.NewDashboardRepo(db))
	ctx := context.Background()

	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Counts.Products)
	assert.Equal(t, int64(2), stats.Counts.StockItems)
	assert.Equal(t, int64(1), stats.Counts.Users)
	assert.Equal(t, "40.00", stats.TotalInventoryValue)
	assert.Equal(t, "100.00", stats.PotentialSalesValue)
	assert.Equal(t, int64(1), stats.LowStockItems)
	assert.Equal(t, repository.LowStockThreshold, stats.LowStockThreshold)

	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats.Counts, *summary)
}

func TestPersistence(t *testing.T) {
	conflict := Conflict("taken")
	assert.Same(t, conflict, Persistence(conflict, "other"))

	err := Persistence(assert.AnError, "dup")
	assert.Equal(t, KindPersistence, err.Kind)
	assert.Equal(t, persistenceMessage, err.Message)
	assert.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, KindPersistence, KindOf(assert.AnError))
	assert.Equal(t, persistenceMessage, PublicMessage(assert.AnError))
}
