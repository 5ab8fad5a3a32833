package repository

import (
	"context"

	"go-inventory-ledger/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LowStockThreshold is the quantity below which a stock entry counts as low.
const LowStockThreshold = 10

// EntityCounts untuk summary
type EntityCounts struct {
	Products   int64 `json:"products"`
	Categories int64 `json:"categories"`
	Suppliers  int64 `json:"suppliers"`
	StockItems int64 `json:"stock_items"`
	Sales      int64 `json:"sales"`
	Clients    int64 `json:"clients"`
	Users      int64 `json:"users"`
}

// StockValuation aggregates stock entries
type StockValuation struct {
	TotalInventoryValue decimal.Decimal
	PotentialSalesValue decimal.Decimal
	LowStockItems       int64
}

type DashboardRepository interface {
	CountEntities(ctx context.Context) (*EntityCounts, error)
	GetStockValuation(ctx context.Context) (*StockValuation, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) CountEntities(ctx context.Context) (*EntityCounts, error) {
	var counts EntityCounts
	db := r.db.WithContext(ctx)

	targets := []struct {
		model interface{}
		dst   *int64
	}{
		{&model.Product{}, &counts.Products},
		{&model.Category{}, &counts.Categories},
		{&model.Supplier{}, &counts.Suppliers},
		{&model.Stock{}, &counts.StockItems},
		{&model.Sale{}, &counts.Sales},
		{&model.Client{}, &counts.Clients},
		{&model.User{}, &counts.Users},
	}
	for _, t := range targets {
		if err := db.Model(t.model).Count(t.dst).Error; err != nil {
			return nil, err
		}
	}
	return &counts, nil
}

type valuationRow struct {
	Quantity     int
	CostPrice    decimal.NullDecimal
	SellingPrice decimal.Decimal
}

// GetStockValuation sums values in Go with decimal arithmetic so the result
// does not depend on how the store represents numeric columns.
func (r *dashboardRepo) GetStockValuation(ctx context.Context) (*StockValuation, error) {
	var rows []valuationRow
	if err := r.db.WithContext(ctx).Model(&model.Stock{}).
		Select("quantity, cost_price, selling_price").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	v := &StockValuation{
		TotalInventoryValue: decimal.Zero,
		PotentialSalesValue: decimal.Zero,
	}
	for _, row := range rows {
		qty := decimal.NewFromInt(int64(row.Quantity))
		if row.CostPrice.Valid {
			v.TotalInventoryValue = v.TotalInventoryValue.Add(row.CostPrice.Decimal.Mul(qty))
		}
		v.PotentialSalesValue = v.PotentialSalesValue.Add(row.SellingPrice.Mul(qty))
		if row.Quantity < LowStockThreshold {
			v.LowStockItems++
		}
	}
	return v, nil
}
