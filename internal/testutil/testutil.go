// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/migrations"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns an in-memory SQLite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Options{
		Driver:   database.DriverSQLite,
		DSN:      ":memory:",
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migrations.Run(context.Background(), db, config.MigrateAuto))
	return db
}

// Config returns settings suitable for tests: no rate limit, short sessions.
func Config() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.JWTSecret = "test-secret"
	cfg.SessionTTL = time.Hour
	cfg.RateLimitMax = 0
	return cfg
}

// Fixture holds one row of every catalog entity.
type Fixture struct {
	User     *model.User
	Category *model.Category
	Product  *model.Product
	Supplier *model.Supplier
}

// Seed inserts a user, a category, a product in it and a supplier.
func Seed(t *testing.T, db *gorm.DB) *Fixture {
	t.Helper()
	f := &Fixture{
		User:     &model.User{Username: "depositor", Email: "depositor@example.com"},
		Category: &model.Category{Name: "Tools"},
		Supplier: &model.Supplier{Name: "Acme"},
	}
	require.NoError(t, db.Create(f.User).Error)
	auth := &model.Auth{UserID: f.User.ID, PermissionsLevel: model.PermissionStaff, SessionVersion: "seed"}
	require.NoError(t, auth.SetPassword("secret"))
	require.NoError(t, db.Create(auth).Error)
	f.User.Auth = auth

	require.NoError(t, db.Create(f.Category).Error)
	f.Product = &model.Product{Name: "Hammer", CategoryID: &f.Category.ID}
	require.NoError(t, db.Omit("Category").Create(f.Product).Error)
	require.NoError(t, db.Create(f.Supplier).Error)
	return f
}

// SeedStock inserts a stock entry for the fixture's product and supplier.
func (f *Fixture) SeedStock(t *testing.T, db *gorm.DB, qty int, cost, price string) *model.Stock {
	t.Helper()
	st := &model.Stock{
		ProductID:         f.Product.ID,
		SupplierID:        f.Supplier.ID,
		Quantity:          qty,
		SellingPrice:      decimal.RequireFromString(price),
		DepositedByUserID: &f.User.ID,
	}
	if cost != "" {
		st.CostPrice = decimal.NewNullDecimal(decimal.RequireFromString(cost))
	}
	require.NoError(t, db.Omit("Product", "Supplier", "Depositor").Create(st).Error)
	return st
}

// SeedSale inserts a client and a sale with one item per stock entry.
func (f *Fixture) SeedSale(t *testing.T, db *gorm.DB, stocks ...*model.Stock) *model.Sale {
	t.Helper()
	client := &model.Client{Name: "Walk-in"}
	require.NoError(t, db.Create(client).Error)

	sale := &model.Sale{
		ClientID:      client.ID,
		UserID:        f.User.ID,
		TotalAmount:   decimal.Zero,
		PaymentMethod: "cash",
	}
	for _, st := range stocks {
		item := model.SaleItem{StockID: st.ID, QuantitySold: 1, UnitPriceAtSale: st.SellingPrice}
		sale.Items = append(sale.Items, item)
		sale.TotalAmount = sale.TotalAmount.Add(item.Subtotal())
	}
	require.NoError(t, repository.NewSaleRepo(db).Create(context.Background(), sale))
	return sale
}
