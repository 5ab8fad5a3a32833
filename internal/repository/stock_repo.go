package repository

import (
	"context"

	"go-inventory-ledger/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *model.Supplier) error
	FindAll(ctx context.Context) ([]model.Supplier, error)
	FindByID(ctx context.Context, id uint) (*model.Supplier, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, supplier *model.Supplier) error
	Delete(ctx context.Context, id uint) error
	WithTx(tx *gorm.DB) SupplierRepository
}

type StockRepository interface {
	Create(ctx context.Context, stock *model.Stock) error
	FindAll(ctx context.Context) ([]model.Stock, error)
	FindByID(ctx context.Context, id uint) (*model.Stock, error)
	Update(ctx context.Context, stock *model.Stock) error
	Delete(ctx context.Context, id uint) error
	// CountSaleItems counts the sale lines that reference a stock entry.
	CountSaleItems(ctx context.Context, stockID uint) (int64, error)
	WithTx(tx *gorm.DB) StockRepository
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) WithTx(tx *gorm.DB) SupplierRepository {
	return &supplierRepo{tx}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(supplier).Error
}

func (r *supplierRepo) FindAll(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.WithContext(ctx).Order("id ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) FindByID(ctx context.Context, id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &model.Supplier{}, id)
}

func (r *supplierRepo) Update(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(supplier).Error
}

func (r *supplierRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Supplier{}, "id = ?", id).Error
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) WithTx(tx *gorm.DB) StockRepository {
	return &stockRepo{tx}
}

// withDisplay preloads the relations behind the denormalized display fields.
func (r *stockRepo) withDisplay(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Product").Preload("Supplier").Preload("Depositor")
}

func (r *stockRepo) Create(ctx context.Context, stock *model.Stock) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(stock).Error
}

func (r *stockRepo) FindAll(ctx context.Context) ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.withDisplay(ctx).Order("id ASC").Find(&stocks).Error
	return stocks, err
}

func (r *stockRepo) FindByID(ctx context.Context, id uint) (*model.Stock, error) {
	var stock model.Stock
	if err := r.withDisplay(ctx).First(&stock, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepo) Update(ctx context.Context, stock *model.Stock) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(stock).Error
}

func (r *stockRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Stock{}, "id = ?", id).Error
}

func (r *stockRepo) CountSaleItems(ctx context.Context, stockID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SaleItem{}).Where("stock_id = ?", stockID).Count(&count).Error
	return count, err
}
