package repository

import (
	"context"

	"go-inventory-ledger/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	FindAll(ctx context.Context) ([]model.Client, error)
	FindByID(ctx context.Context, id uint) (*model.Client, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id uint) error
	WithTx(tx *gorm.DB) ClientRepository
}

type SaleRepository interface {
	// Create stores a sale header and then its items. Sales are not
	// recorded over HTTP; test fixtures seed them through here.
	Create(ctx context.Context, sale *model.Sale) error
	FindAll(ctx context.Context) ([]model.Sale, error)
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
	FindByClientID(ctx context.Context, clientID uint) ([]model.Sale, error)
	// Delete removes the sale and all of its items; call it inside a transaction.
	Delete(ctx context.Context, id uint) error
	WithTx(tx *gorm.DB) SaleRepository
}

type clientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) ClientRepository {
	return &clientRepo{db}
}

func (r *clientRepo) WithTx(tx *gorm.DB) ClientRepository {
	return &clientRepo{tx}
}

func (r *clientRepo) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(client).Error
}

func (r *clientRepo) FindAll(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).Order("id ASC").Find(&clients).Error
	return clients, err
}

func (r *clientRepo) FindByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &model.Client{}, id)
}

func (r *clientRepo) Update(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(client).Error
}

func (r *clientRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Client{}, "id = ?", id).Error
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) WithTx(tx *gorm.DB) SaleRepository {
	return &saleRepo{tx}
}

func (r *saleRepo) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client").
		Preload("Salesperson").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("stock_id ASC") }).
		Preload("Items.Stock.Product")
}

func (r *saleRepo) Create(ctx context.Context, sale *model.Sale) error {
	items := sale.Items
	sale.Items = nil
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(sale).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].SaleID = sale.ID
	}
	sale.Items = items
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error
}

func (r *saleRepo) FindAll(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.withDetails(ctx).Order("id ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var sale model.Sale
	if err := r.withDetails(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByClientID(ctx context.Context, clientID uint) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.withDetails(ctx).Where("client_id = ?", clientID).Order("id ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Delete(ctx context.Context, id uint) error {
	// Items are removed explicitly so the cascade holds even on stores
	// that do not enforce the ON DELETE CASCADE constraint.
	if err := r.db.WithContext(ctx).Where("sale_id = ?", id).Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.Sale{}, "id = ?", id).Error
}
