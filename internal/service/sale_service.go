package service

import (
	"context"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"

	"gorm.io/gorm"
)

// SaleService exposes recorded sales. Sales are read and deleted here;
// nothing in the API creates them.
type SaleService interface {
	ListSales(ctx context.Context) ([]model.SaleResponse, error)
	GetSale(ctx context.Context, id uint) (*model.SaleResponse, error)
	ListClientSales(ctx context.Context, clientID uint) ([]model.SaleResponse, error)
	DeleteSale(ctx context.Context, id uint) error
}

type saleService struct {
	db         *gorm.DB
	saleRepo   repository.SaleRepository
	clientRepo repository.ClientRepository
}

func NewSaleService(db *gorm.DB, saleRepo repository.SaleRepository, clientRepo repository.ClientRepository) SaleService {
	return &saleService{db: db, saleRepo: saleRepo, clientRepo: clientRepo}
}

func toSaleResponses(sales []model.Sale) []model.SaleResponse {
	res := make([]model.SaleResponse, 0, len(sales))
	for i := range sales {
		res = append(res, sales[i].ToResponse())
	}
	return res
}

func (s *saleService) ListSales(ctx context.Context) ([]model.SaleResponse, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, Persistence(err, "")
	}
	return toSaleResponses(sales), nil
}

func (s *saleService) GetSale(ctx context.Context, id uint) (*model.SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Sale not found")
	}
	res := sale.ToResponse()
	return &res, nil
}

func (s *saleService) ListClientSales(ctx context.Context, clientID uint) ([]model.SaleResponse, error) {
	ok, err := s.clientRepo.Exists(ctx, clientID)
	if err != nil {
		return nil, Persistence(err, "")
	}
	if !ok {
		return nil, NotFound("Client not found")
	}
	sales, err := s.saleRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, Persistence(err, "")
	}
	return toSaleResponses(sales), nil
}

// DeleteSale removes the sale and every item that belongs to it.
func (s *saleService) DeleteSale(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sales := s.saleRepo.WithTx(tx)
		if _, err := sales.FindByID(ctx, id); err != nil {
			return lookupError(err, "Sale not found")
		}
		return sales.Delete(ctx, id)
	})
	if err != nil {
		return Persistence(err, "")
	}
	return nil
}
