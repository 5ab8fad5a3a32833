package service

import (
	"context"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/payload"
	"go-inventory-ledger/internal/repository"

	"gorm.io/gorm"
)

var stockRequiredFields = []string{"product_id", "supplier_id", "quantity", "selling_price", "deposited_by_user_id"}

// EventPublisher delivers events to connected realtime clients.
type EventPublisher interface {
	Publish(event interface{})
}

// StockEvent is broadcast after a stock write commits.
type StockEvent struct {
	Type   string               `json:"type"`
	Action string               `json:"action"`
	Stock  *model.StockResponse `json:"stock"`
}

const (
	StockCreated = "stock_created"
	StockUpdated = "stock_updated"
	StockDeleted = "stock_deleted"
)

type StockService interface {
	ListStocks(ctx context.Context) ([]model.StockResponse, error)
	GetStock(ctx context.Context, id uint) (*model.StockResponse, error)
	CreateStock(ctx context.Context, f payload.Fields) (*model.StockResponse, error)
	UpdateStock(ctx context.Context, id uint, f payload.Fields) (*model.StockResponse, error)
	DeleteStock(ctx context.Context, id uint) error
}

type stockInput struct {
	Quantity int     `json:"quantity" validate:"gte=0"`
	Location *string `json:"location" validate:"omitempty,max=255"`
}

type stockService struct {
	db           *gorm.DB
	stockRepo    repository.StockRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
	events       EventPublisher
}

func NewStockService(
	db *gorm.DB,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
	events EventPublisher,
) StockService {
	return &stockService{
		db:           db,
		stockRepo:    stockRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
		events:       events,
	}
}

func (s *stockService) publish(action string, stock *model.StockResponse) {
	if s.events == nil {
		return
	}
	s.events.Publish(StockEvent{Type: "stock_update", Action: action, Stock: stock})
}

func (s *stockService) ListStocks(ctx context.Context) ([]model.StockResponse, error) {
	stocks, err := s.stockRepo.FindAll(ctx)
	if err != nil {
		return nil, Persistence(err, "")
	}
	res := make([]model.StockResponse, 0, len(stocks))
	for i := range stocks {
		res = append(res, stocks[i].ToResponse())
	}
	return res, nil
}

func (s *stockService) GetStock(ctx context.Context, id uint) (*model.StockResponse, error) {
	stock, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Stock item not found")
	}
	res := stock.ToResponse()
	return &res, nil
}

func applyStock(st *model.Stock, f payload.Fields) error {
	if err := applyAll(
		setID(f, "product_id", &st.ProductID),
		setID(f, "supplier_id", &st.SupplierID),
		setOptionalString(f, "location", &st.Location),
		setInt(f, "quantity", &st.Quantity),
		setNullDecimal(f, "cost_price", &st.CostPrice),
		setDecimal(f, "selling_price", &st.SellingPrice),
		setOptionalID(f, "deposited_by_user_id", &st.DepositedByUserID),
		setDate(f, "expiration_date", &st.ExpirationDate),
	); err != nil {
		return err
	}
	return validateInput(&stockInput{Quantity: st.Quantity, Location: st.Location})
}

// checkStockRefs verifies the foreign keys named in f, in payload order
// product, supplier, depositor.
func (s *stockService) checkStockRefs(ctx context.Context, tx *gorm.DB, st *model.Stock, f payload.Fields) error {
	if f.Has("product_id") {
		ok, err := s.productRepo.WithTx(tx).Exists(ctx, st.ProductID)
		if err != nil {
			return err
		}
		if !ok {
			return Reference("Product", st.ProductID)
		}
	}
	if f.Has("supplier_id") {
		ok, err := s.supplierRepo.WithTx(tx).Exists(ctx, st.SupplierID)
		if err != nil {
			return err
		}
		if !ok {
			return Reference("Supplier", st.SupplierID)
		}
	}
	if f.Has("deposited_by_user_id") && st.DepositedByUserID != nil {
		ok, err := s.userRepo.WithTx(tx).Exists(ctx, *st.DepositedByUserID)
		if err != nil {
			return err
		}
		if !ok {
			return Reference("User", *st.DepositedByUserID)
		}
	}
	return nil
}

func (s *stockService) CreateStock(ctx context.Context, f payload.Fields) (*model.StockResponse, error) {
	if err := requireFields(f, missingFieldsMessage(stockRequiredFields...), stockRequiredFields...); err != nil {
		return nil, err
	}
	stock := &model.Stock{}
	if err := applyStock(stock, f); err != nil {
		return nil, err
	}

	var created *model.Stock
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkStockRefs(ctx, tx, stock, f); err != nil {
			return err
		}
		stocks := s.stockRepo.WithTx(tx)
		if err := stocks.Create(ctx, stock); err != nil {
			return err
		}
		var err error
		created, err = stocks.FindByID(ctx, stock.ID)
		return err
	})
	if err != nil {
		return nil, Persistence(err, "")
	}

	res := created.ToResponse()
	s.publish(StockCreated, &res)
	return &res, nil
}

func (s *stockService) UpdateStock(ctx context.Context, id uint, f payload.Fields) (*model.StockResponse, error) {
	var updated *model.Stock
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stocks := s.stockRepo.WithTx(tx)
		stock, err := stocks.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, "Stock item not found")
		}
		if err := applyStock(stock, f); err != nil {
			return err
		}
		if err := s.checkStockRefs(ctx, tx, stock, f); err != nil {
			return err
		}
		if err := stocks.Update(ctx, stock); err != nil {
			return err
		}
		updated, err = stocks.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, Persistence(err, "")
	}

	res := updated.ToResponse()
	s.publish(StockUpdated, &res)
	return &res, nil
}

func (s *stockService) DeleteStock(ctx context.Context, id uint) error {
	var deleted model.StockResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stocks := s.stockRepo.WithTx(tx)
		stock, err := stocks.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, "Stock item not found")
		}
		sold, err := stocks.CountSaleItems(ctx, id)
		if err != nil {
			return err
		}
		if sold > 0 {
			return Conflict("Stock item is referenced by existing sales and cannot be deleted.")
		}
		deleted = stock.ToResponse()
		return stocks.Delete(ctx, id)
	})
	if err != nil {
		return Persistence(err, "")
	}

	s.publish(StockDeleted, &deleted)
	return nil
}
