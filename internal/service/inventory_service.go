package service

import (
	"context"
	"errors"
	"fmt"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/payload"
	"go-inventory-ledger/internal/repository"

	"gorm.io/gorm"
)

// InventoryService manages the catalog: categories, products and suppliers.
type InventoryService interface {
	ListCategories(ctx context.Context) ([]model.CategoryResponse, error)
	GetCategory(ctx context.Context, id uint) (*model.CategoryResponse, error)
	CreateCategory(ctx context.Context, f payload.Fields) (*model.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uint, f payload.Fields) (*model.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uint) error

	ListProducts(ctx context.Context) ([]model.ProductResponse, error)
	GetProduct(ctx context.Context, id uint) (*model.ProductResponse, error)
	CreateProduct(ctx context.Context, f payload.Fields) (*model.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uint, f payload.Fields) (*model.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uint) error

	ListSuppliers(ctx context.Context) ([]model.SupplierResponse, error)
	GetSupplier(ctx context.Context, id uint) (*model.SupplierResponse, error)
	CreateSupplier(ctx context.Context, f payload.Fields) (*model.SupplierResponse, error)
	UpdateSupplier(ctx context.Context, id uint, f payload.Fields) (*model.SupplierResponse, error)
	DeleteSupplier(ctx context.Context, id uint) error
}

type categoryInput struct {
	Name        string  `json:"name" validate:"required,notblank,max=255"`
	Description *string
}

type productInput struct {
	Name           string  `json:"name" validate:"required,notblank,max=255"`
	Brand          *string `json:"brand" validate:"omitempty,max=255"`
	WarrantyMonths *int    `json:"warranty_months" validate:"omitempty,gte=0"`
}

type supplierInput struct {
	Name          string  `json:"name" validate:"required,notblank,max=255"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=255"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Email         *string `json:"email" validate:"omitempty,max=120"`
}

type inventoryService struct {
	db           *gorm.DB
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

func NewInventoryService(db *gorm.DB, cRepo repository.CategoryRepository, pRepo repository.ProductRepository, sRepo repository.SupplierRepository) InventoryService {
	return &inventoryService{
		db:           db,
		categoryRepo: cRepo,
		productRepo:  pRepo,
		supplierRepo: sRepo,
	}
}

// lookupError turns a missing row into a NotFoundError with msg.
func lookupError(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(msg)
	}
	return Persistence(err, "")
}

// Categories

func (s *inventoryService) ListCategories(ctx context.Context) ([]model.CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, Persistence(err, "")
	}
	res := make([]model.CategoryResponse, 0, len(categories))
	for i := range categories {
		res = append(res, categories[i].ToResponse())
	}
	return res, nil
}

func (s *inventoryService) GetCategory(ctx context.Context, id uint) (*model.CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Category not found")
	}
	res := category.ToResponse()
	return &res, nil
}

func applyCategory(c *model.Category, f payload.Fields) error {
	if err := applyAll(
		setString(f, "name", &c.Name),
		setOptionalString(f, "description", &c.Description),
	); err != nil {
		return err
	}
	return validateInput(&categoryInput{Name: c.Name, Description: c.Description})
}

// ensureCategoryNameFree rejects name when another category already uses it.
func ensureCategoryNameFree(ctx context.Context, repo repository.CategoryRepository, name string, selfID uint) error {
	existing, err := repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return Conflict(fmt.Sprintf("Category '%s' already exists.", name))
	}
	return nil
}

func (s *inventoryService) CreateCategory(ctx context.Context, f payload.Fields) (*model.CategoryResponse, error) {
	if err := requireFields(f, "Category name is required", "name"); err != nil {
		return nil, err
	}
	category := &model.Category{}
	if err := applyCategory(category, f); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := s.categoryRepo.WithTx(tx)
		if err := ensureCategoryNameFree(ctx, categories, category.Name, 0); err != nil {
			return err
		}
		return categories.Create(ctx, category)
	})
	if err != nil {
		return nil, Persistence(err, fmt.Sprintf("Category '%s' already exists.", category.Name))
	}
	res := category.ToResponse()
	return &res, nil
}

func (s *inventoryService) UpdateCategory(ctx context.Context, id uint, f payload.Fields) (*model.CategoryResponse, error) {
	var updated *model.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := s.categoryRepo.WithTx(tx)
		category, err := categories.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, "Category not found")
		}
		if err := applyCategory(category, f); err != nil {
			return err
		}
		if f.Has("name") {
			if err := ensureCategoryNameFree(ctx, categories, category.Name, category.ID); err != nil {
				return err
			}
		}
		if err := categories.Update(ctx, category); err != nil {
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		return nil, Persistence(err, "Category name already exists.")
	}
	res := updated.ToResponse()
	return &res, nil
}

func (s *inventoryService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := s.categoryRepo.WithTx(tx)
		if _, err := categories.FindByID(ctx, id); err != nil {
			return lookupError(err, "Category not found")
		}
		// Products keep their category_id; readers see a null category_name.
		return categories.Delete(ctx, id)
	})
	if err != nil {
		return Persistence(err, "")
	}
	return nil
}

// Products

func (s *inventoryService) ListProducts(ctx context.Context) ([]model.ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, Persistence(err, "")
	}
	res := make([]model.ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, products[i].ToResponse())
	}
	return res, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, id uint) (*model.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Product not found")
	}
	res := product.ToResponse()
	return &res, nil
}

func applyProduct(p *model.Product, f payload.Fields) error {
	if err := applyAll(
		setString(f, "name", &p.Name),
		setOptionalString(f, "brand", &p.Brand),
		setOptionalString(f, "description", &p.Description),
		setOptionalInt(f, "warranty_months", &p.WarrantyMonths),
		setOptionalID(f, "category_id", &p.CategoryID),
	); err != nil {
		return err
	}
	return validateInput(&productInput{Name: p.Name, Brand: p.Brand, WarrantyMonths: p.WarrantyMonths})
}

func checkCategory(ctx context.Context, repo repository.CategoryRepository, id *uint) error {
	if id == nil {
		return Validation("category_id cannot be null.")
	}
	ok, err := repo.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return Reference("Category", *id)
	}
	return nil
}

func (s *inventoryService) CreateProduct(ctx context.Context, f payload.Fields) (*model.ProductResponse, error) {
	if err := requireFields(f, "Product name and category_id are required", "name", "category_id"); err != nil {
		return nil, err
	}
	product := &model.Product{}
	if err := applyProduct(product, f); err != nil {
		return nil, err
	}

	var created *model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkCategory(ctx, s.categoryRepo.WithTx(tx), product.CategoryID); err != nil {
			return err
		}
		products := s.productRepo.WithTx(tx)
		if err := products.Create(ctx, product); err != nil {
			return err
		}
		var err error
		created, err = products.FindByID(ctx, product.ID)
		return err
	})
	if err != nil {
		return nil, Persistence(err, "")
	}
	res := created.ToResponse()
	return &res, nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, id uint, f payload.Fields) (*model.ProductResponse, error) {
	var updated *model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		product, err := products.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, "Product not found")
		}
		if err := applyProduct(product, f); err != nil {
			return err
		}
		if f.Has("category_id") {
			if err := checkCategory(ctx, s.categoryRepo.WithTx(tx), product.CategoryID); err != nil {
				return err
			}
		}
		if err := products.Update(ctx, product); err != nil {
			return err
		}
		updated, err = products.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, Persistence(err, "")
	}
	res := updated.ToResponse()
	return &res, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		if _, err := products.FindByID(ctx, id); err != nil {
			return lookupError(err, "Product not found")
		}
		return products.Delete(ctx, id)
	})
	if err != nil {
		return Persistence(err, "")
	}
	return nil
}

// Suppliers

func (s *inventoryService) ListSuppliers(ctx context.Context) ([]model.SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx)
	if err != nil {
		return nil, Persistence(err, "")
	}
	res := make([]model.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		res = append(res, suppliers[i].ToResponse())
	}
	return res, nil
}

func (s *inventoryService) GetSupplier(ctx context.Context, id uint) (*model.SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Supplier not found")
	}
	res := supplier.ToResponse()
	return &res, nil
}

func applySupplier(sup *model.Supplier, f payload.Fields) error {
	if err := applyAll(
		setString(f, "name", &sup.Name),
		setOptionalString(f, "contact_person", &sup.ContactPerson),
		setOptionalString(f, "phone", &sup.Phone),
		setOptionalString(f, "email", &sup.Email),
		setOptionalString(f, "address", &sup.Address),
		setNullDecimal(f, "additional_fees", &sup.AdditionalFees),
	); err != nil {
		return err
	}
	return validateInput(&supplierInput{
		Name:          sup.Name,
		ContactPerson: sup.ContactPerson,
		Phone:         sup.Phone,
		Email:         sup.Email,
	})
}

func (s *inventoryService) CreateSupplier(ctx context.Context, f payload.Fields) (*model.SupplierResponse, error) {
	if err := requireFields(f, "Supplier name is required", "name"); err != nil {
		return nil, err
	}
	supplier := &model.Supplier{}
	if err := applySupplier(supplier, f); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.supplierRepo.WithTx(tx).Create(ctx, supplier)
	})
	if err != nil {
		return nil, Persistence(err, "")
	}
	res := supplier.ToResponse()
	return &res, nil
}

func (s *inventoryService) UpdateSupplier(ctx context.Context, id uint, f payload.Fields) (*model.SupplierResponse, error) {
	var updated *model.Supplier
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		suppliers := s.supplierRepo.WithTx(tx)
		supplier, err := suppliers.FindByID(ctx, id)
		if err != nil {
			return lookupError(err, "Supplier not found")
		}
		if err := applySupplier(supplier, f); err != nil {
			return err
		}
		if err := suppliers.Update(ctx, supplier); err != nil {
			return err
		}
		updated = supplier
		return nil
	})
	if err != nil {
		return nil, Persistence(err, "")
	}
	res := updated.ToResponse()
	return &res, nil
}

func (s *inventoryService) DeleteSupplier(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		suppliers := s.supplierRepo.WithTx(tx)
		if _, err := suppliers.FindByID(ctx, id); err != nil {
			return lookupError(err, "Supplier not found")
		}
		return suppliers.Delete(ctx, id)
	})
	if err != nil {
		return Persistence(err, "")
	}
	return nil
}
