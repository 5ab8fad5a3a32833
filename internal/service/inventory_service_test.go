package service

import (
	"context"
	"testing"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/payload"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func fields(t *testing.T, body string) payload.Fields {
	t.Helper()
	f, err := payload.Parse([]byte(body))
	require.NoError(t, err)
	return f
}

func newInventoryService(t *testing.T) (InventoryService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := NewInventoryService(db,
		repository.NewCategoryRepo(db),
		repository.NewProductRepo(db),
		repository.NewSupplierRepo(db),
	)
	return svc, db
}

func TestCategory_CRUD(t *testing.T) {
	svc, _ := newInventoryService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, fields(t, `{"name":"Tools","description":"Hand tools"}`))
	require.NoError(t, err)
	assert.Equal(t, "Tools", created.Name)

	got, err := svc.GetCategory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	updated, err := svc.UpdateCategory(ctx, created.ID, fields(t, `{"description":null}`))
	require.NoError(t, err)
	assert.Equal(t, "Tools", updated.Name)
	assert.Nil(t, updated.Description)

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteCategory(ctx, created.ID))
	_, err = svc.GetCategory(ctx, created.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindNotFound, KindOf(svc.DeleteCategory(ctx, created.ID)))
}

func TestCategory_Validation(t *testing.T) {
	svc, _ := newInventoryService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, fields(t, `{}`))
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Category name is required", PublicMessage(err))

	_, err = svc.CreateCategory(ctx, fields(t, `{"name":42}`))
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.UpdateCategory(ctx, 99, fields(t, `{"name":"x"}`))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCategory_DuplicateName(t *testing.T) {
	svc, db := newInventoryService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, fields(t, `{"name":"Tools"}`))
	require.NoError(t, err)
	other, err := svc.CreateCategory(ctx, fields(t, `{"name":"Paint"}`))
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, fields(t, `{"name":"Tools"}`))
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = svc.UpdateCategory(ctx, other.ID, fields(t, `{"name":"Tools"}`))
	assert.Equal(t, KindConflict, KindOf(err))

	// renaming to its own name is not a conflict
	_, err = svc.UpdateCategory(ctx, other.ID, fields(t, `{"name":"Paint"}`))
	assert.NoError(t, err)

	var n int64
	require.NoError(t, db.Model(&model.Category{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestProduct_RequiresExistingCategory(t *testing.T) {
	svc, db := newInventoryService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, fields(t, `{"name":"Hammer"}`))
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Product name and category_id are required", PublicMessage(err))

	_, err = svc.CreateProduct(ctx, fields(t, `{"name":"Hammer","category_id":5}`))
	assert.Equal(t, KindReference, KindOf(err))
	assert.Equal(t, "Category with ID 5 not found.", PublicMessage(err))

	var n int64
	require.NoError(t, db.Model(&model.Product{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestProduct_CategoryNameAfterCategoryDelete(t *testing.T) {
	svc, _ := newInventoryService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, fields(t, `{"name":"Tools"}`))
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, fields(t, `{"name":"Hammer","brand":"Stanley","warranty_months":12,"category_id":1}`))
	require.NoError(t, err)
	require.NotNil(t, product.CategoryName)
	assert.Equal(t, "Tools", *product.CategoryName)
	assert.Equal(t, 12, *product.WarrantyMonths)

	require.NoError(t, svc.DeleteCategory(ctx, cat.ID))

	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, *got.CategoryID)
	assert.Nil(t, got.CategoryName)
}

func TestProduct_PartialUpdate(t *testing.T) {
	svc, _ := newInventoryService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, fields(t, `{"name":"Tools"}`))
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, fields(t, `{"name":"Hammer","brand":"Stanley","category_id":1}`))
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, product.ID, fields(t, `{"description":"Claw hammer"}`))
	require.NoError(t, err)
	assert.Equal(t, "Hammer", updated.Name)
	assert.Equal(t, "Stanley", *updated.Brand)
	assert.Equal(t, "Claw hammer", *updated.Description)

	_, err = svc.UpdateProduct(ctx, product.ID, fields(t, `{"category_id":42}`))
	assert.Equal(t, KindReference, KindOf(err))

	_, err = svc.UpdateProduct(ctx, product.ID, fields(t, `{"name":null}`))
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.UpdateProduct(ctx, product.ID, fields(t, `{"warranty_months":-1}`))
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSupplier_CRUD(t *testing.T) {
	svc, _ := newInventoryService(t)
	ctx := context.Background()

	_, err := svc.CreateSupplier(ctx, fields(t, `{"phone":"123"}`))
	assert.Equal(t, "Supplier name is required", PublicMessage(err))

	sup, err := svc.CreateSupplier(ctx, fields(t, `{"name":"Acme","additional_fees":"4.5"}`))
	require.NoError(t, err)
	assert.Equal(t, "4.50", *sup.AdditionalFees)

	// supplier names are not unique
	_, err = svc.CreateSupplier(ctx, fields(t, `{"name":"Acme"}`))
	require.NoError(t, err)

	updated, err := svc.UpdateSupplier(ctx, sup.ID, fields(t, `{"additional_fees":null,"phone":"555-0100"}`))
	require.NoError(t, err)
	assert.Nil(t, updated.AdditionalFees)
	assert.Equal(t, "555-0100", *updated.Phone)
	assert.Equal(t, "Acme", updated.Name)

	require.NoError(t, svc.DeleteSupplier(ctx, sup.ID))
	_, err = svc.GetSupplier(ctx, sup.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	list, err := svc.ListSuppliers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
