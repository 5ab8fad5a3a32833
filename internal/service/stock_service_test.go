package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []StockEvent
}

func (p *recordingPublisher) Publish(event interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event.(StockEvent))
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

type stockFixture struct {
	svc    StockService
	db     *gorm.DB
	seed   *testutil.Fixture
	events *recordingPublisher
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	db := testutil.NewDB(t)
	events := &recordingPublisher{}
	svc := NewStockService(db,
		repository.NewStockRepo(db),
		repository.NewProductRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewUserRepo(db),
		events,
	)
	return &stockFixture{svc: svc, db: db, seed: testutil.Seed(t, db), events: events}
}

func (f *stockFixture) body(extra string) string {
	return fmt.Sprintf(`{"product_id":%d,"supplier_id":%d,"quantity":10,"selling_price":"12.50","deposited_by_user_id":%d%s}`,
		f.seed.Product.ID, f.seed.Supplier.ID, f.seed.User.ID, extra)
}

func (f *stockFixture) count(t *testing.T) int64 {
	var n int64
	require.NoError(t, f.db.Model(&model.Stock{}).Count(&n).Error)
	return n
}

func TestCreateStock(t *testing.T) {
	f := newStockFixture(t)

	st, err := f.svc.CreateStock(context.Background(), fields(t, f.body(`,"cost_price":"8","expiration_date":"2025-12-31","location":"A1"`)))
	require.NoError(t, err)

	assert.Equal(t, 10, st.Quantity)
	assert.Equal(t, "12.50", st.SellingPrice)
	assert.Equal(t, "8.00", *st.CostPrice)
	assert.Equal(t, "2025-12-31", *st.ExpirationDate)
	assert.Equal(t, "Hammer", *st.ProductName)
	assert.Equal(t, "Acme", *st.SupplierName)
	assert.Equal(t, "depositor", *st.DepositorUsername)
	assert.NotNil(t, st.DepositedAt)
	assert.Equal(t, []string{StockCreated}, f.events.actions())
}

func TestCreateStock_MissingFields(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.CreateStock(context.Background(), fields(t, `{"product_id":1,"supplier_id":1}`))

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Missing required fields: product_id, supplier_id, quantity, selling_price, deposited_by_user_id", PublicMessage(err))
	assert.Zero(t, f.count(t))
}

func TestCreateStock_DanglingReferences(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	body := fmt.Sprintf(`{"product_id":%d,"supplier_id":999,"quantity":1,"selling_price":1,"deposited_by_user_id":%d}`,
		f.seed.Product.ID, f.seed.User.ID)
	_, err := f.svc.CreateStock(ctx, fields(t, body))
	assert.Equal(t, KindReference, KindOf(err))
	assert.Equal(t, "Supplier with ID 999 not found.", PublicMessage(err))

	body = fmt.Sprintf(`{"product_id":777,"supplier_id":%d,"quantity":1,"selling_price":1,"deposited_by_user_id":%d}`,
		f.seed.Supplier.ID, f.seed.User.ID)
	_, err = f.svc.CreateStock(ctx, fields(t, body))
	assert.Equal(t, "Product with ID 777 not found.", PublicMessage(err))

	body = fmt.Sprintf(`{"product_id":%d,"supplier_id":%d,"quantity":1,"selling_price":1,"deposited_by_user_id":55}`,
		f.seed.Product.ID, f.seed.Supplier.ID)
	_, err = f.svc.CreateStock(ctx, fields(t, body))
	assert.Equal(t, "User with ID 55 not found.", PublicMessage(err))

	assert.Zero(t, f.count(t))
	assert.Empty(t, f.events.actions())
}

func TestCreateStock_InvalidDate(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.CreateStock(context.Background(), fields(t, f.body(`,"expiration_date":"31-12-2025"`)))

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Invalid date format for expiration_date. Use YYYY-MM-DD.", PublicMessage(err))
	assert.Zero(t, f.count(t))
}

func TestCreateStock_EmptyDateIsNull(t *testing.T) {
	f := newStockFixture(t)

	st, err := f.svc.CreateStock(context.Background(), fields(t, f.body(`,"expiration_date":""`)))

	require.NoError(t, err)
	assert.Nil(t, st.ExpirationDate)
}

func TestUpdateStock_OnlyTouchesPresentFields(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()
	orig := f.seed.SeedStock(t, f.db, 10, "8", "12.5")

	updated, err := f.svc.UpdateStock(ctx, orig.ID, fields(t, `{"quantity":4}`))
	require.NoError(t, err)

	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, "12.50", updated.SellingPrice)
	assert.Equal(t, "8.00", *updated.CostPrice)
	assert.Equal(t, f.seed.Product.ID, updated.ProductID)
	assert.Equal(t, f.seed.Supplier.ID, updated.SupplierID)
	assert.Equal(t, f.seed.User.ID, *updated.DepositedByUserID)

	got, err := f.svc.GetStock(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)
	assert.Equal(t, []string{StockUpdated}, f.events.actions())
}

func TestUpdateStock_Rejections(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()
	orig := f.seed.SeedStock(t, f.db, 10, "", "5")

	_, err := f.svc.UpdateStock(ctx, 999, fields(t, `{"quantity":1}`))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Stock item not found", PublicMessage(err))

	_, err = f.svc.UpdateStock(ctx, orig.ID, fields(t, `{"supplier_id":404}`))
	assert.Equal(t, KindReference, KindOf(err))

	_, err = f.svc.UpdateStock(ctx, orig.ID, fields(t, `{"expiration_date":"2025/01/01"}`))
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.svc.UpdateStock(ctx, orig.ID, fields(t, `{"quantity":"many"}`))
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.svc.UpdateStock(ctx, orig.ID, fields(t, `{"selling_price":null}`))
	assert.Equal(t, KindValidation, KindOf(err))

	got, err := f.svc.GetStock(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
	assert.Equal(t, f.seed.Supplier.ID, got.SupplierID)
	assert.Nil(t, got.ExpirationDate)
}

func TestDeleteStock(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()
	st := f.seed.SeedStock(t, f.db, 3, "", "5")

	require.NoError(t, f.svc.DeleteStock(ctx, st.ID))
	assert.Zero(t, f.count(t))
	assert.Equal(t, KindNotFound, KindOf(f.svc.DeleteStock(ctx, st.ID)))
	assert.Equal(t, []string{StockDeleted}, f.events.actions())
}

func TestDeleteStock_RestrictedBySaleItems(t *testing.T) {
	f := newStockFixture(t)
	st := f.seed.SeedStock(t, f.db, 3, "", "5")
	f.seed.SeedSale(t, f.db, st)

	err := f.svc.DeleteStock(context.Background(), st.ID)

	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, int64(1), f.count(t))
}

func TestStockService_NilPublisher(t *testing.T) {
	db := testutil.NewDB(t)
	seed := testutil.Seed(t, db)
	svc := NewStockService(db, repository.NewStockRepo(db), repository.NewProductRepo(db),
		repository.NewSupplierRepo(db), repository.NewUserRepo(db), nil)

	body := fmt.Sprintf(`{"product_id":%d,"supplier_id":%d,"quantity":1,"selling_price":2,"deposited_by_user_id":%d}`,
		seed.Product.ID, seed.Supplier.ID, seed.User.ID)
	_, err := svc.CreateStock(context.Background(), fields(t, body))
	assert.NoError(t, err)
}
