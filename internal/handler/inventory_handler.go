package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

// InventoryHandler serves categories, products and suppliers.
type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GET /api/categories
func (h *InventoryHandler) ListCategories(c *fiber.Ctx) error {
	return listAll(c, h.service.ListCategories)
}

// GET /api/categories/:id
func (h *InventoryHandler) GetCategory(c *fiber.Ctx) error {
	return getOne(c, h.service.GetCategory)
}

// POST /api/categories
func (h *InventoryHandler) CreateCategory(c *fiber.Ctx) error {
	return createOne(c, h.service.CreateCategory)
}

// PUT /api/categories/:id
func (h *InventoryHandler) UpdateCategory(c *fiber.Ctx) error {
	return updateOne(c, h.service.UpdateCategory)
}

// DELETE /api/categories/:id
func (h *InventoryHandler) DeleteCategory(c *fiber.Ctx) error {
	return deleteOne(c, h.service.DeleteCategory, "Category deleted successfully")
}

// GET /api/products
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	return listAll(c, h.service.ListProducts)
}

// GET /api/products/:id
func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	return getOne(c, h.service.GetProduct)
}

// POST /api/products
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	return createOne(c, h.service.CreateProduct)
}

// PUT /api/products/:id
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	return updateOne(c, h.service.UpdateProduct)
}

// DELETE /api/products/:id
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	return deleteOne(c, h.service.DeleteProduct, "Product deleted successfully")
}

// GET /api/suppliers
func (h *InventoryHandler) ListSuppliers(c *fiber.Ctx) error {
	return listAll(c, h.service.ListSuppliers)
}

// GET /api/suppliers/:id
func (h *InventoryHandler) GetSupplier(c *fiber.Ctx) error {
	return getOne(c, h.service.GetSupplier)
}

// POST /api/suppliers
func (h *InventoryHandler) CreateSupplier(c *fiber.Ctx) error {
	return createOne(c, h.service.CreateSupplier)
}

// PUT /api/suppliers/:id
func (h *InventoryHandler) UpdateSupplier(c *fiber.Ctx) error {
	return updateOne(c, h.service.UpdateSupplier)
}

// DELETE /api/suppliers/:id
func (h *InventoryHandler) DeleteSupplier(c *fiber.Ctx) error {
	return deleteOne(c, h.service.DeleteSupplier, "Supplier deleted successfully")
}
