package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

// GET /api/stocks
func (h *StockHandler) List(c *fiber.Ctx) error {
	return listAll(c, h.service.ListStocks)
}

// GET /api/stocks/:id
func (h *StockHandler) Get(c *fiber.Ctx) error {
	return getOne(c, h.service.GetStock)
}

// POST /api/stocks
func (h *StockHandler) Create(c *fiber.Ctx) error {
	return createOne(c, h.service.CreateStock)
}

// PUT /api/stocks/:id
func (h *StockHandler) Update(c *fiber.Ctx) error {
	return updateOne(c, h.service.UpdateStock)
}

// DELETE /api/stocks/:id
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	return deleteOne(c, h.service.DeleteStock, "Stock item deleted successfully")
}
