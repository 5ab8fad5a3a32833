package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SaleHandler serves clients and their recorded sales.
type SaleHandler struct {
	clients service.ClientService
	sales   service.SaleService
}

func NewSaleHandler(clients service.ClientService, sales service.SaleService) *SaleHandler {
	return &SaleHandler{clients: clients, sales: sales}
}

// GET /api/clients
func (h *SaleHandler) ListClients(c *fiber.Ctx) error {
	return listAll(c, h.clients.ListClients)
}

// GET /api/clients/:id
func (h *SaleHandler) GetClient(c *fiber.Ctx) error {
	return getOne(c, h.clients.GetClient)
}

// POST /api/clients
func (h *SaleHandler) CreateClient(c *fiber.Ctx) error {
	return createOne(c, h.clients.CreateClient)
}

// PUT /api/clients/:id
func (h *SaleHandler) UpdateClient(c *fiber.Ctx) error {
	return updateOne(c, h.clients.UpdateClient)
}

// DELETE /api/clients/:id
func (h *SaleHandler) DeleteClient(c *fiber.Ctx) error {
	return deleteOne(c, h.clients.DeleteClient, "Client deleted successfully")
}

// GET /api/clients/:id/sales
func (h *SaleHandler) ListClientSales(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	sales, err := h.sales.ListClientSales(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

// GET /api/sales
func (h *SaleHandler) ListSales(c *fiber.Ctx) error {
	return listAll(c, h.sales.ListSales)
}

// GET /api/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	return getOne(c, h.sales.GetSale)
}

// DELETE /api/sales/:id
func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	return deleteOne(c, h.sales.DeleteSale, "Sale deleted successfully")
}
