package handler

import (
	"github.com/Rafael22222222/smartbiz.lux/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	transactions service.TransactionService
}

func NewSaleHandler(transactions service.TransactionService) *SaleHandler {
	return &SaleHandler{transactions: transactions}
}

func (h *SaleHandler) RecordSale(c *fiber.Ctx) error {
	var req service.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.transactions.RecordSale(ownerID(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// ReconcileSale retries only the stock decrement for a sale that ended in a
// partial commit. Safe to call repeatedly.
func (h *SaleHandler) ReconcileSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.transactions.ReconcileSale(ownerID(c), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Sale reconciled", "data": sale})
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.transactions.GetSales(ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.transactions.GetSale(ownerID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}
