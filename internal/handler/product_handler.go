package handler

import (
	"errors"
	"strconv"

	"github.com/Rafael22222222/smartbiz.lux/internal/model"
	"github.com/Rafael22222222/smartbiz.lux/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	inventory service.InventoryService
	ledger    service.LedgerService
}

func NewProductHandler(inventory service.InventoryService, ledger service.LedgerService) *ProductHandler {
	return &ProductHandler{inventory: inventory, ledger: ledger}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.inventory.CreateProduct(ownerID(c), &product); err != nil {
		if errors.Is(err, service.ErrSKUExists) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.inventory.UpdateProduct(ownerID(c), id, &product)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.inventory.DeleteProduct(ownerID(c), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.inventory.GetProducts(ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.inventory.GetProduct(ownerID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// GetLowStock returns products at or below their restock threshold
// Query params: limit (default 5)
func (h *ProductHandler) GetLowStock(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	products, err := h.ledger.ListLowStock(ownerID(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}
