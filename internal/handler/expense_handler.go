package handler

import (
	"github.com/Rafael22222222/smartbiz.lux/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ExpenseHandler struct {
	transactions service.TransactionService
}

func NewExpenseHandler(transactions service.TransactionService) *ExpenseHandler {
	return &ExpenseHandler{transactions: transactions}
}

func (h *ExpenseHandler) RecordExpense(c *fiber.Ctx) error {
	var req service.RecordExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	expense, err := h.transactions.RecordExpense(ownerID(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Expense recorded", "data": expense})
}

func (h *ExpenseHandler) GetExpenses(c *fiber.Ctx) error {
	expenses, err := h.transactions.GetExpenses(ownerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(expenses)
}
