package handler

import (
	"errors"

	"github.com/Rafael22222222/smartbiz.lux/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ownerID returns the authenticated owner set by the auth middleware.
func ownerID(c *fiber.Ctx) uuid.UUID {
	id, ok := c.Locals("owner_id").(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// respondError maps the domain error taxonomy onto HTTP statuses. A partial
// commit carries the persisted sale id so the client can reconcile it.
func respondError(c *fiber.Ctx, err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return c.Status(400).JSON(fiber.Map{"error": verr.Error()})
	}

	var pcerr *model.PartialCommitError
	if errors.As(err, &pcerr) {
		return c.Status(502).JSON(fiber.Map{
			"error":   pcerr.Error(),
			"sale_id": pcerr.Sale.ID,
		})
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, model.ErrInsufficientStock), errors.Is(err, model.ErrConflict):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
