package handler

import (
	"go-goldloan/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BillingHandler struct {
	service service.BillingService
}

func NewBillingHandler(s service.BillingService) *BillingHandler {
	return &BillingHandler{service: s}
}

func (h *BillingHandler) CreateBilling(c *fiber.Ctx) error {
	var req service.BillingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.CreateBilling(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Billing created successfully",
		"data":    result,
	})
}
