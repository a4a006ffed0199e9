package handler

import (
	"go-goldloan/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RepaymentHandler struct {
	service service.RepaymentService
}

func NewRepaymentHandler(s service.RepaymentService) *RepaymentHandler {
	return &RepaymentHandler{service: s}
}

func (h *RepaymentHandler) RepayLoan(c *fiber.Ctx) error {
	var req service.RepaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	receipt, err := h.service.Repay(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Loan repaid successfully",
		"data":    receipt,
	})
}

// SearchLoan resolves an active loan by loan code or customer phone for
// the repayment screen, with a live due-amount quote.
func (h *RepaymentHandler) SearchLoan(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	view, err := h.service.SearchActive(identifier)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"loan": view})
}
