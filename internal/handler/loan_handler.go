package handler

import (
	"go-goldloan/internal/model"
	"go-goldloan/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LoanHandler struct {
	service service.LoanService
}

func NewLoanHandler(s service.LoanService) *LoanHandler {
	return &LoanHandler{service: s}
}

// GetLoans lists loans filtered by ?status=active|inactive (default active).
// Active loans carry a live due-amount annotation.
func (h *LoanHandler) GetLoans(c *fiber.Ctx) error {
	status := model.LoanStatus(c.Query("status", string(model.LoanActive)))
	if status != model.LoanActive && status != model.LoanRepaid {
		return c.Status(400).JSON(fiber.Map{"error": "status must be 'active' or 'inactive'"})
	}

	loans, err := h.service.ListByStatus(status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(loans)
}

func (h *LoanHandler) GetLoan(c *fiber.Ctx) error {
	view, err := h.service.GetByIdentifier(c.Params("identifier"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func (h *LoanHandler) SearchByPhone(c *fiber.Ctx) error {
	loans, err := h.service.SearchByPhone(c.Params("phone"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(loans)
}

// PurgeLoan removes a settled loan and its dependent records (admin only).
func (h *LoanHandler) PurgeLoan(c *fiber.Ctx) error {
	if err := h.service.Purge(c.Params("identifier"), actor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Loan and dependent records removed"})
}
