package handler

import (
	"time"

	"go-goldloan/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FinanceHandler struct {
	service service.FinanceService
}

func NewFinanceHandler(s service.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: s}
}

func (h *FinanceHandler) GetExpenses(c *fiber.Ctx) error {
	month := c.QueryInt("month", 0)
	year := c.QueryInt("year", 0)

	if month > 0 && year > 0 {
		expense, err := h.service.GetExpense(month, year)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(expense)
	}

	expenses, err := h.service.ListExpenses(year)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(expenses)
}

func (h *FinanceHandler) SaveExpense(c *fiber.Ctx) error {
	var in service.ExpenseInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	expense, err := h.service.UpsertExpense(&in, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Expense record saved", "data": expense})
}

func (h *FinanceHandler) GetBalanceSheets(c *fiber.Ctx) error {
	month := c.QueryInt("month", 0)
	year := c.QueryInt("year", 0)

	if month > 0 && year > 0 {
		sheet, err := h.service.GetBalanceSheet(month, year)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(sheet)
	}

	sheets, err := h.service.ListBalanceSheets(year)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sheets)
}

func (h *FinanceHandler) SaveBalanceSheet(c *fiber.Ctx) error {
	var in service.BalanceSheetInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sheet, err := h.service.UpsertBalanceSheet(&in, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Balance sheet saved", "data": sheet})
}

// GetTransactions lists ledger entries, optionally filtered by loan and
// date range (?loan=<uuid>&from=2026-01-01&to=2026-01-31).
func (h *FinanceHandler) GetTransactions(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date range, use YYYY-MM-DD"})
	}

	var loanID *uuid.UUID
	if raw := c.Query("loan"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid loan ID"})
		}
		loanID = &id
	}

	entries, err := h.service.ListTransactions(from, to, loanID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(entries)
}

func (h *FinanceHandler) GetTransactionSummary(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date range, use YYYY-MM-DD"})
	}

	summary, err := h.service.TransactionSummary(from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"summary":         summary,
		"total_disbursed": summary.TotalDisbursed(),
		"total_collected": summary.TotalCollected(),
	})
}

// dateRange parses ?from / ?to, defaulting to the last 30 days.
func dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, err
		}
		// inclusive end of day
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}
	return from, to, nil
}
