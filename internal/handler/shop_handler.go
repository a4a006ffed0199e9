package handler

import (
	"errors"

	"go-goldloan/internal/model"
	"go-goldloan/internal/repository"
	"go-goldloan/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ShopHandler works directly against the repository; the shop profile is
// a single settings row with no business logic behind it.
type ShopHandler struct {
	shops repository.ShopRepository
}

func NewShopHandler(shops repository.ShopRepository) *ShopHandler {
	return &ShopHandler{shops: shops}
}

func (h *ShopHandler) GetShopDetails(c *fiber.Ctx) error {
	details, err := h.shops.GetActive()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Shop details not configured"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(details)
}

func (h *ShopHandler) UpdateShopDetails(c *fiber.Ctx) error {
	var in model.ShopDetails
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if msg := validator.FirstError(&in); msg != "" {
		return c.Status(400).JSON(fiber.Map{"error": msg})
	}

	existing, err := h.shops.GetActive()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	if existing != nil {
		in.BaseModel = existing.BaseModel
	}
	in.IsActive = true
	in.UpdatedBy = actor(c)

	if err := h.shops.Save(&in); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save shop details"})
	}
	return c.JSON(fiber.Map{"message": "Shop details saved", "data": in})
}
