package inventory

import (
	"errors"
	"time"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateStockEntryRequest struct {
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Date      string  `json:"date"`   // "2025-12-09"
	Reason    string  `json:"reason"` // Opsiyonel
}

type StockEntryResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	Date        string  `json:"date"`
	Reason      string  `json:"reason"`
	CreatedAt   string  `json:"created_at"`
}

// POST /api/stock-entries
func CreateStockEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id zorunlu")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		entry, err := RegisterEntry(database.DB, body.ProductID, body.Quantity, d, body.Reason)
		if err != nil {
			switch {
			case errors.Is(err, ErrValidation):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, ErrProductNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Stok girişi oluşturulamadı")
		}

		var product models.Product
		_ = database.DB.First(&product, "id = ?", entry.ProductID).Error

		return c.Status(fiber.StatusCreated).JSON(StockEntryResponse{
			ID:          entry.ID,
			ProductID:   entry.ProductID,
			ProductName: entry.ProductName,
			Unit:        product.Unit,
			Quantity:    entry.Quantity,
			Date:        entry.Date.Format("2006-01-02"),
			Reason:      entry.Reason,
			CreatedAt:   entry.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/stock-entries
func ListStockEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entries []models.StockEntry
		if err := database.DB.
			Preload("Product").
			Order("date desc, created_at desc").
			Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok girişleri listelenemedi")
		}

		resp := make([]StockEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, StockEntryResponse{
				ID:          e.ID,
				ProductID:   e.ProductID,
				ProductName: e.ProductName,
				Unit:        e.Product.Unit,
				Quantity:    e.Quantity,
				Date:        e.Date.Format("2006-01-02"),
				Reason:      e.Reason,
				CreatedAt:   e.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}
