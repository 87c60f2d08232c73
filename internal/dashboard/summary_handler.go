package dashboard

import (
	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type WarehouseSummary struct {
	ProductCount  int64   `json:"product_count"`
	TotalStock    float64 `json:"total_stock"`
	LastEntryDate string  `json:"last_entry_date"` // boşsa hiç giriş yok
	LowStockCount int64   `json:"low_stock_count"`
}

// GET /api/dashboard/summary
// Eski sistemin kenar çubuğundaki özet: toplam ürün, toplam stok, son giriş tarihi.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var summary WarehouseSummary

		if err := database.DB.Model(&models.Product{}).Count(&summary.ProductCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}

		if err := database.DB.Model(&models.Product{}).
			Select("COALESCE(SUM(stock), 0)").
			Scan(&summary.TotalStock).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}

		if err := database.DB.Model(&models.Product{}).
			Where("stock <= min_stock").
			Count(&summary.LowStockCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}

		var lastEntry models.StockEntry
		if err := database.DB.Order("date desc, created_at desc").First(&lastEntry).Error; err == nil {
			summary.LastEntryDate = lastEntry.Date.Format("2006-01-02")
		}

		return c.JSON(summary)
	}
}
