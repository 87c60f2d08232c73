package inventory

import (
	"bytes"
	"fmt"
	"time"

	"depo-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/export/:table?format=csv|xlsx (sadece owner)
// table: products | entries | dispatches
// Dosya adı tablo adını ve günün tarihini taşır: products_20251209.csv
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		table := c.Params("table")

		var builder func(*gorm.DB) (*Table, error)
		switch table {
		case "products":
			builder = ProductsTable
		case "entries":
			builder = EntriesTable
		case "dispatches":
			builder = DispatchesTable
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Tablo 'products', 'entries' veya 'dispatches' olmalı")
		}

		t, err := builder(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tablo okunamadı")
		}

		format := c.Query("format", "csv")
		datePart := time.Now().Format("20060102")

		switch format {
		case "csv":
			var buf bytes.Buffer
			if err := WriteDelimited(&buf, t); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "CSV oluşturulamadı")
			}
			c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s_%s.csv"`, table, datePart))
			return c.Send(buf.Bytes())

		case "xlsx":
			data, err := TableToExcel(t)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Excel oluşturulamadı")
			}
			c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s_%s.xlsx"`, table, datePart))
			return c.Send(data)
		}

		return fiber.NewError(fiber.StatusBadRequest, "Format 'csv' veya 'xlsx' olmalı")
	}
}
