package inventory

import (
	"errors"
	"strings"
	"time"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateDispatchRequest: Yeni sevkiyat kaydı
type CreateDispatchRequest struct {
	Date        string                `json:"date"` // "2025-12-09"
	Client      string                `json:"client"`
	OrderNumber string                `json:"order_number"`
	Items       []DispatchItemRequest `json:"items"`
}

type DispatchItemRequest struct {
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

type DispatchResponse struct {
	ID          uint                   `json:"id"`
	Date        string                 `json:"date"`
	Client      string                 `json:"client"`
	OrderNumber string                 `json:"order_number"`
	Items       []DispatchItemResponse `json:"items"`
	CreatedAt   string                 `json:"created_at"`
}

type DispatchItemResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
}

func toDispatchResponse(d models.Dispatch) DispatchResponse {
	items := make([]DispatchItemResponse, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, DispatchItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Unit:        item.Product.Unit,
			Quantity:    item.Quantity,
		})
	}
	return DispatchResponse{
		ID:          d.ID,
		Date:        d.Date.Format("2006-01-02"),
		Client:      d.Client,
		OrderNumber: d.OrderNumber,
		Items:       items,
		CreatedAt:   d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/dispatches
func CreateDispatchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDispatchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		lines := make([]DispatchLine, 0, len(body.Items))
		for _, item := range body.Items {
			lines = append(lines, DispatchLine{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		dispatch, err := RegisterDispatch(database.DB, body.Client, body.OrderNumber, d, lines)
		if err != nil {
			switch {
			case errors.Is(err, ErrDuplicateOrder), errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrValidation):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, ErrProductNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat oluşturulamadı")
		}

		// Ürün bilgileriyle birlikte döndür
		var created models.Dispatch
		if err := database.DB.Preload("Items.Product").First(&created, "id = ?", dispatch.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat okunamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toDispatchResponse(created))
	}
}

// GET /api/dispatches?q=acme&from=2025-01-01&to=2025-01-31
// q: müşteri adı veya sipariş numarası üzerinde substring filtresi
// from/to: ikisi birden verilirse tarih aralığı (sınırlar dahil)
func ListDispatchesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("q"))

		// Parse edilemeyen tarih sınırları yok sayılır, liste boşa düşmez
		var from, to *time.Time
		if fromStr := c.Query("from"); fromStr != "" {
			if t, err := time.Parse("2006-01-02", fromStr); err == nil {
				from = &t
			}
		}
		if toStr := c.Query("to"); toStr != "" {
			if t, err := time.Parse("2006-01-02", toStr); err == nil {
				to = &t
			}
		}

		dispatches, err := FilterDispatches(database.DB, query, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyatlar listelenemedi")
		}

		resp := make([]DispatchResponse, 0, len(dispatches))
		for _, d := range dispatches {
			resp = append(resp, toDispatchResponse(d))
		}
		return c.JSON(resp)
	}
}

// GET /api/dispatches/summary/by-client
func ClientSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := SummarizeByClient(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat özeti hesaplanamadı")
		}
		return c.JSON(summary)
	}
}
