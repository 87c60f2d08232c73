package inventory

import (
	"strings"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	Stock    float64 `json:"stock"`
	MinStock float64 `json:"min_stock"`
}

type CreateProductRequest struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"` // Opsiyonel
	Stock    float64 `json:"stock"`
	MinStock float64 `json:"min_stock"`
}

type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	Unit     *string  `json:"unit"`
	Category *string  `json:"category"`
	Stock    *float64 `json:"stock"`
	MinStock *float64 `json:"min_stock"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Unit:     p.Unit,
		Category: p.Category,
		Stock:    p.Stock,
		MinStock: p.MinStock,
	}
}

// GET /api/products?q=un (tüm authenticated kullanıcılar görebilir)
// q doluysa isim veya kategori üzerinde substring filtresi uygulanır
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			pattern := "%" + strings.ToLower(q) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
		}

		var products []models.Product
		if err := dbq.Order("id asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}

// GET /api/products/low-stock
// Stok miktarı minimum eşiğe eşit veya altında olan ürünler
func ListLowStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := LowStockProducts(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/products (sadece owner)
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Unit = strings.TrimSpace(body.Unit)
		body.Category = strings.TrimSpace(body.Category)

		if body.Name == "" || body.Unit == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name ve unit zorunlu")
		}
		if body.Stock < 0 || body.MinStock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stock ve min_stock negatif olamaz")
		}

		// İsim tekilliği bilerek kontrol edilmiyor: eski sistem aynı isimli
		// iki ürüne izin veriyordu, kimlik ID üzerinden yürüyor.
		p := models.Product{
			Name:     body.Name,
			Unit:     body.Unit,
			Category: body.Category,
			Stock:    body.Stock,
			MinStock: body.MinStock,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
	}
}

// PUT /api/products/:id (sadece owner)
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			p.Name = name
		}

		if body.Unit != nil {
			unit := strings.TrimSpace(*body.Unit)
			if unit == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Unit boş olamaz")
			}
			p.Unit = unit
		}

		if body.Category != nil {
			p.Category = strings.TrimSpace(*body.Category)
		}

		if body.Stock != nil {
			if *body.Stock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Stock negatif olamaz")
			}
			p.Stock = *body.Stock
		}

		if body.MinStock != nil {
			if *body.MinStock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "min_stock negatif olamaz")
			}
			p.MinStock = *body.MinStock
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		return c.JSON(toProductResponse(p))
	}
}
