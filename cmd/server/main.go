package main

import (
	"log"
	"strings"

	"depo-backend/internal/auth"
	"depo-backend/internal/config"
	"depo-backend/internal/dashboard"
	"depo-backend/internal/database"
	"depo-backend/internal/inventory"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Ürünler
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/products/low-stock", inventory.ListLowStockHandler())

	// Stok girişleri
	protected.Post("/stock-entries", inventory.CreateStockEntryHandler())
	protected.Get("/stock-entries", inventory.ListStockEntriesHandler())

	// Sevkiyatlar
	protected.Post("/dispatches", inventory.CreateDispatchHandler())
	protected.Get("/dispatches", inventory.ListDispatchesHandler())
	protected.Get("/dispatches/summary/by-client", inventory.ClientSummaryHandler())

	// Dashboard
	protected.Get("/dashboard/summary", dashboard.SummaryHandler())

	// Owner routes: ürün düzenleme ve içe/dışa aktarma
	ownerRoutes := protected.Group("")
	ownerRoutes.Use(auth.RequireRole(models.RoleOwner))

	ownerRoutes.Post("/products", inventory.CreateProductHandler())
	ownerRoutes.Put("/products/:id", inventory.UpdateProductHandler())

	ownerRoutes.Post("/import/products/preview", inventory.ImportProductsPreviewHandler())
	ownerRoutes.Post("/import/products", inventory.ImportProductsHandler())
	ownerRoutes.Get("/export/:table", inventory.ExportHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
