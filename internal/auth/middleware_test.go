package auth

import (
	"net/http/httptest"
	"testing"

	"depo-backend/internal/config"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func setupTestApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()

	app := fiber.New()
	api := app.Group("/api", JWTMiddleware(cfg))
	api.Get("/me", MeHandler())

	owner := api.Group("/", RequireRole(models.RoleOwner))
	owner.Post("/products", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func TestJWTMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret-test-secret-test-secret!"}
	app := setupTestApp(t, cfg)

	req := httptest.NewRequest("GET", "/api/me", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("no header: expected 401 got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer bozuk.token.degeri")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("bad token: expected 401 got %d", resp.StatusCode)
	}

	// Başka anahtarla imzalanmış token da reddedilir
	foreign, err := GenerateToken("baska-bir-anahtar-baska-bir-anahtar", models.RoleOwner)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	req = httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("foreign token: expected 401 got %d", resp.StatusCode)
	}
}

func TestRequireRoleGatesOwnerRoutes(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret-test-secret-test-secret!"}
	app := setupTestApp(t, cfg)

	operatorToken, err := GenerateToken(cfg.JWTSecret, models.RoleOperator)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	ownerToken, err := GenerateToken(cfg.JWTSecret, models.RoleOwner)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Operatör paylaşılan uçlara girebilir
	req := httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+operatorToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("operator on /me: expected 200 got %d", resp.StatusCode)
	}

	// Sahip uçları operatöre kapalı
	req = httptest.NewRequest("POST", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+operatorToken)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("operator on owner route: expected 403 got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+ownerToken)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("owner on owner route: expected 201 got %d", resp.StatusCode)
	}
}
