package auth

import (
	"depo-backend/internal/config"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Role     string `json:"role"`     // "operator" | "owner"
	Password string `json:"password"` // sadece owner için
}

// VerifyCredentials rol girişini doğrular. Operator şifresiz girer; owner tek
// paylaşılan şifreyle girer. OWNER_PASSWORD_HASH tanımlıysa bcrypt, değilse
// düz metin karşılaştırma yapılır. Bu bir güvenlik sınırı değildir.
func VerifyCredentials(cfg *config.Config, role models.Role, password string) bool {
	switch role {
	case models.RoleOperator:
		return true
	case models.RoleOwner:
		if cfg.OwnerPasswordHash != "" {
			return bcrypt.CompareHashAndPassword([]byte(cfg.OwnerPasswordHash), []byte(password)) == nil
		}
		return password == cfg.OwnerPassword
	}
	return false
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		role := models.Role(body.Role)
		if role != models.RoleOperator && role != models.RoleOwner {
			return fiber.NewError(fiber.StatusBadRequest, "Rol 'operator' veya 'owner' olmalı")
		}

		if !VerifyCredentials(cfg, role, body.Password) {
			return fiber.NewError(fiber.StatusUnauthorized, "Rol veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, role)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"role":  role,
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxRoleKey)
		role, ok := roleVal.(models.Role)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		return c.JSON(fiber.Map{
			"role": role,
		})
	}
}
