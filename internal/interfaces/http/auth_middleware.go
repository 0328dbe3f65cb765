package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/obrasul/production-api/internal/application/dto"
	jwtutil "github.com/obrasul/production-api/pkg/jwt"
)

// Chaves usadas em c.Locals pelo AuthMiddleware.
const (
	LocalUserID    = "user_id"
	LocalUserEmail = "user_email"
)

// AuthMiddleware valida o header Authorization (Bearer <token>) e injeta
// as claims do usuário no contexto da requisição.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_TOKEN",
				Message: "header Authorization ausente",
			})
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "formato esperado: Bearer <token>",
			})
		}

		userID, email, err := jwtutil.Parse(jwtSecret, parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "token inválido ou expirado",
			})
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserEmail, email)
		return c.Next()
	}
}

// GetUserID retorna o id do usuário autenticado, ou "" fora do middleware.
func GetUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// GetUserEmail retorna o e-mail do usuário autenticado.
func GetUserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalUserEmail).(string)
	return email
}
