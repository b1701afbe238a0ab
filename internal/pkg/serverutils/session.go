package serverutils

import (
	"ai-analytics-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// HeaderSessionID carries the session identity on every request after
// session creation.
const HeaderSessionID = "X-Session-Id"

// SessionID extracts the session identifier from the request header.
func SessionID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Get(HeaderSessionID)
	if id == "" {
		return "", apperror.NewValidation(HeaderSessionID, "header is required")
	}
	return id, nil
}
