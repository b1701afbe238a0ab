package serverutils

import (
	"net/http/httptest"
	"testing"

	"ai-analytics-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerMiddlewareStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperror.NewValidation("file", "bad"), fiber.StatusBadRequest},
		{"not found", &apperror.SessionNotFoundError{SessionID: "x"}, fiber.StatusNotFound},
		{"stage locked", &apperror.StageLockedError{Stage: "query"}, fiber.StatusConflict},
		{"ambiguous", &apperror.AmbiguousQueryError{Query: "avg", Reason: "no column"}, fiber.StatusUnprocessableEntity},
		{"unresolved", &apperror.UnresolvedQueryError{Query: "hm"}, fiber.StatusUnprocessableEntity},
		{"fiber error", fiber.NewError(fiber.StatusTeapot, "teapot"), fiber.StatusTeapot},
		{"unknown", assert.AnError, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/boom", func(*fiber.Ctx) error {
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestSessionIDHeaderRequired(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/needs-session", func(ctx *fiber.Ctx) error {
		id, err := SessionID(ctx)
		if err != nil {
			return err
		}
		return ctx.SendString(id)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/needs-session", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest("GET", "/needs-session", nil)
	req.Header.Set(HeaderSessionID, "abc")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
