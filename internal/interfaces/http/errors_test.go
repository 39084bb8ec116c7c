package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	apphttp "github.com/jhoicas/Marketplace-api/internal/interfaces/http"
)

func TestErrorHandler_CodigosDeDominio(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"transición inválida", fmt.Errorf("%w: pedido", domain.ErrInvalidTransition), http.StatusConflict, "INVALID_TRANSITION"},
		{"estado cambiado a la vez", fmt.Errorf("actualizar status: %w", domain.ErrStaleStatus), http.StatusConflict, "CONFLICT"},
		{"token usado", domain.ErrTokenExpired, http.StatusBadRequest, "TOKEN_EXPIRED"},
		{"fallo interno", errors.New("pool cerrado"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
			app.Get("/x", func(*fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}
