package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/ports"
)

// maintenanceChecker contrato mínimo que necesita RequireOnline.
// Lo implementa *usecase.SettingUseCase; la interfaz evita acoplar el middleware al caso de uso.
type maintenanceChecker interface {
	MaintenanceEnabled(ctx context.Context) (bool, error)
}

// RequireOnline corta las rutas de la tienda mientras maintenance_mode=true.
//
// Comportamiento:
//   - 503 MAINTENANCE → sitio en mantenimiento.
//   - 503 SETTINGS_UNAVAILABLE → fallo de infraestructura al leer la configuración.
func RequireOnline(checker maintenanceChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		on, err := checker.MaintenanceEnabled(c.UserContext())
		if err != nil {
			log.Error().Err(err).Msg("leer modo mantenimiento")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SETTINGS_UNAVAILABLE",
				Message: "no se pudo verificar el estado del sitio, intente más tarde",
			})
		}
		if on {
			c.Set(fiber.HeaderRetryAfter, "300")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MAINTENANCE",
				Message: "el sitio está en mantenimiento",
			})
		}
		return c.Next()
	}
}

// RateLimit ventana fija por IP y scope. limiter nil o limit <= 0 desactiva el límite.
// Un fallo del limitador deja pasar la petición.
func RateLimit(limiter ports.RateLimiter, scope string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil || limit <= 0 {
			return c.Next()
		}
		key := scope + ":" + c.IP()
		ok, err := limiter.Allow(c.UserContext(), key, limit, window)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rate limit no disponible")
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		if !ok {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas solicitudes, intente más tarde",
			})
		}
		return c.Next()
	}
}

// RequestLogger registra método, ruta, estado, latencia, request id y usuario.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// el ErrorHandler fija el estado final antes de registrar
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Interface("request_id", c.Locals("requestid"))
		if uid := GetUserID(c); uid != "" {
			ev.Str("user_id", uid)
		}
		ev.Msg("http")
		return nil
	}
}
