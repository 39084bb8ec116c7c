// Package console implementa el lado cliente de la administración:
// un cliente REST de la API y los controladores de listado y de acciones con confirmación.
package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/resource"
)

// DefaultTimeout tiempo máximo de una petición sin deadline en el contexto.
const DefaultTimeout = 10 * time.Second

var (
	// ErrUnavailable la API respondió 5xx o no respondió.
	ErrUnavailable = errors.New("servicio no disponible")
	// ErrRateLimited la API respondió 429.
	ErrRateLimited = errors.New("demasiadas solicitudes")
)

// APIError respuesta de error de la API. Unwrap devuelve el error de dominio equivalente,
// así el llamador usa errors.Is(err, domain.ErrNotFound) igual que en el servidor.
type APIError struct {
	Status  int
	Code    string
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

// kindFor traduce estado HTTP y código de error a un error de dominio.
func kindFor(status int, code string) error {
	switch {
	case status == fiber.StatusBadRequest && code == "TOKEN_EXPIRED":
		return domain.ErrTokenExpired
	case status == fiber.StatusBadRequest:
		return domain.ErrInvalidInput
	case status == fiber.StatusUnauthorized:
		return domain.ErrUnauthorized
	case status == fiber.StatusForbidden:
		return domain.ErrForbidden
	case status == fiber.StatusNotFound:
		return domain.ErrNotFound
	case status == fiber.StatusConflict:
		switch code {
		case "INVALID_TRANSITION":
			return domain.ErrInvalidTransition
		case "DUPLICATE":
			return domain.ErrDuplicate
		case "EMAIL_EXISTS":
			return domain.ErrEmailAlreadyExists
		}
		return domain.ErrConflict
	case status == fiber.StatusTooManyRequests:
		return ErrRateLimited
	case status == fiber.StatusServiceUnavailable && code == "MAINTENANCE":
		return domain.ErrMaintenance
	case status >= fiber.StatusInternalServerError:
		return ErrUnavailable
	}
	return domain.ErrInvalidInput
}

// Client cliente REST de la API con token Bearer. Seguro para uso concurrente.
type Client struct {
	baseURL string
	timeout time.Duration

	mu    sync.RWMutex
	token string
}

// NewClient construye el cliente. timeout <= 0 usa DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

// SetToken fija el token enviado en Authorization.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token devuelve el token actual.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login autentica y guarda el token para las peticiones siguientes.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.Do(ctx, fiber.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// Resources esquemas publicados por la API. Transition no viaja; usar resource.Lookup para validar transiciones.
func (c *Client) Resources(ctx context.Context) ([]resource.Schema, error) {
	var out []resource.Schema
	if err := c.Do(ctx, fiber.MethodGet, "/api/admin/resources", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type result struct {
	status int
	body   []byte
	err    error
}

// Do ejecuta method sobre path. in se envía como JSON si no es nil; out recibe la respuesta 2xx.
// Si ctx se cancela antes de la respuesta, Do retorna ctx.Err() y la respuesta tardía se descarta.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	token := c.Token()

	done := make(chan result, 1)
	go func() {
		a := fiber.AcquireAgent()
		req := a.Request()
		req.Header.SetMethod(method)
		req.SetRequestURI(uri)
		if err := a.Parse(); err != nil {
			fiber.ReleaseAgent(a)
			done <- result{err: err}
			return
		}
		a.Timeout(timeout)
		a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
		if token != "" {
			a.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
		if in != nil {
			a.JSON(in)
		}
		// Bytes libera el agente.
		status, body, errs := a.Bytes()
		if len(errs) > 0 {
			done <- result{err: fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))}
			return
		}
		done <- result{status: status, body: body}
	}()

	var res result
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return res.err
	}
	if res.status >= fiber.StatusBadRequest {
		var e dto.ErrorResponse
		_ = json.Unmarshal(res.body, &e)
		return &APIError{Status: res.status, Code: e.Code, Message: e.Message, kind: kindFor(res.status, e.Code)}
	}
	if out == nil || len(res.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return fmt.Errorf("decodificar respuesta de %s %s: %w", method, path, err)
	}
	return nil
}
