package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Marketplace-api/internal/application/analytics"
	"github.com/jhoicas/Marketplace-api/internal/application/auth"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/memory"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/Marketplace-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Marketplace-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Marketplace-api/pkg/jwt"
)

var seedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type server struct {
	app   *fiber.App
	store *memory.Store
}

// newServer arma la API completa sobre el almacén en memoria con tres cuentas y dos productos.
func newServer(t *testing.T, authPerMinute int) *server {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	for _, u := range []struct{ id, role string }{
		{"buyer", entity.RoleBuyer}, {"seller", entity.RoleSeller}, {"admin", entity.RoleAdmin},
	} {
		require.NoError(t, store.Users().Create(ctx, &entity.User{
			ID: u.id, Name: "Usuario " + u.id, Email: u.id + "@mail.test", Role: u.role,
			RoleSelected: true, CreatedAt: seedTime, UpdatedAt: seedTime,
		}))
	}
	for _, p := range []struct {
		id     string
		status entity.ProductStatus
	}{{"p-ok", entity.ProductApproved}, {"p-new", entity.ProductPending}} {
		require.NoError(t, store.Products().Create(ctx, &entity.Product{
			ID: p.id, SellerID: "seller", Name: "Lámpara " + p.id, Category: "hogar",
			Price: decimal.RequireFromString("30.00"), Stock: 2, Status: p.status,
			CreatedAt: seedTime, UpdatedAt: seedTime,
		}))
	}
	require.NoError(t, store.Orders().Create(ctx, &entity.Order{
		ID: "o1", BuyerID: "buyer", SellerID: "seller", Status: entity.OrderPending,
		Total: decimal.RequireFromString("30.00"),
		Items: []entity.OrderItem{{ID: "o1-1", OrderID: "o1", ProductID: "p-ok", Quantity: 1, Price: decimal.RequireFromString("30.00")}},
		CreatedAt: seedTime, UpdatedAt: seedTime,
	}))

	events := messaging.LogBroker{}
	const maxLimit = 50
	settings := usecase.NewSettingUseCase(store.Settings(), nil, 10, maxLimit)
	catalog := usecase.NewCatalogUseCase(store.Products(), maxLimit)
	authUC := auth.NewAuthUseCase(auth.Deps{
		Users:  store.Users(),
		Resets: store.Resets(),
		Tx:     store.TxRunner(),
		Events: events,
		States: memory.NewStateStore(),
		JWT:    auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer},
	})

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		Users:          usecase.NewUserAdmin(store.Users(), maxLimit),
		Products:       usecase.NewProductAdmin(store.Products(), events, maxLimit),
		Orders:         usecase.NewOrderAdmin(store.Orders(), store.TxRunner(), events, maxLimit),
		Reviews:        usecase.NewReviewAdmin(store.Reviews(), maxLimit),
		Tickets:        usecase.NewTicketAdmin(store.Tickets(), events, maxLimit),
		Notifications:  usecase.NewNotificationAdmin(store.Notifications(), maxLimit),
		AuthUC:         authUC,
		CatalogUC:      catalog,
		ReviewUC:       usecase.NewReviewUseCase(store.Reviews(), catalog, maxLimit),
		TicketUC:       usecase.NewTicketUseCase(store.Tickets(), store.Users(), store.TxRunner(), events, maxLimit),
		NotificationUC: usecase.NewNotificationUseCase(store.Notifications(), store.Users(), events, maxLimit),
		SettingUC:      settings,
		ReceiptUC:      usecase.NewOrderReceiptUseCase(store.Orders(), settings, infrapdf.NewOrderReceiptGenerator()),
		DashboardUC:    appanalytics.NewDashboardUseCase(store.Analytics()),
		RateLimiter:    memory.NewRateLimiter(),
		AuthPerMinute:  authPerMinute,
		JWTSecret:      testJWTSecret,
		FrontendURL:    "https://tienda.test/",
		AppName:        "marketplace-test",
	})
	return &server{app: app, store: store}
}

// call ejecuta la petición; role vacío la envía sin token.
func (s *server) call(t *testing.T, method, path, role string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if role != "" {
		req.Header.Set(fiber.HeaderAuthorization, tokenFor(t, role, role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, out
}

// tokenFor firma un token para el usuario sembrado con ese id.
func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, userID+"@mail.test", role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func decodeCode(t *testing.T, body []byte) string {
	t.Helper()
	var e struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

type page struct {
	Items      []map[string]any `json:"items"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

func decodePage(t *testing.T, body []byte) page {
	t.Helper()
	var p page
	require.NoError(t, json.Unmarshal(body, &p), string(body))
	return p
}

func TestHealth(t *testing.T) {
	s := newServer(t, 0)
	resp, body := s.call(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "marketplace-test")
}

func TestAdmin_RequiereRolAdmin(t *testing.T) {
	s := newServer(t, 0)
	paths := []string{
		"/api/admin/users", "/api/admin/products", "/api/admin/orders", "/api/admin/reviews",
		"/api/admin/tickets", "/api/admin/notifications", "/api/admin/settings",
		"/api/admin/dashboard/summary", "/api/admin/resources",
	}
	for _, p := range paths {
		resp, body := s.call(t, http.MethodGet, p, "", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, p)
		assert.Equal(t, "MISSING_TOKEN", decodeCode(t, body), p)

		resp, body = s.call(t, http.MethodGet, p, "buyer", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, p)
		assert.Equal(t, "FORBIDDEN", decodeCode(t, body), p)

		resp, _ = s.call(t, http.MethodGet, p, "admin", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, p)
	}
}

func TestAdmin_ListPaginacionYFiltros(t *testing.T) {
	s := newServer(t, 0)

	resp, body := s.call(t, http.MethodGet, "/api/admin/users?page=1&limit=2", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	p := decodePage(t, body)
	assert.Len(t, p.Items, 2)
	assert.Equal(t, 3, p.Pagination.Total)
	assert.Equal(t, 2, p.Pagination.TotalPages)

	resp, body = s.call(t, http.MethodGet, "/api/admin/users?role=seller", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p = decodePage(t, body)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "seller", p.Items[0]["id"])

	resp, body = s.call(t, http.MethodGet, "/api/admin/users?search=USUARIO%20ADM", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decodePage(t, body).Pagination.Total)

	// búsqueda sin coincidencias: 200 con items vacío, no null
	resp, body = s.call(t, http.MethodGet, "/api/admin/users?search=zzz-sin-coincidencias", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"items":[]`)
	p = decodePage(t, body)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.Pagination.Total)
	assert.Equal(t, 0, p.Pagination.TotalPages)

	resp, body = s.call(t, http.MethodGet, "/api/admin/products?status=all", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decodePage(t, body).Pagination.Total)

	for _, q := range []string{"page=0", "limit=0", "limit=51", "page=abc", "status=borrado"} {
		resp, body = s.call(t, http.MethodGet, "/api/admin/products?"+q, "admin", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, "VALIDATION", decodeCode(t, body), q)
	}
}

func TestAdmin_ModeracionDeProducto(t *testing.T) {
	s := newServer(t, 0)

	resp, body := s.call(t, http.MethodPut, "/api/admin/products/p-new/status", "admin", fiber.Map{"status": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"status":"approved"`)

	// ahora aparece en el catálogo público
	resp, body = s.call(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decodePage(t, body).Pagination.Total)

	resp, body = s.call(t, http.MethodPut, "/api/admin/products/p-new/status", "admin", fiber.Map{"status": "pending"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", decodeCode(t, body))

	resp, body = s.call(t, http.MethodPut, "/api/admin/products/p-new/status", "admin", fiber.Map{"status": "archivado"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeCode(t, body))

	resp, body = s.call(t, http.MethodPut, "/api/admin/products/nope/status", "admin", fiber.Map{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeCode(t, body))

	resp, _ = s.call(t, http.MethodDelete, "/api/admin/products/p-new", "admin", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = s.call(t, http.MethodDelete, "/api/admin/products/p-new", "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdmin_PedidosNoSeEliminan(t *testing.T) {
	s := newServer(t, 0)

	resp, _ := s.call(t, http.MethodDelete, "/api/admin/orders/o1", "admin", nil)
	assert.Contains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, resp.StatusCode)

	resp, body := s.call(t, http.MethodPut, "/api/admin/orders/o1/status", "admin", fiber.Map{"status": "processing"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = s.call(t, http.MethodGet, "/api/admin/orders/o1", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"to":"processing"`)

	resp, body = s.call(t, http.MethodGet, "/api/admin/orders/o1/pdf", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, _ = s.call(t, http.MethodGet, "/api/admin/orders/nope/pdf", "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuth_RegistroLoginYMe(t *testing.T) {
	s := newServer(t, 0)

	resp, body := s.call(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Ana", "email": "ana@mail.test", "password": "secreta123", "role": "seller",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.call(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Ana", "email": "ANA@mail.test", "password": "secreta123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", decodeCode(t, body))

	resp, body = s.call(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ana@mail.test", "password": "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = s.call(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ana@mail.test", "password": "secreta123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &login))
	assert.Equal(t, "seller", login.User.Role)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+login.Token)
	me, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer me.Body.Close()
	assert.Equal(t, http.StatusOK, me.StatusCode)

	// un vendedor no entra al panel
	req = httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+login.Token)
	adm, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer adm.Body.Close()
	assert.Equal(t, http.StatusForbidden, adm.StatusCode)
}

func TestAuth_ForgotPasswordSiempre202(t *testing.T) {
	s := newServer(t, 0)
	for _, email := range []string{"buyer@mail.test", "nadie@mail.test"} {
		resp, _ := s.call(t, http.MethodPost, "/api/auth/forgot-password", "", fiber.Map{"email": email})
		assert.Equal(t, http.StatusAccepted, resp.StatusCode, email)
	}
	resp, body := s.call(t, http.MethodPost, "/api/auth/reset-password", "", fiber.Map{"token": "inventado", "password": "nuevaclave1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, []string{"VALIDATION", "TOKEN_EXPIRED"}, decodeCode(t, body))
}

func TestAuth_GoogleNoConfigurado(t *testing.T) {
	s := newServer(t, 0)
	resp, _ := s.call(t, http.MethodGet, "/api/auth/google", "", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuth_RateLimitLogin(t *testing.T) {
	s := newServer(t, 2)
	creds := fiber.Map{"email": "buyer@mail.test", "password": "incorrecta"}
	for range 2 {
		resp, _ := s.call(t, http.MethodPost, "/api/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, body := s.call(t, http.MethodPost, "/api/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", decodeCode(t, body))
	assert.Equal(t, "60", resp.Header.Get(fiber.HeaderRetryAfter))

	// el registro no está limitado
	resp, _ = s.call(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Leo", "email": "leo@mail.test", "password": "secreta123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestTienda_ModoMantenimiento(t *testing.T) {
	s := newServer(t, 0)

	resp, body := s.call(t, http.MethodPut, "/api/admin/settings/maintenance_mode", "admin", fiber.Map{"value": "true"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	for _, p := range []string{"/api/products", "/api/feeds/products.xml"} {
		resp, body = s.call(t, http.MethodGet, p, "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, p)
		assert.Equal(t, "MAINTENANCE", decodeCode(t, body), p)
	}
	resp, _ = s.call(t, http.MethodGet, "/api/tickets", "buyer", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// auth y administración siguen disponibles
	resp, _ = s.call(t, http.MethodGet, "/api/admin/users", "admin", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.call(t, http.MethodPost, "/api/auth/forgot-password", "", fiber.Map{"email": "x@mail.test"})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, body = s.call(t, http.MethodPut, "/api/admin/settings/maintenance_mode", "admin", fiber.Map{"value": "quizas"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeCode(t, body))

	resp, _ = s.call(t, http.MethodPut, "/api/admin/settings/maintenance_mode", "admin", fiber.Map{"value": "false"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.call(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTienda_PageSizeDefaultDesdeSettings(t *testing.T) {
	s := newServer(t, 0)
	resp, _ := s.call(t, http.MethodPut, "/api/admin/settings/page_size_default", "admin", fiber.Map{"value": "1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := s.call(t, http.MethodGet, "/api/admin/users", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decodePage(t, body)
	assert.Equal(t, 1, p.Pagination.Limit)
	assert.Equal(t, 3, p.Pagination.TotalPages)
}

func TestTienda_CatalogoYReseñas(t *testing.T) {
	s := newServer(t, 0)

	resp, _ := s.call(t, http.MethodGet, "/api/products/p-new", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "un producto pendiente no es público")

	resp, body := s.call(t, http.MethodPost, "/api/products/p-ok/reviews", "", fiber.Map{"rating": 5})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = s.call(t, http.MethodPost, "/api/products/p-ok/reviews", "buyer", fiber.Map{
		"rating": 4, "comment": "Muy buena <script>alert(1)</script>",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.NotContains(t, string(body), "<script>")

	resp, body = s.call(t, http.MethodPost, "/api/products/p-ok/reviews", "buyer", fiber.Map{"rating": 3})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = s.call(t, http.MethodGet, "/api/products/p-ok/reviews?rating=4", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decodePage(t, body).Pagination.Total)

	resp, body = s.call(t, http.MethodGet, "/api/feeds/products.xml", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), "application/rss+xml"))
	assert.Contains(t, string(body), "https://tienda.test/products/p-ok")
	assert.NotContains(t, string(body), "p-new")
}

func TestTickets_HiloEntreUsuarioYAdmin(t *testing.T) {
	s := newServer(t, 0)

	resp, body := s.call(t, http.MethodPost, "/api/tickets", "buyer", fiber.Map{
		"subject": "No llegó mi pedido", "category": "order", "message": "Pedido o1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var tk struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &tk))
	assert.Equal(t, "open", tk.Status)

	// otro usuario no lo ve
	resp, _ = s.call(t, http.MethodGet, "/api/tickets/"+tk.ID, "seller", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.call(t, http.MethodPost, "/api/admin/tickets/"+tk.ID+"/responses", "admin", fiber.Map{"message": "Lo revisamos"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"status":"pending"`)

	resp, body = s.call(t, http.MethodGet, "/api/tickets/"+tk.ID, "buyer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Lo revisamos")

	resp, _ = s.call(t, http.MethodPut, "/api/admin/tickets/"+tk.ID+"/status", "admin", fiber.Map{"status": "closed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.call(t, http.MethodPost, "/api/tickets/"+tk.ID+"/responses", "buyer", fiber.Map{"message": "¿Novedades?"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeCode(t, body))
}

func TestNotificaciones_AltaYLectura(t *testing.T) {
	s := newServer(t, 0)

	resp, body := s.call(t, http.MethodPost, "/api/admin/notifications", "admin", fiber.Map{
		"title": "Mantenimiento", "message": "El domingo", "target_user_ids": []string{"buyer"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var n struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &n))

	resp, body = s.call(t, http.MethodPost, "/api/admin/notifications", "admin", fiber.Map{
		"title": "x", "message": "y", "target_all": true, "target_user_ids": []string{"buyer"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = s.call(t, http.MethodGet, "/api/notifications", "buyer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decodePage(t, body).Pagination.Total)
	resp, body = s.call(t, http.MethodGet, "/api/notifications", "seller", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decodePage(t, body).Pagination.Total)

	resp, body = s.call(t, http.MethodPut, "/api/admin/notifications/"+n.ID+"/read", "admin", fiber.Map{"is_read": true})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	resp, body = s.call(t, http.MethodGet, "/api/admin/notifications?is_read=true", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decodePage(t, body).Pagination.Total)
}

func TestDashboardYEsquemas(t *testing.T) {
	s := newServer(t, 0)

	resp, body := s.call(t, http.MethodGet, "/api/admin/dashboard/summary", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), "pending_products")

	resp, body = s.call(t, http.MethodGet, "/api/admin/resources", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var schemas []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &schemas))
	require.Len(t, schemas, 6)
	assert.Equal(t, "users", schemas[0].Name)
}

func TestCuerpoInvalido(t *testing.T) {
	s := newServer(t, 0)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/products/p-new/status", strings.NewReader("{no es json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, tokenFor(t, "admin", "admin"))
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeCode(t, body))
}
