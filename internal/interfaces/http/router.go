package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Marketplace-api/internal/application/analytics"
	"github.com/jhoicas/Marketplace-api/internal/application/auth"
	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	// recursos del panel de administración
	Users         *usecase.UserAdmin
	Products      *usecase.ProductAdmin
	Orders        *usecase.OrderAdmin
	Reviews       *usecase.ReviewAdmin
	Tickets       *usecase.TicketAdmin
	Notifications *usecase.NotificationAdmin

	AuthUC         *auth.AuthUseCase
	CatalogUC      *usecase.CatalogUseCase
	ReviewUC       *usecase.ReviewUseCase
	TicketUC       *usecase.TicketUseCase
	NotificationUC *usecase.NotificationUseCase
	SettingUC      *usecase.SettingUseCase
	ReceiptUC      *usecase.OrderReceiptUseCase
	DashboardUC    *appanalytics.DashboardUseCase

	RateLimiter   ports.RateLimiter // nil desactiva el límite
	AuthPerMinute int
	JWTSecret     string
	FrontendURL   string
	AppName       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)
	online := RequireOnline(deps.SettingUC)

	// Auth (público salvo select-role y me). Disponible en mantenimiento.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	limited := func(scope string) fiber.Handler {
		return RateLimit(deps.RateLimiter, scope, deps.AuthPerMinute, time.Minute)
	}
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", limited("login"), authHandler.Login)
	authGroup.Get("/google", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/select-role", authMW, authHandler.SelectRole)
	authGroup.Post("/forgot-password", limited("forgot"), authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Tienda
	products := api.Group("/products", online)
	productHandler := NewProductHandler(deps.CatalogUC, deps.ReviewUC, deps.SettingUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/reviews", productHandler.ListReviews)
	products.Post("/:id/reviews", authMW, productHandler.CreateReview)

	feeds := api.Group("/feeds", online)
	feedHandler := NewFeedHandler(deps.CatalogUC, deps.SettingUC, deps.FrontendURL)
	feeds.Get("/products.xml", feedHandler.Products)

	ticketHandler := NewTicketHandler(deps.TicketUC, deps.AuthUC, deps.SettingUC)
	tickets := api.Group("/tickets", online, authMW)
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/", ticketHandler.ListMine)
	tickets.Get("/:id", ticketHandler.GetMine)
	tickets.Post("/:id/responses", ticketHandler.Reply)

	notificationHandler := NewNotificationHandler(deps.NotificationUC, deps.SettingUC)
	notifications := api.Group("/notifications", online, authMW)
	notifications.Get("/", notificationHandler.ListMine)

	// Administración: una sola cadena de middleware para todo el grupo
	adminGroup := api.Group("/admin", authMW, RequireRole(entity.RoleAdmin))

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	adminGroup.Get("/dashboard/summary", dashboardHandler.GetSummary)
	adminGroup.Get("/resources", dashboardHandler.Resources)

	settingHandler := NewSettingHandler(deps.SettingUC)
	adminGroup.Get("/settings", settingHandler.List)
	adminGroup.Put("/settings/:key", settingHandler.Update)

	orderHandler := NewOrderHandler(deps.ReceiptUC)
	adminGroup.Get("/orders/:id/pdf", orderHandler.ReceiptPDF)
	adminGroup.Post("/notifications", notificationHandler.Create)
	adminGroup.Put("/notifications/:id/read", notificationHandler.SetRead)
	adminGroup.Post("/tickets/:id/responses", ticketHandler.Reply)

	NewResourceHandler(deps.Users, deps.SettingUC).Mount(adminGroup)
	NewResourceHandler(deps.Products, deps.SettingUC).Mount(adminGroup)
	NewResourceHandler(deps.Orders, deps.SettingUC).Mount(adminGroup)
	NewResourceHandler(deps.Reviews, deps.SettingUC).Mount(adminGroup)
	NewResourceHandler(deps.Tickets, deps.SettingUC).Mount(adminGroup)
	NewResourceHandler(deps.Notifications, deps.SettingUC).Mount(adminGroup)
}
