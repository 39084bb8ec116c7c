package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/Marketplace-api/docs"
	appanalytics "github.com/jhoicas/Marketplace-api/internal/application/analytics"
	"github.com/jhoicas/Marketplace-api/internal/application/auth"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/bootstrap"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/messaging"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/oauth"
	infrapdf "github.com/jhoicas/Marketplace-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Marketplace-api/internal/interfaces/http"
	"github.com/jhoicas/Marketplace-api/pkg/config"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
)

// @title                       Marketplace API
// @version                     1.0
// @description                 Tienda y panel de administración del marketplace.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Str("events", cfg.Events.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := bootstrap.OpenStore(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén")
	}
	defer repos.Close()

	eph, err := bootstrap.OpenEphemeral(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer eph.Close()

	broker, err := messaging.New(cfg.Events)
	if err != nil {
		log.Fatal().Err(err).Msg("broker de eventos")
	}
	defer broker.Close()

	maxLimit := cfg.Pagination.MaxLimit
	settingUC := usecase.NewSettingUseCase(repos.Settings, eph.SettingsCache, cfg.Pagination.DefaultLimit, maxLimit)
	catalogUC := usecase.NewCatalogUseCase(repos.Products, maxLimit)

	authDeps := auth.Deps{
		Users:  repos.Users,
		Resets: repos.Resets,
		Tx:     repos.Tx,
		Events: broker,
		States: eph.States,
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		FrontendURL: cfg.App.FrontendURL,
	}
	if cfg.Google.Enabled() {
		authDeps.Google = oauth.NewGoogleProvider(cfg.Google)
	} else {
		log.Info().Msg("GOOGLE_CLIENT_ID vacío: login con Google deshabilitado")
	}
	authUC := auth.NewAuthUseCase(authDeps)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Marketplace API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Users:          usecase.NewUserAdmin(repos.Users, maxLimit),
		Products:       usecase.NewProductAdmin(repos.Products, broker, maxLimit),
		Orders:         usecase.NewOrderAdmin(repos.Orders, repos.Tx, broker, maxLimit),
		Reviews:        usecase.NewReviewAdmin(repos.Reviews, maxLimit),
		Tickets:        usecase.NewTicketAdmin(repos.Tickets, broker, maxLimit),
		Notifications:  usecase.NewNotificationAdmin(repos.Notifications, maxLimit),
		AuthUC:         authUC,
		CatalogUC:      catalogUC,
		ReviewUC:       usecase.NewReviewUseCase(repos.Reviews, catalogUC, maxLimit),
		TicketUC:       usecase.NewTicketUseCase(repos.Tickets, repos.Users, repos.Tx, broker, maxLimit),
		NotificationUC: usecase.NewNotificationUseCase(repos.Notifications, repos.Users, broker, maxLimit),
		SettingUC:      settingUC,
		ReceiptUC:      usecase.NewOrderReceiptUseCase(repos.Orders, settingUC, infrapdf.NewOrderReceiptGenerator()),
		DashboardUC:    appanalytics.NewDashboardUseCase(repos.Analytics),
		RateLimiter:    eph.RateLimiter,
		AuthPerMinute:  cfg.RateLimit.AuthPerMinute,
		JWTSecret:      cfg.JWT.Secret,
		FrontendURL:    cfg.App.FrontendURL,
		AppName:        cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
