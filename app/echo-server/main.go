package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundryTrack/app/echo-server/metrics"
	"laundryTrack/app/echo-server/router"
	"laundryTrack/business/analytics"
	authService "laundryTrack/business/auth"
	"laundryTrack/business/clothtype"
	loadService "laundryTrack/business/load"
	shopService "laundryTrack/business/shop"
	"laundryTrack/internal/middleware"
	"laundryTrack/internal/migrate"
	"laundryTrack/internal/repository/notification"
	psqlRepo "laundryTrack/internal/repository/postgres"
	redisRepo "laundryTrack/internal/repository/redis"
	"laundryTrack/internal/rest"
	"laundryTrack/pkg/config"
	"laundryTrack/pkg/database"
	redisdb "laundryTrack/pkg/database/redis"
	"laundryTrack/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting LaundryTrack", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get database handle", "error", err)
	}

	if err := migrate.Up(context.Background(), sqlDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	logger.Info("Migrations applied")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Session cache is best-effort; the API runs without it.
	var sessionCache authService.SessionCache
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, session cache disabled", "error", err)
	} else {
		sessionCache = redisRepo.NewSessionCacheRepository(redisClient)
		logger.Info("Redis connected successfully")
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	sessionRepo := psqlRepo.NewSessionRepository(db)
	otpRepo := psqlRepo.NewOtpTokenRepository(db)
	shopRepo := psqlRepo.NewShopRepository(db)
	clothTypeRepo := psqlRepo.NewClothTypeRepository(db)
	loadRepo := psqlRepo.NewLoadRepository(db)

	// Init service
	authSvc := authService.NewAuthService(userRepo, sessionRepo, otpRepo, mailjetEmail, sessionCache, validate)
	shopSvc := shopService.NewShopService(shopRepo)
	clothTypeSvc := clothtype.NewClothTypeService(clothTypeRepo)
	loadSvc := loadService.NewLoadService(loadRepo, shopRepo)
	analyticsSvc := analytics.NewAnalyticsService(loadRepo)

	// Init handler
	authHandler := rest.NewAuthHandler(authSvc)
	shopHandler := rest.NewShopHandler(shopSvc)
	clothTypeHandler := rest.NewClothTypeHandler(clothTypeSvc)
	loadHandler := rest.NewLoadHandler(loadSvc)
	analyticsHandler := rest.NewAnalyticsHandler(analyticsSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(requestDuration)

	// Auth middleware
	authRequired := middleware.AuthMiddleware(authSvc)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler)
	router.SetupShopRoutes(api, shopHandler, authRequired)
	router.SetupClothTypeRoutes(api, clothTypeHandler, authRequired)
	router.SetupLoadRoutes(api, loadHandler, authRequired)
	router.SetupAnalyticsRoutes(api, analyticsHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if redisClient != nil {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Redis shutdown error", "error", err)
		}
	}

	logger.Info("Server stopped")
}

func requestDuration(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		metrics.RequestDuration.
			WithLabelValues(c.Request().Method, c.Path()).
			Observe(time.Since(start).Seconds())
		return err
	}
}
