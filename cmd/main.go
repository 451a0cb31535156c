package main

import (
	"fmt"
	"log"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"dojohub/internal/caching"
	"dojohub/internal/config"
	"dojohub/internal/handlers"
	"dojohub/internal/middleware"
	"dojohub/internal/repositories"
	"dojohub/internal/services"
	"dojohub/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	// Repositories
	txManager := repositories.NewTxManager(pool)
	userRepo := repositories.NewUserRepo(pool)
	dojoRepo := repositories.NewDojoRepo(pool)
	classRepo := repositories.NewClassRepo(pool)
	dojoSubRepo := repositories.NewDojoSubscriptionRepo(pool)
	classSubRepo := repositories.NewClassSubscriptionRepo(pool)
	paymentRepo := repositories.NewOneTimeClassPaymentRepo(pool)
	enrollmentRepo := repositories.NewEnrollmentRepo(pool)
	webhookEventRepo := repositories.NewWebhookEventRepo(pool)
	auditLogRepo := repositories.NewAuditLogsRepo(pool)

	// Services
	cacheSvc := caching.NewCacheService(redisClient)
	stripeSvc := services.NewStripeService(cfg.StripeAPIKey)
	billingSvc := services.NewBillingService(
		txManager,
		dojoRepo,
		userRepo,
		classRepo,
		dojoSubRepo,
		classSubRepo,
		paymentRepo,
		auditLogRepo,
		enrollmentRepo,
		stripeSvc,
		cacheSvc,
		cfg.PlatformPriceID,
		cfg.SetupIntentFreshness,
	)
	webhookSvc := services.NewWebhookService(txManager, webhookEventRepo, billingSvc)

	// Handlers
	billingHandlers := handlers.NewBillingHandlers(billingSvc)
	webhookHandlers := handlers.NewWebhookHandlers(webhookSvc, cfg.StripeWebhookSecret)
	auditLogsHandlers := handlers.NewAuditLogsHandlers(auditLogRepo, dojoRepo)

	e := echo.New()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", handlers.ReadinessCheck(pool))

	// Gateway webhook (signature-verified, no JWT)
	e.POST("/webhooks/stripe", webhookHandlers.HandleStripeWebhook)

	jwtConfig := echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(middleware.JWTCustomClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(401, "Invalid token")
		},
	}

	v1 := e.Group("/v1")
	v1.Use(echojwt.WithConfig(jwtConfig))
	v1.Use(middleware.AttachUserID())

	v1.POST("/billing/setup", billingHandlers.SetupBilling)
	v1.POST("/billing/confirm", billingHandlers.ConfirmBilling)
	v1.POST("/classes/:id/price", billingHandlers.EnsureClassPrice)
	v1.POST("/classes/:id/checkout", billingHandlers.CreateClassCheckout)
	v1.GET("/dojos/:id/audit-logs", auditLogsHandlers.ListDojoAuditLogs)

	log.Printf("Dojohub billing server v%s starting on port %d", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
