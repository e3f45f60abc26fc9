package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"nivesh/internal/config"
	"nivesh/internal/database"
	"nivesh/internal/forex"
	"nivesh/internal/handlers"
	"nivesh/internal/logger"
	"nivesh/internal/middleware"
	"nivesh/internal/scheduler"
	"nivesh/internal/services"
	"nivesh/internal/validator"

	_ "nivesh/internal/docs" // Import swagger docs
)

// @title           Nivesh API
// @version         1.0
// @description     Nivesh values a personal investment portfolio: grouped holdings, allocation by category and type, and INR/USD display.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := forex.NewClient(
		forex.WithBaseURL(cfg.ForexBaseURL),
		forex.WithTimeout(cfg.ForexTimeout),
		forex.WithRateLimit(cfg.ForexRateLimit),
	)
	app := newApp(dbManager.DB(), cfg, fetcher)

	if cfg.RateRefreshSchedule != "" {
		jobs := scheduler.New(ctx, log, cfg.ForexTimeout)
		if _, err := jobs.Add("rate-refresh", cfg.RateRefreshSchedule, func(ctx context.Context) error {
			_, err := app.rates.Refresh(ctx)
			return err
		}); err != nil {
			return fmt.Errorf("invalid RATE_REFRESH_SCHEDULE: %w", err)
		}
		jobs.Start()
		defer jobs.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Nivesh server on port %s", cfg.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type app struct {
	router *gin.Engine
	rates  services.RateServicer
}

// newApp wires services and handlers onto a router. fetcher may be nil, in
// which case only stored and pipeline-pushed rates are used.
func newApp(db *gorm.DB, cfg *config.Config, fetcher services.RateFetcher) *app {
	validator.Register()

	auditService := services.NewAuditService(db)
	portfolioService := services.NewPortfolioService(db)
	assetService := services.NewAssetService(db)
	accountService := services.NewCashAccountService(db)
	taxonomyService := services.NewTaxonomyService(db)
	rateService := services.NewRateService(db, fetcher, cfg.RateMaxAge)
	dashboardService := services.NewDashboardService(assetService, accountService, taxonomyService, rateService, services.DashboardConfig{
		DisplayCurrency: cfg.DisplayCurrency,
		Policy:          cfg.CashPolicy,
		MemoSize:        cfg.MemoSize,
		SessionIdle:     cfg.SessionIdle,
	})

	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService)
	accountHandler := handlers.NewCashAccountHandler(accountService, auditService)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService, auditService)
	rateHandler := handlers.NewRateHandler(rateService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	auditHandler := handlers.NewAuditHandler(auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Rate pushes from the market data pipeline use an API key, not a user token.
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.POST("/rates", rateHandler.RecordRate)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	portfolios := protected.Group("/portfolios")
	portfolios.POST("", portfolioHandler.CreatePortfolio)
	portfolios.GET("", portfolioHandler.ListPortfolios)
	portfolios.GET("/:id", portfolioHandler.GetPortfolio)

	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.ListAccounts)
	accounts.PUT("/:id/balance", accountHandler.UpdateBalance)

	assetTypes := protected.Group("/asset-types")
	assetTypes.GET("", taxonomyHandler.ListAssetTypes)
	assetTypes.PUT("/:name", taxonomyHandler.UpsertAssetType)

	protected.GET("/rates/usd-inr", rateHandler.GetUSDINR)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/holdings", dashboardHandler.Holdings)
	dashboard.GET("/allocation", dashboardHandler.Allocation)
	dashboard.GET("/view", dashboardHandler.View)

	protected.GET("/audit-logs", auditHandler.ListEntries)

	return &app{router: router, rates: rateService}
}
