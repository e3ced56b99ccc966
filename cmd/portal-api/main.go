package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"academia/admin-portal/admin-portal-backend/internal/certificates"
	"academia/admin-portal/admin-portal-backend/internal/config"
	"academia/admin-portal/admin-portal-backend/internal/issuance"
	"academia/admin-portal/admin-portal-backend/pkg/pdf"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Connect to the issuance-log database. The engine itself keeps no
	// state; only the audit log persists.
	var issuanceService *issuance.Service
	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Warn("Issuance log disabled, database unreachable", zap.Error(err))
	} else {
		defer db.Close()
		issuanceService = issuance.NewService(issuance.NewPostgresRepository(db), logger)
	}

	// Wire the generation engine
	httpClient := &http.Client{Timeout: cfg.Records.Timeout}
	fetcher := certificates.NewHTTPRecordFetcher(cfg.Records.BaseURL, httpClient)
	resolver := certificates.NewResolver(http.DefaultClient, cfg.Assets.AttemptTimeout, logger)
	builder := certificates.NewBuilder(certificates.Institution{
		Name:      cfg.Institution.Name,
		TaxID:     cfg.Institution.TaxID,
		City:      cfg.Institution.City,
		Registrar: cfg.Institution.Registrar,
		Director:  cfg.Institution.Director,
	}, nil)
	renderer := pdf.NewRenderer(pdf.DefaultStyles())
	dispatcher := certificates.NewDispatcher(renderer, logger)

	assetPaths := certificates.AssetPaths{
		Origin:            cfg.Assets.Origin,
		PublicRoot:        cfg.Assets.PublicRoot,
		Logo:              cfg.Assets.LogoPath,
		SignatureLeft:     cfg.Assets.SignatureLeft,
		SignatureRight:    cfg.Assets.SignatureRight,
		DiplomaBackground: cfg.Assets.DiplomaBackground,
	}

	service := certificates.NewService(fetcher, resolver, builder, dispatcher, assetPaths, logger)
	handler := certificates.NewHandler(service, issuanceService, logger)

	// Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api/v1")
	{
		handler.RegisterRoutes(api)
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
