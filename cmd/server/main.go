package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listinggen/internal/config"
	"listinggen/internal/handler"
	"listinggen/internal/repository"
	"listinggen/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("Listing Generator")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := loadConfig(os.Getenv("LISTINGGEN_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Optional audit database
	var audit repository.GenerationLogger
	var auditRepo *repository.PostgresRepository
	if cfg.AuditEnabled() {
		repo, err := repository.NewPostgresRepository(
			cfg.PostgreSQL.DSN,
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to prepare database: %v", err)
		}

		audit = repo
		auditRepo = repo
		log.Println("✅ Connected to PostgreSQL, generation audit log enabled")
	}

	// Initialize completion client
	client := service.NewOpenAIClient(&cfg.OpenAI)
	if client.IsEnabled() {
		log.Printf("✅ Completion client initialized")
		log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("   - API Mode: %s", cfg.OpenAI.Mode)
		log.Printf("   - Model: %s", cfg.OpenAI.Model)
		log.Printf("   - Temperature: %.1f", service.Temperature)
		log.Printf("   - MaxTokens: %d", service.MaxTokens)
	} else {
		log.Println("⚠️  Completion provider is disabled - submissions will fail")
		log.Println("   Set OPENAI_API_KEY environment variable to enable listing generation")
	}

	// Initialize session
	composer := service.NewPromptComposer(cfg.Prompt.CollapseWhitespace)
	session := service.NewSession(composer, client, audit)

	log.Println("✅ Session initialized")

	rateLimiter := handler.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":           "healthy",
			"service":          "listing-generator",
			"provider_enabled": client.IsEnabled(),
			"audit_enabled":    audit != nil,
			"version":          Version,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	handler.RegisterRoutes(router, handler.NewSessionHandler(session), rateLimiter)
	if auditRepo != nil {
		handler.NewStatsHandler(auditRepo).RegisterRoutes(router)
	}

	// Serve the page
	// This function is implemented in embed.go (default) or static_dev.go (-tags dev)
	setupStaticFiles(router)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("🚀 Starting server on %s", cfg.Addr())
	log.Printf("🌐 Web UI: http://%s", cfg.Addr())

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("❌ Failed to start server: %v", err)
		return
	case <-quit:
	}

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	session.Wait()

	log.Println("✅ Server stopped")
}

// loadConfig reads env only, or a YAML file plus env when a path is given
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	log.Printf("📄 Using config file %s", path)
	return config.LoadFile(path)
}
