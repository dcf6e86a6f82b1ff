// api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"shoplens/api/analytics"
	"shoplens/api/catalog"
	"shoplens/api/config"
	"shoplens/api/database"
	"shoplens/api/handlers"
	"shoplens/api/middleware"
	"shoplens/api/session"
	"shoplens/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := config.Load()

	// --- Select the catalog source (once, at startup) ---
	var catalogSource catalog.Source
	if cfg.CatalogDummyMode {
		log.Println("CATALOG_DUMMY_MODE enabled: serving fixture products.")
		catalogSource = catalog.NewFixtureSource()
	} else {
		catalogSource = catalog.NewHTTPSource(cfg.CatalogAPIURL)
	}

	// --- Select the stores (once, at startup) ---
	var historyStore store.HistoryStore
	var clickStore store.ClickStore
	var queryStore store.QueryStore
	if cfg.AnalyticsDummyMode {
		log.Println("ANALYTICS_DUMMY_MODE enabled: using seeded in-memory stores.")
		memHistory := store.NewMemoryHistoryStore()
		memClicks := store.NewMemoryClickStore()
		memQueries := store.NewMemoryQueryStore()
		store.SeedFixtures(memHistory, memClicks, memQueries)
		historyStore, clickStore, queryStore = memHistory, memClicks, memQueries
	} else {
		// PostgreSQL holds the owner-scoped search history and clicks.
		dbClient, err := database.NewPostgresDB()
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
		}
		defer dbClient.Close()

		// ClickHouse holds the append-only search query stream.
		chClient, err := database.NewClickHouseDB()
		if err != nil {
			log.Fatalf("Failed to initialize ClickHouse database: %v", err)
		}
		defer chClient.Close()

		historyStore = store.NewPostgresHistoryStore(dbClient.DB)
		clickStore = store.NewPostgresClickStore(dbClient.DB)
		queryStore = store.NewClickHouseQueryStore(chClient)
	}

	// --- Sessions and the expiry sweep ---
	registry := session.NewRegistry()
	coordinator := session.NewCoordinator(registry, historyStore, clickStore)

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	if err := coordinator.Start(sweepCtx); err != nil {
		log.Fatalf("Failed to start session coordinator: %v", err)
	}

	aggregator := analytics.NewAggregator(historyStore, clickStore, queryStore, catalogSource)

	// --- Initialize Handlers ---
	searchHandlers := handlers.NewSearchHandlers(catalogSource, historyStore, queryStore)
	historyHandlers := handlers.NewHistoryHandlers(historyStore)
	clickHandlers := handlers.NewClickHandlers(clickStore)
	sessionHandlers := handlers.NewSessionHandlers(coordinator)
	analyticsHandlers := handlers.NewAnalyticsHandlers(aggregator)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		// Close stays outside Identity so it never mints a session to close.
		api.POST("/session/close", sessionHandlers.Close)

		shopper := api.Group("/")
		shopper.Use(middleware.Identity(registry))
		{
			shopper.GET("/search", searchHandlers.Search)
			shopper.GET("/suggestions", searchHandlers.Suggestions)
			shopper.GET("/history", historyHandlers.List)
			shopper.DELETE("/history/:id", historyHandlers.DeleteOne)
			shopper.DELETE("/history", historyHandlers.Clear)
			shopper.POST("/clicks", clickHandlers.Track)
			shopper.GET("/clicks", clickHandlers.Recent)
		}

		reporting := api.Group("/analytics")
		reporting.Use(middleware.ReportingAuth(cfg.AnalyticsAPIKey))
		{
			reporting.GET("/searches", analyticsHandlers.Searches)
			reporting.GET("/clicks", analyticsHandlers.Clicks)
			reporting.GET("/top-products", analyticsHandlers.TopProducts)
			reporting.GET("/top-terms", analyticsHandlers.TopTerms)
			reporting.GET("/trends", analyticsHandlers.Trends)
			reporting.GET("/stats", analyticsHandlers.Stats)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Go API server starting on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Go API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	coordinator.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
