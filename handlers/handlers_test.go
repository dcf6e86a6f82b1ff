package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"shoplens/api/analytics"
	"shoplens/api/catalog"
	"shoplens/api/middleware"
	"shoplens/api/models"
	"shoplens/api/session"
	"shoplens/api/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testReportingKey = "reporting-test-key"

// testEnv is the full route tree main wires, on in-memory stores. Tests
// reach into the stores directly to seed and verify.
type testEnv struct {
	router   *gin.Engine
	registry *session.Registry
	history  *store.MemoryHistoryStore
	clicks   *store.MemoryClickStore
	queries  *store.MemoryQueryStore
	search   *SearchHandlers
}

func newTestEnv(t *testing.T, source catalog.Source) *testEnv {
	t.Helper()

	history := store.NewMemoryHistoryStore()
	clicks := store.NewMemoryClickStore()
	queries := store.NewMemoryQueryStore()

	registry := session.NewRegistry()
	coordinator := session.NewCoordinator(registry, history, clicks)
	aggregator := analytics.NewAggregator(history, clicks, queries, source)

	searchHandlers := NewSearchHandlers(source, history, queries)
	historyHandlers := NewHistoryHandlers(history)
	clickHandlers := NewClickHandlers(clicks)
	sessionHandlers := NewSessionHandlers(coordinator)
	analyticsHandlers := NewAnalyticsHandlers(aggregator)

	router := gin.New()
	api := router.Group("/api")

	api.GET("/health", HealthCheck)
	api.POST("/session/close", sessionHandlers.Close)

	shopper := api.Group("/")
	shopper.Use(middleware.Identity(registry))
	shopper.GET("/search", searchHandlers.Search)
	shopper.GET("/suggestions", searchHandlers.Suggestions)
	shopper.GET("/history", historyHandlers.List)
	shopper.DELETE("/history/:id", historyHandlers.DeleteOne)
	shopper.DELETE("/history", historyHandlers.Clear)
	shopper.POST("/clicks", clickHandlers.Track)
	shopper.GET("/clicks", clickHandlers.Recent)

	reporting := api.Group("/analytics")
	reporting.Use(middleware.ReportingAuth(testReportingKey))
	reporting.GET("/searches", analyticsHandlers.Searches)
	reporting.GET("/clicks", analyticsHandlers.Clicks)
	reporting.GET("/top-products", analyticsHandlers.TopProducts)
	reporting.GET("/top-terms", analyticsHandlers.TopTerms)
	reporting.GET("/trends", analyticsHandlers.Trends)
	reporting.GET("/stats", analyticsHandlers.Stats)

	return &testEnv{
		router:   router,
		registry: registry,
		history:  history,
		clicks:   clicks,
		queries:  queries,
		search:   searchHandlers,
	}
}

func newFixtureEnv(t *testing.T) *testEnv {
	return newTestEnv(t, catalog.NewFixtureSource())
}

// startSession registers a live session up front so a test controls which
// owner its requests run as.
func (e *testEnv) startSession(t *testing.T) (sessionID, ownerID string) {
	t.Helper()
	id, isNew := e.registry.Resolve("")
	require.True(t, isNew)
	return id, session.DeriveOwnerID(id)
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	env := newFixtureEnv(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/health", nil)
	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)
}

type failingSource struct{ err error }

func (f *failingSource) FetchProducts(ctx context.Context) ([]models.Product, error) {
	return nil, f.err
}

// The failing stores embed the interface and break only what a test needs.
type failingQueryStore struct {
	store.QueryStore
	err error
}

func (f *failingQueryStore) Append(ctx context.Context, rec models.SearchQueryRecord) error {
	return f.err
}

type failingClickStore struct {
	store.ClickStore
	err error
}

func (f *failingClickStore) All(ctx context.Context, limit int) ([]models.ClickExport, error) {
	return nil, f.err
}
