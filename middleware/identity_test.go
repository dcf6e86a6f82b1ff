package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shoplens/api/session"
	"shoplens/api/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func identityRouter(registry *session.Registry) *gin.Engine {
	router := gin.New()
	router.GET("/probe", Identity(registry), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"owner":   OwnerID(c),
			"session": c.GetString(CtxSessionID),
		})
	})
	return router
}

func probeResponse(t *testing.T, w *httptest.ResponseRecorder) (owner, sessionID string) {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["owner"], body["session"]
}

func TestIdentityStartsSession(t *testing.T) {
	registry := session.NewRegistry()
	router := identityRouter(registry)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	echoed := w.Header().Get(HeaderSessionID)
	require.NotEmpty(t, echoed)
	assert.True(t, registry.IsActive(echoed))

	owner, sessionID := probeResponse(t, w)
	assert.Equal(t, echoed, sessionID)
	assert.Equal(t, "anonymous_"+echoed, owner)
}

func TestIdentityReusesLiveSession(t *testing.T) {
	registry := session.NewRegistry()
	router := identityRouter(registry)

	first := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(first, req)
	id := first.Header().Get(HeaderSessionID)
	require.NotEmpty(t, id)

	second := httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderSessionID, id)
	router.ServeHTTP(second, req)

	assert.Equal(t, id, second.Header().Get(HeaderSessionID))
	assert.Equal(t, 1, registry.Len())
}

func TestIdentityReplacesUnknownSession(t *testing.T) {
	registry := session.NewRegistry()
	router := identityRouter(registry)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderSessionID, "stale-or-forged-id")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	echoed := w.Header().Get(HeaderSessionID)
	assert.NotEqual(t, "stale-or-forged-id", echoed)
	assert.True(t, registry.IsActive(echoed))
	assert.False(t, registry.IsActive("stale-or-forged-id"))
}

func TestIdentityAcceptsValidJWT(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	registry := session.NewRegistry()
	router := identityRouter(registry)

	token, err := utils.GenerateJWT(42, "shopper@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	owner, sessionID := probeResponse(t, w)
	assert.Equal(t, "user_42", owner)
	assert.Empty(t, sessionID, "authenticated requests do not get a session")
	assert.Empty(t, w.Header().Get(HeaderSessionID))
	assert.Equal(t, 0, registry.Len())
}

func TestIdentityAcceptsJWTCookie(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	router := identityRouter(session.NewRegistry())

	token, err := utils.GenerateJWT(7, "shopper@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "jwt_token", Value: token})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	owner, _ := probeResponse(t, w)
	assert.Equal(t, "user_7", owner)
}

func TestIdentityRejectsInvalidJWT(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	registry := session.NewRegistry()
	router := identityRouter(registry)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
	assert.Equal(t, 0, registry.Len(), "a rejected token must not mint a session")
}

func reportingRouter(apiKey string) *gin.Engine {
	router := gin.New()
	router.GET("/report", ReportingAuth(apiKey), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetInt(CtxUserID)})
	})
	return router
}

func TestReportingAuthAPIKey(t *testing.T) {
	router := reportingRouter("reporting-key")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/report", nil)
	req.Header.Set("X-API-KEY", "reporting-key")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/report", nil)
	req.Header.Set("X-API-KEY", "wrong-key")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportingAuthRequiresCredentials(t *testing.T) {
	router := reportingRouter("reporting-key")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/report", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No credentials provided")
}

func TestReportingAuthEmptyKeyDisablesKeyAccess(t *testing.T) {
	router := reportingRouter("")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/report", nil)
	req.Header.Set("X-API-KEY", "")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportingAuthAcceptsJWT(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	router := reportingRouter("reporting-key")

	token, err := utils.GenerateJWT(9, "analyst@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/report", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":9`)
}
