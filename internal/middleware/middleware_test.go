package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/service"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/response"
)

type stubValidator struct {
	claims *models.JWTClaims
}

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return s.claims, nil
}

func protectedEngine(claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWT(stubValidator{claims: claims}), RequireRoles(models.RoleAdmin))
	r.POST("/classes", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func doPost(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/classes", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTRequiresHeader(t *testing.T) {
	r := protectedEngine(&models.JWTClaims{Role: models.RoleAdmin})

	assert.Equal(t, http.StatusUnauthorized, doPost(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doPost(r, "Token good").Code)
	assert.Equal(t, http.StatusUnauthorized, doPost(r, "Bearer bad").Code)
}

func TestJWTAndRoleAllowAdmin(t *testing.T) {
	r := protectedEngine(&models.JWTClaims{Username: "admin", Role: models.RoleAdmin})

	assert.Equal(t, http.StatusCreated, doPost(r, "Bearer good").Code)
}

func TestRequireRolesForbidsViewer(t *testing.T) {
	r := protectedEngine(&models.JWTClaims{Username: "guest", Role: models.RoleViewer})

	w := doPost(r, "Bearer good")
	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FORBIDDEN", body["error"]["code"])
}

func TestResponseMetaRecordsCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var meta map[string]interface{}
	r.Use(WithResponseMeta())
	r.GET("/schedule", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schedule", nil))
	assert.Equal(t, true, meta["cache_hit"])
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics))
	r.GET("/classes/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/classes/7", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint64(1), metrics.Snapshot().RequestsTotal)
}

func TestMetricsMiddlewareSkipsOperationalRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	for _, target := range []string{"/health", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
	assert.Zero(t, metrics.Snapshot().RequestsTotal)
}

func TestMetricsMiddlewareLabelsUnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/timetables/class/42/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	scrape := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := scrape.Body.String()
	assert.Contains(t, body, `path="unmatched"`)
	assert.False(t, strings.Contains(body, "/class/42/"))
}

func TestResponseMetaCarriesProcessingTime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithResponseMeta())
	r.GET("/schedule", func(c *gin.Context) {
		SetCacheHit(c, false)
		response.JSON(c, http.StatusOK, gin.H{"className": "5 - A1"}, ExtractMeta(c))
	})
	r.GET("/plain", func(c *gin.Context) {
		assert.Nil(t, ExtractMeta(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schedule", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body.Meta["cache_hit"])
	assert.Contains(t, body.Meta, "processing_time_ms")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
