package router

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/timetable-api/internal/handler"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/service"
)

type memClassRepo struct {
	items map[int64]models.Class
}

func (m *memClassRepo) List(context.Context, models.ClassFilter) ([]models.Class, error) {
	out := make([]models.Class, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *memClassRepo) FindByID(_ context.Context, id int64) (*models.Class, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (m *memClassRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	for id, c := range m.items {
		if id != excludeID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memClassRepo) Create(_ context.Context, class *models.Class) error {
	class.ID = int64(len(m.items) + 1)
	m.items[class.ID] = *class
	return nil
}

func (m *memClassRepo) Update(_ context.Context, class *models.Class) error {
	m.items[class.ID] = *class
	return nil
}

func (m *memClassRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func newTestRouter(t *testing.T, authEnabled bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	auth := service.NewAuthService(nil, nil, service.AuthConfig{
		AccessTokenSecret: "test-secret",
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	})
	metrics := service.NewMetricsService()
	classes := service.NewClassService(&memClassRepo{items: map[int64]models.Class{}}, nil, nil, nil)

	return New(Options{
		APIPrefix:     "/api",
		EnableMetrics: true,
		AuthEnabled:   authEnabled,
		Tokens:        auth,
		Metrics:       metrics,
	}, Handlers{
		Auth:      handler.NewAuthHandler(auth),
		Class:     handler.NewClassHandler(classes),
		Subject:   handler.NewSubjectHandler(nil),
		Teacher:   handler.NewTeacherHandler(nil),
		Period:    handler.NewPeriodHandler(nil),
		Timetable: handler.NewTimetableHandler(nil),
		Schedule:  handler.NewScheduleHandler(nil, nil, nil),
		System:    handler.NewSystemHandler(metrics, nil),
	})
}

func serve(r *gin.Engine, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterOpenByDefault(t *testing.T) {
	r := newTestRouter(t, false)

	w := serve(r, http.MethodPost, "/api/classes", "", []byte(`{"name":"5 - A1"}`))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodPost, "/api/auth/login", "", []byte(`{"username":"admin","password":"secret"}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterWriteRequiresAdminToken(t *testing.T) {
	r := newTestRouter(t, true)

	w := serve(r, http.MethodPost, "/api/classes", "", []byte(`{"name":"5 - A1"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/api/classes", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodPost, "/api/auth/login", "", []byte(`{"username":"admin","password":"secret"}`))
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = serve(r, http.MethodPost, "/api/classes", login.Data.AccessToken, []byte(`{"name":"5 - A1"}`))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRouterSystemRoutes(t *testing.T) {
	r := newTestRouter(t, false)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ready", "", nil).Code)

	serve(r, http.MethodGet, "/api/classes", "", nil)
	w := serve(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRouterRejectsBadDayBeforeService(t *testing.T) {
	r := newTestRouter(t, false)

	w := serve(r, http.MethodGet, "/api/timetables/weekday/8", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
