package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/service"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler_StoresConfig(t *testing.T) {
	cfg := config.StructuredConfig{
		App:    config.App{Environment: config.EnvironmentDevelopment},
		Server: config.Server{MaxUploadSize: 1024},
	}
	svc := &service.Services{}

	h := newTestHandlerWithConfig(svc, cfg)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.True(t, h.app.IsDevelopment())
	assert.Equal(t, int64(1024), h.server.MaxUploadSize)
}

// newRoutesTestRouter builds a router whose services answer every call with
// a zero value, so route registration can be probed end to end.
func newRoutesTestRouter() http.Handler {
	return newTestHandlerWithConfig(&service.Services{
		AuthService:     &mockAuthService{},
		AppInfoService:  &mockAppInfoService{version: "test-version"},
		ErrorLogService: &mockErrorLogService{},
		SearchService: &mockSearchService{
			searchFn: func(context.Context, models.SearchTarget, string, models.PageRequest) (models.SearchPage, error) {
				return models.SearchPage{}, nil
			},
		},
		ProfileService: &mockProfileService{
			publicFn: func(context.Context, string) (models.PublicProfile, error) {
				return models.PublicProfile{}, nil
			},
		},
	}, config.StructuredConfig{}).Init()
}

type routeCase struct {
	method string
	path   string
}

// expectedRoutes lists every route that Init() must register.
var expectedRoutes = []routeCase{
	// auth (empty bodies are rejected, not 404/405)
	{http.MethodPost, "/api/auth/register"},
	{http.MethodPost, "/api/auth/login"},
	// users (auth middleware returns 401 for protected ones)
	{http.MethodGet, "/api/users/me"},
	{http.MethodGet, "/api/users/me/detail"},
	{http.MethodPut, "/api/users/me/profile"},
	{http.MethodPut, "/api/users/me/profile/picture"},
	{http.MethodGet, "/api/users/bob"},
	// content
	{http.MethodGet, "/api/chapters"},
	{http.MethodPost, "/api/chapters"},
	{http.MethodGet, "/api/v2/chapters"},
	{http.MethodGet, "/api/chapters/1/topics"},
	{http.MethodPut, "/api/chapters/1/progress"},
	{http.MethodPost, "/api/topics"},
	{http.MethodPut, "/api/topics/1/progress"},
	{http.MethodPost, "/api/questions"},
	// search
	{http.MethodGet, "/api/search/chapters"},
	{http.MethodGet, "/api/search/topics"},
	{http.MethodGet, "/api/search/difficulties"},
	{http.MethodGet, "/api/search/types"},
	// misc
	{http.MethodGet, "/api/version/"},
	{http.MethodGet, "/metrics"},
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	router := newRoutesTestRouter()

	for _, tc := range expectedRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusNotFound, rec.Code,
				"route not found: %s %s", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code,
				"method not allowed: %s %s", tc.method, tc.path)
		})
	}
}

func TestInit_UnknownRouteReturnsEnvelope404(t *testing.T) {
	router := newRoutesTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env, _ := decodeEnvelope(t, rec)
	assert.Equal(t, "route not found", env.Message)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	router := newRoutesTestRouter()

	// POST /api/version/ is not registered, only GET is.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/version/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_SetsTraceIDHeader(t *testing.T) {
	router := newRoutesTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_MetricsExposesRequestCounter(t *testing.T) {
	router := newRoutesTestRouter()

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/version/", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "learning_platform_http_requests_total"))
	assert.True(t, strings.Contains(string(body), `path="/api/version/"`))
}

func TestGetServerVersion(t *testing.T) {
	h := newTestHandler(&service.Services{AppInfoService: &mockAppInfoService{version: "1.2.3"}})

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/version/", nil))
	rec := httptest.NewRecorder()
	h.getServerVersion(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1.2.3", rec.Body.String())
}

func TestSearch(t *testing.T) {
	tests := []struct {
		path    string
		target  models.SearchTarget
		message string
	}{
		{"/api/search/chapters", models.SearchChapters, "Chapters retrieved successfully"},
		{"/api/search/topics", models.SearchTopics, "Topics retrieved successfully"},
		{"/api/search/difficulties", models.SearchDifficulties, "Difficulties retrieved successfully"},
		{"/api/search/types", models.SearchTypes, "Types retrieved successfully"},
	}

	for _, tc := range tests {
		t.Run(string(tc.target), func(t *testing.T) {
			h := newTestHandler(&service.Services{SearchService: &mockSearchService{
				searchFn: func(_ context.Context, target models.SearchTarget, title string, page models.PageRequest) (models.SearchPage, error) {
					assert.Equal(t, tc.target, target)
					assert.Equal(t, "alg", title)
					assert.Equal(t, 1, page.Page)
					assert.Equal(t, 5, page.Limit)
					return models.SearchPage{
						Pagination: models.Pagination{Page: page.Page, Limit: page.Limit},
						Data:       []models.SearchItem{{ID: 1, Title: "Algebra"}},
					}, nil
				},
			}})

			req := injectNopLogger(httptest.NewRequest(http.MethodGet, tc.path+"?title=alg&page=0&limit=5", nil))
			rec := httptest.NewRecorder()
			h.search(tc.target)(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			env, data := decodeEnvelope(t, rec)
			assert.Equal(t, tc.message, env.Message)
			assert.JSONEq(t, `{"pagination":{"page":1,"limit":5},"data":[{"id":1,"title":"Algebra","description":null}]}`, string(data))
		})
	}
}
