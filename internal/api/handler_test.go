package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kurihiro0119/github-wrapped/internal/domain"
	apperrors "github.com/kurihiro0119/github-wrapped/internal/errors"
)

type stubService struct {
	result *domain.WrappedResult
	err    error

	lastUsername string
	lastYear     int
	calls        int
}

func (s *stubService) GetWrapped(ctx context.Context, username string, year int) (*domain.WrappedResult, error) {
	s.calls++
	s.lastUsername = username
	s.lastYear = year
	return s.result, s.err
}

func setupRouter(service *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRoutes(NewHandler(service))
}

func doRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetWrappedSuccess(t *testing.T) {
	service := &stubService{
		result: &domain.WrappedResult{ID: "id-1", Username: "octocat", Year: 2023},
	}
	router := setupRouter(service)

	w := doRequest(router, "/api/v1/wrapped?username=octocat&year=2023")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Data domain.WrappedResult `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.Username != "octocat" || body.Data.Year != 2023 {
		t.Errorf("unexpected payload: %+v", body.Data)
	}
	if service.lastUsername != "octocat" || service.lastYear != 2023 {
		t.Errorf("service called with %s/%d", service.lastUsername, service.lastYear)
	}
}

func TestGetWrappedDefaultsToPreviousYear(t *testing.T) {
	service := &stubService{result: &domain.WrappedResult{}}
	router := setupRouter(service)

	w := doRequest(router, "/api/v1/wrapped?username=octocat")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if expected := time.Now().Year() - 1; service.lastYear != expected {
		t.Errorf("expected default year %d, got %d", expected, service.lastYear)
	}
}

func TestGetWrappedValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing username", "/api/v1/wrapped"},
		{"invalid characters", "/api/v1/wrapped?username=no%20spaces"},
		{"leading hyphen", "/api/v1/wrapped?username=-octocat"},
		{"too long", "/api/v1/wrapped?username=" + longUsername(40)},
		{"year not a number", "/api/v1/wrapped?username=octocat&year=abc"},
		{"year too early", "/api/v1/wrapped?username=octocat&year=2007"},
		{"year in the future", "/api/v1/wrapped?username=octocat&year=" + strconv.Itoa(time.Now().Year()+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubService{result: &domain.WrappedResult{}}
			router := setupRouter(service)

			w := doRequest(router, tt.path)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if service.calls != 0 {
				t.Error("service must not be called for invalid input")
			}
		})
	}
}

func TestGetWrappedErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperrors.NewNotFoundError("user \"ghost\""), http.StatusNotFound},
		{"upstream unavailable", apperrors.NewUpstreamError("rate limited", nil), http.StatusBadGateway},
		{"incomplete data", apperrors.NewIncompleteDataError("no calendar"), http.StatusBadGateway},
		{"internal", apperrors.NewInternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&stubService{err: tt.err})

			w := doRequest(router, "/api/v1/wrapped?username=octocat&year=2023")
			if w.Code != tt.status {
				t.Errorf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter(&stubService{})

	w := doRequest(router, "/health")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func longUsername(n int) string {
	s := make([]byte, n)
	for i := range s {
		s[i] = 'a'
	}
	return string(s)
}
