package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tanjilh136/mealprep/internal/onboarding"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := NewService(NewInMemoryUserRepository(), onboarding.NewInMemoryRepository())
	handler := NewHandler(service)

	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	return r, service
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/auth/register", gin.H{
		"name":     "Maria",
		"email":    "maria@example.com",
		"password": "pw123456",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["id"] == "" || resp["id"] == nil {
		t.Fatalf("expected a generated user id, got %v", resp["id"])
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password fields must not be returned")
	}

	// Same email again conflicts.
	w = postJSON(t, r, "/auth/register", gin.H{
		"name":     "Maria",
		"email":    "maria@example.com",
		"password": "pw123456",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestRegisterEndpointMissingFields(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/auth/register", gin.H{"email": "maria@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRegisterEndpointUnknownDraft(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/auth/register", gin.H{
		"name":     "Maria",
		"email":    "maria@example.com",
		"password": "pw123456",
		"draft_id": "missing-draft",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/auth/register", gin.H{
		"name":     "Maria",
		"email":    "maria@example.com",
		"password": "pw123456",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", w.Code)
	}

	w = postJSON(t, r, "/auth/login", gin.H{"email": "maria@example.com", "password": "pw123456"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected a token in the login response")
	}

	w = postJSON(t, r, "/auth/login", gin.H{"email": "maria@example.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
