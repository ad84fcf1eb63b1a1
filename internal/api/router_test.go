package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lojinha/catalog-api/internal/infrastructure/config"
	"github.com/lojinha/catalog-api/internal/infrastructure/db/postgres"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := &config.Config{
		SecretKey: testSecret,
		TokenTTL:  time.Hour,
	}
	return NewRouter(db, nil, cfg, zerolog.Nop())
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, e *echo.Echo, login, password, roles string) string {
	t.Helper()
	payload := fmt.Sprintf(`{"nome":"%s","email":"%s@example.com","login":"%s","senha":"%s","roles":"%s"}`,
		login, login, login, password, roles)
	if rec := doJSON(e, http.MethodPost, "/seguranca/register", "", payload); rec.Code != http.StatusOK {
		t.Fatalf("register failed with %d: %s", rec.Code, rec.Body.String())
	}

	rec := doJSON(e, http.MethodPost, "/seguranca/login", "",
		fmt.Sprintf(`{"login":"%s","senha":"%s"}`, login, password))
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid login response: %v", err)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("login response has no token: %s", rec.Body.String())
	}
	return token
}

func TestRouter_FullProductLifecycle(t *testing.T) {
	e := newTestRouter(t)
	token := registerAndLogin(t, e, "admin1", "p1", "ADMIN")

	// Unauthenticated access is rejected outright.
	if rec := doJSON(e, http.MethodGet, "/api/produtos", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec := doJSON(e, http.MethodPost, "/api/produtos", token,
		`{"id":1,"descricao":"caneta azul","valor":3.5,"marca":"bic"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create failed with %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/api/produtos/1", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed with %d: %s", rec.Code, rec.Body.String())
	}
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("expected a JSON array: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected singleton list, got %d items", len(list))
	}
	got := list[0]
	if got["id"] != float64(1) || got["descricao"] != "caneta azul" || got["valor"] != 3.5 || got["marca"] != "bic" {
		t.Fatalf("stored product does not match input: %+v", got)
	}

	rec = doJSON(e, http.MethodDelete, "/api/produtos/1", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed with %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/api/produtos/1", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_DuplicateRegisterConflicts(t *testing.T) {
	e := newTestRouter(t)

	payload := `{"nome":"User","email":"u@example.com","login":"u1","senha":"p1","roles":"USER"}`
	if rec := doJSON(e, http.MethodPost, "/seguranca/register", "", payload); rec.Code != http.StatusOK {
		t.Fatalf("first register failed with %d", rec.Code)
	}
	rec := doJSON(e, http.MethodPost, "/seguranca/register", "", payload)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate login, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_LoginWrongPassword(t *testing.T) {
	e := newTestRouter(t)
	registerAndLogin(t, e, "u2", "rightpass", "USER")

	rec := doJSON(e, http.MethodPost, "/seguranca/login", "", `{"login":"u2","senha":"wrongpass"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "Login ou senha incorretos" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestRouter_NonAdminCannotMutate(t *testing.T) {
	e := newTestRouter(t)
	token := registerAndLogin(t, e, "reader", "p1", "USER")

	// Reads are open to any authenticated user.
	if rec := doJSON(e, http.MethodGet, "/api/produtos", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for read, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := doJSON(e, http.MethodPost, "/api/produtos", token, `{"id":1,"descricao":"x"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin write, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "Role de ADMIN requerida" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestRouter_ExpiredTokenForbidden(t *testing.T) {
	e := newTestRouter(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  float64(1),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := doJSON(e, http.MethodGet, "/api/produtos", signed, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for expired token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_HealthProbes(t *testing.T) {
	e := newTestRouter(t)

	if rec := doJSON(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness returned %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_UpdateClearsUnsuppliedFields(t *testing.T) {
	e := newTestRouter(t)
	token := registerAndLogin(t, e, "admin2", "p1", "ADMIN")

	rec := doJSON(e, http.MethodPost, "/api/produtos", token,
		`{"id":7,"descricao":"old","valor":10,"marca":"oldbrand"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create failed with %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPut, "/api/produtos/7", token, `{"descricao":"new"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed with %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/api/produtos/7", token, "")
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("unexpected get response: %s", rec.Body.String())
	}
	got := list[0]
	if got["descricao"] != "new" || got["valor"] != float64(0) || got["marca"] != "" {
		t.Fatalf("expected wholesale replacement, got %+v", got)
	}
}
