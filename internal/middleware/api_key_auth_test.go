package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/okzdev/microblog/backend/internal/apperr"
	"github.com/okzdev/microblog/backend/internal/models"
	"github.com/okzdev/microblog/backend/internal/repositories"
)

func newTestRepo(t *testing.T) (repositories.UserRepository, *models.User) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	user := &models.User{APIKey: "secret-key", Name: "alice"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return repositories.NewPostgresUserRepository(db), user
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, apiKey string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tweets", nil)
	if apiKey != "" {
		req.Header.Set(HeaderAPIKey, apiKey)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return c, handler(c)
}

func TestAPIKeyAuth_MissingHeader(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, err := invoke(t, APIKeyAuth(repo), "")

	var apiErr *apperr.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != apperr.KindAuth {
		t.Fatalf("err = %v, want auth_error", err)
	}
	if apiErr.Status() != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.Status())
	}
}

func TestAPIKeyAuth_UnknownKey(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, err := invoke(t, APIKeyAuth(repo), "wrong-key")

	var apiErr *apperr.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != apperr.KindAuth {
		t.Fatalf("err = %v, want auth_error", err)
	}
}

func TestAPIKeyAuth_ValidKeyInjectsUser(t *testing.T) {
	repo, user := newTestRepo(t)
	c, err := invoke(t, APIKeyAuth(repo), "secret-key")
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}

	got, ok := c.Get("currentUser").(*models.User)
	if !ok {
		t.Fatal("currentUser not set in context")
	}
	if got.ID != user.ID || got.Name != "alice" {
		t.Errorf("currentUser = %+v, want %+v", got, user)
	}
}
