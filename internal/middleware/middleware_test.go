package middleware

import (
	"context"
	"errors"
	"first20_backend/internal/config"
	"first20_backend/internal/model"
	"first20_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type stubChecker struct {
	owner uint
	err   error
}

func (s stubChecker) Owns(_ context.Context, userID, resourceID uint) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return resourceID == 1 && userID == s.owner, nil
}

func newRouter(cfg *config.Config, checker OwnershipChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/skills/:id", AuthMiddleware(cfg), RequireOwnership("id", checker), func(c *gin.Context) {
		util.Success(c, util.GetUserFromContext(c).UserID)
	})
	return r
}

func tokenFor(t *testing.T, cfg *config.Config, userID uint) string {
	t.Helper()
	token, err := util.GenerateJWT(&model.User{BaseModel: model.BaseModel{ID: userID}, Email: "u@example.com"}, cfg.JWT.Secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestAuthAndOwnership(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "middleware-secret"}}
	router := newRouter(cfg, stubChecker{owner: 42})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing token", "/skills/1", "", http.StatusUnauthorized},
		{"bad token", "/skills/1", "Bearer nope", http.StatusUnauthorized},
		{"owner", "/skills/1", "Bearer " + tokenFor(t, cfg, 42), http.StatusOK},
		{"not owner", "/skills/1", "Bearer " + tokenFor(t, cfg, 7), http.StatusNotFound},
		{"missing resource", "/skills/2", "Bearer " + tokenFor(t, cfg, 42), http.StatusNotFound},
		{"bad id", "/skills/abc", "Bearer " + tokenFor(t, cfg, 42), http.StatusBadRequest},
		{"query token", "/skills/1?token=" + tokenFor(t, cfg, 42), "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status=%d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestOwnershipLookupFailure(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "middleware-secret"}}
	router := newRouter(cfg, stubChecker{err: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/skills/1", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, 42))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status=%d, want 500", w.Code)
	}
}
