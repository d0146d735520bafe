package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/barberoil/fuelpos/pkg/utils"
	"github.com/gin-gonic/gin"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	r.GET("/", handlers...)
	return r
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", time.Hour)
	token, err := jwtManager.GenerateSessionToken("driver1", "Driver 1", "driver")
	if err != nil {
		t.Fatal(err)
	}
	other, err := utils.NewJWTManager("other", time.Hour).GenerateSessionToken("admin", "Admin", "admin")
	if err != nil {
		t.Fatal(err)
	}

	r := newRouter(AuthMiddleware(jwtManager))
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"foreign signature", "Bearer " + other, http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.header)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusOK && w.Body.String() != "driver1" {
				t.Errorf("user_id = %q, want driver1", w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	withRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) { c.Set("user_role", role) }
	}

	if w := get(newRouter(withRole("admin"), RequireRole("admin")), ""); w.Code != http.StatusOK {
		t.Errorf("admin status = %d", w.Code)
	}
	if w := get(newRouter(withRole("driver"), RequireRole("admin")), ""); w.Code != http.StatusForbidden {
		t.Errorf("driver status = %d, want 403", w.Code)
	}
}

func TestClientRateLimiter(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	defer rl.Stop()
	r := newRouter(rl.Middleware())

	for i := 0; i < 2; i++ {
		if w := get(r, ""); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}
	w := get(r, "")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
	if got := rl.Stats()["active_clients"]; got != 1 {
		t.Errorf("active_clients = %v, want 1", got)
	}
}
