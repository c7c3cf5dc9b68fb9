package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func rateLimitedRouter(limiter *IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(limiter.RateLimit())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimitBlocksBeyondBurst(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2, nil)
	router := rateLimitedRouter(limiter)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("requests within burst should pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("request beyond burst should be rejected, got %v", statuses)
	}
}

func TestRateLimitIsPerIP(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1, nil)
	router := rateLimitedRouter(limiter)

	for _, addr := range []string{"10.0.0.1:1234", "10.0.0.2:1234"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("first request from %s should pass, got %d", addr, w.Code)
		}
	}
}

func TestRateLimiterEvictsIdleEntries(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1, nil)
	limiter.getLimiter("10.0.0.1")
	limiter.getLimiter("10.0.0.2")

	// Age one entry past the idle TTL and force the next call to sweep.
	limiter.mu.Lock()
	limiter.limiters["10.0.0.1"].lastSeen = time.Now().Add(-limiterIdleTTL - time.Minute)
	limiter.lastSweep = time.Now().Add(-limiterIdleTTL - time.Minute)
	limiter.mu.Unlock()

	limiter.getLimiter("10.0.0.3")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.limiters["10.0.0.1"]; ok {
		t.Fatal("idle entry should have been evicted")
	}
	if _, ok := limiter.limiters["10.0.0.2"]; !ok {
		t.Fatal("recently seen entry should survive the sweep")
	}
}

// =============================================================================
// AuthRequired
// =============================================================================

type testJWTConfig struct{ secret string }

func (c testJWTConfig) GetJWTAccessSecret() string { return c.secret }

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("token signing failed: %v", err)
	}
	return signed
}

func authRouter(cfg testJWTConfig) *gin.Engine {
	r := gin.New()
	r.Use(AuthRequired(cfg))
	r.GET("/me", func(c *gin.Context) {
		identity := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"userId": identity.UserID(), "orgId": identity.OrganizationID()})
	})
	return r
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret"}
	userID := uuid.New()
	orgID := uuid.New()
	token := signToken(t, cfg.secret, jwt.MapClaims{
		"sub":    userID.String(),
		"org_id": orgID.String(),
		"email":  "paul@cabinet.fr",
		"type":   "access",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authRouter(cfg).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRequiredRejections(t *testing.T) {
	cfg := testJWTConfig{secret: "test-secret"}
	userID := uuid.New().String()
	orgID := uuid.New().String()
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"wrong secret", signToken(t, "other-secret", jwt.MapClaims{"sub": userID, "org_id": orgID, "type": "access", "exp": exp})},
		{"refresh token", signToken(t, cfg.secret, jwt.MapClaims{"sub": userID, "org_id": orgID, "type": "refresh", "exp": exp})},
		{"missing org", signToken(t, cfg.secret, jwt.MapClaims{"sub": userID, "type": "access", "exp": exp})},
		{"bad subject", signToken(t, cfg.secret, jwt.MapClaims{"sub": "not-a-uuid", "org_id": orgID, "type": "access", "exp": exp})},
		{"expired", signToken(t, cfg.secret, jwt.MapClaims{"sub": userID, "org_id": orgID, "type": "access", "exp": time.Now().Add(-time.Hour).Unix()})},
	}

	router := authRouter(cfg)
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, w.Code)
		}
	}
}

func TestExtractBearerToken(t *testing.T) {
	if _, ok := extractBearerToken(""); ok {
		t.Fatal("empty header accepted")
	}
	if _, ok := extractBearerToken("Basic abc"); ok {
		t.Fatal("non-bearer scheme accepted")
	}
	if _, ok := extractBearerToken("Bearer "); ok {
		t.Fatal("empty token accepted")
	}
	token, ok := extractBearerToken("Bearer abc.def.ghi")
	if !ok || token != "abc.def.ghi" {
		t.Fatalf("valid bearer rejected: %q %v", token, ok)
	}
}
