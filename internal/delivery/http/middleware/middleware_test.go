package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pitchside/scoutd/internal/auth"
	"github.com/pitchside/scoutd/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	router := gin.New()
	router.POST("/x", RateLimiter(3), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 over the limit, got %d", w.Code)
	}
}

func TestBodySizeLimit_Rejects(t *testing.T) {
	router := gin.New()
	router.POST("/x", BodySizeLimit(16), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(strings.Repeat("a", 64)))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

func TestRequestID_AssignsAndValidates(t *testing.T) {
	router := gin.New()
	var seen string
	router.GET("/x", RequestID(), func(c *gin.Context) {
		seen = RequestIDFrom(c)
		c.Status(http.StatusOK)
	})

	// No inbound header: a fresh UUID is assigned and echoed back.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("expected a generated UUID, got %q", seen)
	}
	if w.Header().Get("X-Request-ID") != seen {
		t.Errorf("response header %q does not match context id %q", w.Header().Get("X-Request-ID"), seen)
	}

	// A well-formed inbound id is kept.
	inbound := "0191d5a0-0000-7000-8000-00000000beef"
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", inbound)
	router.ServeHTTP(w, req)
	if seen != inbound {
		t.Errorf("expected inbound id %q to be kept, got %q", inbound, seen)
	}

	// Garbage inbound ids are replaced.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "not a uuid")
	router.ServeHTTP(w, req)
	if seen == "not a uuid" {
		t.Error("expected a malformed inbound id to be replaced")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("expected a generated UUID, got %q", seen)
	}
}

func TestRequireAuth_SetsClaims(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Minute)
	signed, err := tokens.Issue(&domain.User{Username: "scout", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	router := gin.New()
	router.GET("/x", RequireAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": c.GetString(CtxUsername),
			"role":     c.GetString(CtxRole),
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "scout") {
		t.Errorf("expected username in claims, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "admin") {
		t.Errorf("expected role in claims, got %s", w.Body.String())
	}
}

func TestRequireAuth_RejectsMalformedHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Minute)

	router := gin.New()
	router.GET("/x", RequireAuth(tokens), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "token-without-scheme"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Minute)
	userToken, _ := tokens.Issue(&domain.User{Username: "plain", Role: domain.RoleUser})
	adminToken, _ := tokens.Issue(&domain.User{Username: "boss", Role: domain.RoleAdmin})

	router := gin.New()
	router.GET("/x", RequireAuth(tokens), RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for user role, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin role, got %d", w.Code)
	}
}
