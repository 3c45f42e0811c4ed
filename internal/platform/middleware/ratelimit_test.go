package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func doRateLimited(mw echo.MiddlewareFunc, ip string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return rec, h(c)
}

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 3})

	for i := 0; i < 3; i++ {
		if _, err := doRateLimited(mw, "10.0.0.1"); err != nil {
			t.Fatalf("request %d unexpectedly limited: %v", i, err)
		}
	}
}

func TestRateLimit_RejectsOverBurst(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})

	if _, err := doRateLimited(mw, "10.0.0.2"); err != nil {
		t.Fatalf("first request unexpectedly limited: %v", err)
	}
	rec, err := doRateLimited(mw, "10.0.0.2")
	if err == nil {
		t.Fatal("expected second request to be limited")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRateLimit_IsolatesClients(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})

	if _, err := doRateLimited(mw, "10.0.0.3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := doRateLimited(mw, "10.0.0.4"); err != nil {
		t.Fatalf("second client unexpectedly limited: %v", err)
	}
}

func TestLimiterStore_EvictsIdleClients(t *testing.T) {
	s := &limiterStore{
		clients: make(map[string]*clientLimiter),
		cfg:     DefaultRateLimitConfig(),
		ttl:     time.Millisecond,
		every:   5 * time.Millisecond,
		stop:    make(chan struct{}),
	}
	go s.cleanup()
	defer s.close()

	s.get("10.0.0.9")

	deadline := time.Now().Add(2 * time.Second)
	for {
		s.mu.Lock()
		_, ok := s.clients["10.0.0.9"]
		s.mu.Unlock()
		if !ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("idle client never evicted")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLimiterStore_CloseStopsCleanup(t *testing.T) {
	s := newLimiterStore(DefaultRateLimitConfig())
	s.close()

	// A stopped store still hands out limiters; only eviction ends.
	if s.get("10.0.0.10") == nil {
		t.Fatal("expected a limiter from a stopped store")
	}
}

func TestDefaultRateLimitConfig(t *testing.T) {
	cfg := DefaultRateLimitConfig()
	if cfg.RequestsPerSecond != 100 || cfg.Burst != 200 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}
