package middleware

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit_AllowsThenBlocks(t *testing.T) {
	h := RateLimit(60, 2)(okHandler)
	req := httptest.NewRequest("GET", "/api/signal", nil)
	req.RemoteAddr = "1.2.3.4:1234"

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("want 200 got %d", rr.Code)
		}
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != 429 {
		t.Fatalf("want 429 got %d", rr.Code)
	}

	// a different client has its own bucket
	other := httptest.NewRequest("GET", "/api/signal", nil)
	other.RemoteAddr = "5.6.7.8:1234"
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, other)
	if rr.Code != 200 {
		t.Fatalf("other client: want 200 got %d", rr.Code)
	}
}

func TestLimiter_RefillAndSweep(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newLimiter(1, 1, time.Minute)
	l.now = func() time.Time { return now }

	if !l.allow("a") || l.allow("a") {
		t.Fatalf("burst of 1 should allow exactly one request")
	}
	now = now.Add(1100 * time.Millisecond)
	if !l.allow("a") {
		t.Fatalf("want allow after refill")
	}

	now = now.Add(2 * time.Minute)
	l.allow("b")
	if _, ok := l.m["a"]; ok {
		t.Fatalf("idle bucket should have been swept")
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	h := RateLimit(0, 0)(okHandler)
	req := httptest.NewRequest("GET", "/", nil)
	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("disabled limiter blocked request %d", i)
		}
	}
}
