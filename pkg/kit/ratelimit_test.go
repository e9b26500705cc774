package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPRateLimiter_Window(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewIPRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two hits should pass")
	}
	if l.Allow("a") {
		t.Fatal("third hit should be limited")
	}
	if !l.Allow("b") {
		t.Fatal("other keys are independent")
	}

	now = now.Add(time.Minute + time.Second)
	if !l.Allow("a") {
		t.Fatal("window should have slid")
	}
}

func TestIPRateLimiter_Disabled(t *testing.T) {
	l := NewIPRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !l.Allow("a") {
			t.Fatalf("hit %d limited with limit disabled", i)
		}
	}
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	l := NewIPRateLimiter(1, time.Minute)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := func(xff string) int {
		r := httptest.NewRequest(http.MethodPost, "/admin/products", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		if xff != "" {
			r.Header.Set("X-Forwarded-For", xff)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	if got := req(""); got != http.StatusNoContent {
		t.Fatalf("first status=%d", got)
	}
	if got := req(""); got != http.StatusTooManyRequests {
		t.Fatalf("second status=%d", got)
	}
	if got := req("192.0.2.7, 10.0.0.1"); got != http.StatusNoContent {
		t.Fatalf("forwarded client status=%d", got)
	}
}
