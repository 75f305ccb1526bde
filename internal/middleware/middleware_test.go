package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/config"
)

const testSecret = "test-secret"

func flashServer() *echo.Echo {
	e := echo.New()
	e.Use(Flash(testSecret))
	e.POST("/venues/create", func(c echo.Context) error {
		AddFlash(c, "Venue The Musical Hop was successfully listed!")
		return c.Redirect(http.StatusFound, "/")
	})
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, strings.Join(TakeFlashes(c), "|"))
	})
	e.GET("/inline", func(c echo.Context) error {
		AddFlash(c, "shown now")
		return c.String(http.StatusOK, strings.Join(TakeFlashes(c), "|"))
	})
	return e
}

func flashCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == FlashCookie {
			return ck
		}
	}
	return nil
}

func TestFlashSurvivesRedirect(t *testing.T) {
	e := flashServer()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/venues/create", nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	ck := flashCookieFrom(t, rec)
	if ck == nil || ck.Value == "" {
		t.Fatal("flash cookie not set on redirect")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Body.String(); got != "Venue The Musical Hop was successfully listed!" {
		t.Fatalf("body = %q, want flashed message", got)
	}
	cleared := flashCookieFrom(t, rec)
	if cleared == nil || cleared.MaxAge >= 0 {
		t.Fatalf("flash cookie = %+v, want deletion", cleared)
	}
}

func TestFlashShownOnSameRequest(t *testing.T) {
	e := flashServer()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inline", nil))
	if rec.Body.String() != "shown now" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if ck := flashCookieFrom(t, rec); ck != nil {
		t.Fatalf("unexpected cookie %+v for consumed message", ck)
	}
}

func TestFlashRejectsForgedCookie(t *testing.T) {
	e := flashServer()
	forged, err := signFlash([]string{"forged"}, []byte("other-secret"), time.Now())
	if err != nil {
		t.Fatalf("signFlash: %v", err)
	}
	expired, _ := signFlash([]string{"old"}, []byte(testSecret), time.Now().Add(-time.Hour))

	for _, raw := range []string{forged, expired, "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: FlashCookie, Value: raw})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Body.String() != "" {
			t.Fatalf("body = %q for invalid cookie, want no messages", rec.Body.String())
		}
	}
}

func TestTakeFlashesWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	AddFlash(c, "dropped")
	if got := TakeFlashes(c); got != nil {
		t.Fatalf("TakeFlashes() = %v, want nil", got)
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/venues/7/edit", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.9")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/venues/:id/edit")

	cfg := config.RateLimitConfig{Prefix: "fyyur:rl", KeyStrategy: config.KeyByIPRoute}
	if got, want := buildRateKey(cfg, c), "fyyur:rl:ip:203.0.113.9:route:POST /venues/:id/edit"; got != want {
		t.Fatalf("buildRateKey() = %q, want %q", got, want)
	}
	cfg.KeyStrategy = config.KeyByIP
	if got, want := buildRateKey(cfg, c), "fyyur:rl:ip:203.0.113.9"; got != want {
		t.Fatalf("buildRateKey() = %q, want %q", got, want)
	}
}

func TestTokenBucketDisabledPassesThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil)
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/shows/create", nil), rec)
	called := false
	if err := mw(func(c echo.Context) error { called = true; return nil })(c); err != nil || !called {
		t.Fatalf("handler called = %v, err = %v", called, err)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	for ms, want := range map[int64]int{0: 0, 1: 1, 1000: 1, 2500: 3, -5: 0} {
		if got := retryAfterSeconds(ms); got != want {
			t.Errorf("retryAfterSeconds(%d) = %d, want %d", ms, got, want)
		}
	}
}
