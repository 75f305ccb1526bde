package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// FlashCookie is the cookie carrying one-time messages across a redirect.
const FlashCookie = "fyyur_flash"

const (
	flashContextKey = "flash"
	flashTTL        = 5 * time.Minute
)

type flashClaims struct {
	Messages []string `json:"msgs"`
	jwt.RegisteredClaims
}

type flashState struct {
	pending  []string
	hadToken bool
}

// Flash returns middleware that loads queued messages from a signed cookie
// and writes back whatever is still pending when the response starts.
// Messages read with TakeFlashes are dropped; messages added with AddFlash
// survive a redirect.  A cookie with a bad signature is ignored.
func Flash(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := &flashState{}
			if ck, err := c.Cookie(FlashCookie); err == nil && ck.Value != "" {
				st.hadToken = true
				st.pending = parseFlash(ck.Value, key)
			}
			c.Set(flashContextKey, st)

			c.Response().Before(func() {
				switch {
				case len(st.pending) > 0:
					raw, err := signFlash(st.pending, key, time.Now())
					if err != nil {
						c.Logger().Errorf("flash: sign: %v", err)
						return
					}
					c.SetCookie(flashCookie(raw, int(flashTTL/time.Second)))
				case st.hadToken:
					c.SetCookie(flashCookie("", -1))
				}
			})
			return next(c)
		}
	}
}

// AddFlash queues a message for the next page rendered for this browser.
func AddFlash(c echo.Context, msg string) {
	if st, ok := c.Get(flashContextKey).(*flashState); ok {
		st.pending = append(st.pending, msg)
	}
}

// TakeFlashes returns and clears every queued message.
func TakeFlashes(c echo.Context) []string {
	st, ok := c.Get(flashContextKey).(*flashState)
	if !ok || len(st.pending) == 0 {
		return nil
	}
	out := st.pending
	st.pending = nil
	return out
}

func flashCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     FlashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func signFlash(msgs []string, key []byte, now time.Time) (string, error) {
	claims := flashClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func parseFlash(raw string, key []byte) []string {
	var claims flashClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return nil
	}
	return claims.Messages
}
