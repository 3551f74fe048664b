// Package auth issues and verifies the signed session tokens that gate
// dictionary edits over HTTP.
//
// A token is "<unix-millis>.<hex hmac-sha256(password, unix-millis)>". It
// carries no secret of its own: changing the admin password invalidates
// every token issued before the change.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CookieName is the cookie that carries the session token.
const CookieName = "lexi-admin-token"

// ErrDisabled is returned by Issue when no admin password is configured.
var ErrDisabled = errors.New("admin access is disabled: no password configured")

// maxSkew tolerates small clock differences between issue and verify.
const maxSkew = time.Minute

// Gate checks admin passwords and the tokens derived from them.
type Gate struct {
	password string
	maxAge   time.Duration
	now      func() time.Time
}

// New returns a gate for password. Tokens older than maxAge fail Verify;
// a zero maxAge disables the age check. The password is trimmed, and an
// empty password locks the gate.
func New(password string, maxAge time.Duration) *Gate {
	return &Gate{
		password: strings.TrimSpace(password),
		maxAge:   maxAge,
		now:      time.Now,
	}
}

// Enabled reports whether a password is configured.
func (g *Gate) Enabled() bool {
	return g.password != ""
}

// MaxAge returns the token lifetime.
func (g *Gate) MaxAge() time.Duration {
	return g.maxAge
}

// CheckPassword compares p with the configured password in constant time.
func (g *Gate) CheckPassword(p string) bool {
	if !g.Enabled() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(p), []byte(g.password)) == 1
}

// Issue returns a fresh token signed with the current password.
func (g *Gate) Issue() (string, error) {
	if !g.Enabled() {
		return "", ErrDisabled
	}
	payload := strconv.FormatInt(g.now().UnixMilli(), 10)
	return payload + "." + g.sign(payload), nil
}

// Verify reports whether token was issued by this gate and has not expired.
func (g *Gate) Verify(token string) bool {
	if !g.Enabled() || token == "" {
		return false
	}
	payload, sig, ok := strings.Cut(token, ".")
	if !ok {
		return false
	}
	if !hmac.Equal([]byte(sig), []byte(g.sign(payload))) {
		return false
	}

	millis, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return false
	}
	issued := time.UnixMilli(millis)
	now := g.now()
	if issued.After(now.Add(maxSkew)) {
		return false
	}
	if g.maxAge > 0 && now.Sub(issued) > g.maxAge {
		return false
	}
	return true
}

// Authenticated reports whether r carries a valid session cookie.
func (g *Gate) Authenticated(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return g.Verify(c.Value)
}

// Cookie wraps token in the session cookie.
func (g *Gate) Cookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(g.MaxAge() / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie returns a cookie that removes the session.
func ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (g *Gate) sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(g.password))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
