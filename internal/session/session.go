package session

import (
	"crypto/subtle"
	"net/http"
	"time"
)

const cookieName = "session"

// Gate compares the session cookie against the fixed shared secret. There
// are no per-user accounts: a valid cookie is the whole session state.
type Gate struct {
	secret string
}

func NewGate(secret string) *Gate { return &Gate{secret: secret} }

// Issue sets the session cookie after a successful login.
func (g *Gate) Issue(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    g.secret,
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear deletes the session cookie.
func (g *Gate) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// Valid reports whether the request carries the correct session cookie.
func (g *Gate) Valid(r *http.Request) bool {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(g.secret)) == 1
}

// RequireLogin redirects to the login page before any handler work or data
// access happens on an unauthenticated request.
func (g *Gate) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Valid(r) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
