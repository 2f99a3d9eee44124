package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/BradleySCNA/Quality-Inventory/internal/session"
	"github.com/BradleySCNA/Quality-Inventory/internal/view"
)

// AuthHandler serves the login page. There are no accounts: one shared
// password, one fixed-value session cookie.
type AuthHandler struct {
	password string
	gate     *session.Gate
}

func NewAuthHandler(password string, gate *session.Gate) *AuthHandler {
	return &AuthHandler{password: password, gate: gate}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method == http.MethodPost {
		password := r.FormValue("password")
		if subtle.ConstantTimeCompare([]byte(password), []byte(h.password)) == 1 {
			h.gate.Issue(w)
			http.Redirect(w, r, "/home", http.StatusSeeOther)
			return
		}
		render(w, r, "login.html", map[string]any{"Error": "Incorrect password"})
		return
	}
	render(w, r, "login.html", nil)
}

// render wraps view.Render with the package's uniform failure response:
// template errors are server faults, reported as a terse 500.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name, data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}
