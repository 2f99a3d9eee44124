package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIssueAndValid(t *testing.T) {
	g := NewGate("topsecret")

	rec := httptest.NewRecorder()
	g.Issue(rec)

	res := rec.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != "session" || c.Value != "topsecret" {
		t.Errorf("cookie = %s=%s", c.Name, c.Value)
	}
	if c.Path != "/" || c.MaxAge != 3600 || !c.HttpOnly {
		t.Errorf("cookie attributes = path=%q maxage=%d httponly=%v", c.Path, c.MaxAge, c.HttpOnly)
	}

	r := httptest.NewRequest(http.MethodGet, "/home", nil)
	r.AddCookie(c)
	if !g.Valid(r) {
		t.Error("issued cookie rejected")
	}
}

func TestValidRejectsWrongOrMissingCookie(t *testing.T) {
	g := NewGate("topsecret")

	r := httptest.NewRequest(http.MethodGet, "/home", nil)
	if g.Valid(r) {
		t.Error("request without cookie accepted")
	}

	r = httptest.NewRequest(http.MethodGet, "/home", nil)
	r.AddCookie(&http.Cookie{Name: "session", Value: "wrong"})
	if g.Valid(r) {
		t.Error("wrong cookie value accepted")
	}
}

func TestRequireLogin(t *testing.T) {
	g := NewGate("topsecret")
	called := false
	h := g.RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/home", nil))
	if called {
		t.Error("handler ran for unauthenticated request")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect location = %q, want /", loc)
	}

	rec = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/home", nil)
	r.AddCookie(&http.Cookie{Name: "session", Value: "topsecret"})
	h.ServeHTTP(rec, r)
	if !called {
		t.Error("handler did not run for authenticated request")
	}
}

func TestClear(t *testing.T) {
	g := NewGate("topsecret")
	rec := httptest.NewRecorder()
	g.Clear(rec)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" {
		t.Fatalf("clear cookie = %+v", cookies)
	}
}
