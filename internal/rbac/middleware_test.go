package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func doWithRole(t *testing.T, mw func(http.Handler) http.Handler, role string) *httptest.ResponseRecorder {
	t.Helper()
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		req = req.WithContext(WithRole(req.Context(), role))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequire(t *testing.T) {
	mw := Require("subject:create")
	if rec := doWithRole(t, mw, "admin"); rec.Code != http.StatusOK {
		t.Fatalf("admin: got %d, want 200", rec.Code)
	}
	if rec := doWithRole(t, mw, "user"); rec.Code != http.StatusForbidden {
		t.Fatalf("user: got %d, want 403", rec.Code)
	}
	if rec := doWithRole(t, mw, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("no role: got %d, want 403", rec.Code)
	}
}

func TestRequireAnyOwnOrAll(t *testing.T) {
	mw := RequireAny("score:view-own", "score:view-all")
	if rec := doWithRole(t, mw, "user"); rec.Code != http.StatusOK {
		t.Fatalf("user: got %d, want 200", rec.Code)
	}
	if rec := doWithRole(t, mw, "admin"); rec.Code != http.StatusOK {
		t.Fatalf("admin: got %d, want 200", rec.Code)
	}
	if rec := doWithRole(t, mw, "ghost"); rec.Code != http.StatusForbidden {
		t.Fatalf("unknown role: got %d, want 403", rec.Code)
	}
}
