package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/lineup-studio/internal/infrastructure/session"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/cookie"
)

func TestRequireClientID_MintsCookieOnFirstVisit(t *testing.T) {
	var seen string
	handler := RequireClientID(cookie.DefaultOptions(), http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = clientIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/lineup", nil))

	if !session.ValidClientID(seen) {
		t.Fatalf("expected a minted client id, got %q", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != clientCookieName || cookies[0].Value != seen {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("expected client cookie to be HttpOnly")
	}
}

func TestRequireClientID_ReusesValidCookie(t *testing.T) {
	id := session.NewClientID()
	var seen string
	handler := RequireClientID(cookie.DefaultOptions(), http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = clientIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/lineup", nil)
	req.AddCookie(&http.Cookie{Name: clientCookieName, Value: id})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != id {
		t.Fatalf("expected client id %q, got %q", id, seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("did not expect a new cookie")
	}
}

func TestRequireClientID_ReplacesForgedCookie(t *testing.T) {
	var seen string
	handler := RequireClientID(cookie.DefaultOptions(), http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = clientIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/lineup", nil)
	req.AddCookie(&http.Cookie{Name: clientCookieName, Value: "../../etc"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == "../../etc" || !session.ValidClientID(seen) {
		t.Fatalf("expected a fresh client id, got %q", seen)
	}
}
