package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequireAdmin_AllowsAdminKey_BlocksPublicKey(t *testing.T) {
	keys := Keys{
		Public: []string{"pub_key"},
		Admin:  []string{"adm_key"},
	}

	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"admin via X-API-Key", "X-API-Key", "adm_key", http.StatusOK},
		{"admin via bearer", "Authorization", "Bearer adm_key", http.StatusOK},
		{"public key", "X-API-Key", "pub_key", http.StatusForbidden},
		{"missing key", "", "", http.StatusUnauthorized},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPut, "/api/config", nil)
		if c.header != "" {
			req.Header.Set(c.header, c.value)
		}
		rec := httptest.NewRecorder()
		RequireAdmin(keys)(okHandler).ServeHTTP(rec, req)
		if rec.Code != c.want {
			t.Fatalf("%s: got %d want %d", c.name, rec.Code, c.want)
		}
	}
}

func TestRequireAny_QueryKeyAndOpenMode(t *testing.T) {
	keys := Keys{Public: []string{"pub_key"}}

	req := httptest.NewRequest(http.MethodGet, "/api/signal/stream?api_key=pub_key", nil)
	rec := httptest.NewRecorder()
	RequireAny(keys)(okHandler).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("query key should pass; got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/signal", nil)
	rec = httptest.NewRecorder()
	RequireAny(keys)(okHandler).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing key should be 401; got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	RequireAny(Keys{})(okHandler).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("no keys configured should allow; got %d", rec.Code)
	}
}
