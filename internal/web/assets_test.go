package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates("cart.html")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, name := range []string{"cart", "toasts"} {
		if tmpl.Lookup(name) == nil {
			t.Fatalf("template %q not defined", name)
		}
	}
	if _, err := Templates("missing.html"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestIndexHandler(t *testing.T) {
	h := IndexHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "data-init") {
		t.Fatalf("unexpected index response: %d", rec.Code)
	}

	for _, path := range []string{"/cart.html", "/admin.html", "/nope"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
	}
}
