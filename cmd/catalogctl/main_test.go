package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jewelry-storefront/internal/config"
	"jewelry-storefront/internal/session"
)

func run(t *testing.T, cfg config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(cfg, &out).Run(context.Background(), append([]string{"catalogctl"}, args...))
	return out.String(), err
}

func TestSlugCommand(t *testing.T) {
	out, err := run(t, config.Config{}, "slug", "Gold", "Chains!")
	if err != nil {
		t.Fatalf("slug: %v", err)
	}
	if strings.TrimSpace(out) != "gold-chains" {
		t.Fatalf("unexpected slug %q", out)
	}
}

func TestRouteBuildAndParse(t *testing.T) {
	out, err := run(t, config.Config{}, "route", "build", "--category", "necklaces", "--subcategory", "gold-chains")
	if err != nil {
		t.Fatalf("route build: %v", err)
	}
	if strings.TrimSpace(out) != "/products/category/necklaces/gold-chains" {
		t.Fatalf("unexpected path %q", out)
	}

	out, err = run(t, config.Config{}, "route", "parse", "/products?q=ring")
	if err != nil {
		t.Fatalf("route parse: %v", err)
	}
	if !strings.Contains(out, `"searchTerm": "ring"`) {
		t.Fatalf("expected search term in output, got %s", out)
	}
}

func TestRouteParseUnknown(t *testing.T) {
	if _, err := run(t, config.Config{}, "route", "parse", "/cart"); err == nil {
		t.Fatalf("expected error for unknown route")
	}
}

func TestTreeCommand(t *testing.T) {
	payloads := map[string]string{
		"/categories":    `[{"_id":"c1","name":"Necklaces","slug":"necklaces","sortOrder":1,"isActive":true}]`,
		"/subcategories": `[{"_id":"s1","categorySlug":"necklaces","name":"Gold Chains","slug":"gold-chains","isActive":true},{"_id":"s2","categorySlug":"gone","name":"Orphan","slug":"orphan","isActive":true}]`,
		"/products":      `[{"_id":"p1","name":"Rope","slug":"rope","sku":"R1","categorySlug":"necklaces","subCategorySlug":"gold-chains","isActive":true}]`,
		"/collections":   `[]`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := payloads[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	out, err := run(t, config.Config{}, "tree", "--backend", srv.URL)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	for _, want := range []string{
		"Necklaces (necklaces) products=1",
		"  Gold Chains (gold-chains) products=1",
		`subcategory orphan: categorySlug="gone"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSessionKeyCommand(t *testing.T) {
	out, err := run(t, config.Config{}, "session-key")
	if err != nil {
		t.Fatalf("session-key: %v", err)
	}
	cfg := config.SessionConfig{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		name, value, _ := strings.Cut(line, "=")
		switch name {
		case "SESSION_KEY":
			cfg.Key = value
		case "SESSION_BLOCK_KEY":
			cfg.BlockKey = value
		}
	}
	if len(cfg.Key) != 64 || len(cfg.BlockKey) != 32 {
		t.Fatalf("unexpected key lengths in %q", out)
	}
	if _, err := session.NewManager(cfg); err != nil {
		t.Fatalf("generated keys rejected: %v", err)
	}
}
