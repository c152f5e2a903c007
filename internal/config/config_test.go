package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.StorageKey != "activated" {
		t.Errorf("expected default storage_key %q, got %q", "activated", cfg.StorageKey)
	}
	if len(cfg.Items) != 4 {
		t.Fatalf("expected 4 default items, got %d", len(cfg.Items))
	}
	if cfg.FallbackItem != "" {
		t.Errorf("expected no default fallback, got %q", cfg.FallbackItem)
	}
}

func TestDefaultConfigDoesNotShareSlices(t *testing.T) {
	a := DefaultConfig()
	a.Items[0].Label = "changed"
	b := DefaultConfig()
	if b.Items[0].Label != "Home" {
		t.Errorf("DefaultConfig items share backing array: got %q", b.Items[0].Label)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.navmark.yml")

	original := DefaultConfig()
	original.Port = 9191
	original.SiteTitle = "Ledger"
	original.FallbackItem = "1"
	original.Routes = append(original.Routes, RouteConfig{Path: "/documentation/**", Item: "4"})

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.SiteTitle != original.SiteTitle {
		t.Errorf("site_title: got %q, want %q", loaded.SiteTitle, original.SiteTitle)
	}
	if loaded.FallbackItem != "1" {
		t.Errorf("fallback_item: got %q, want %q", loaded.FallbackItem, "1")
	}
	if len(loaded.Routes) != 5 {
		t.Fatalf("routes length: got %d, want 5", len(loaded.Routes))
	}
	if loaded.Routes[4].Path != "/documentation/**" || loaded.Routes[4].Item != "4" {
		t.Errorf("routes[4] = %+v", loaded.Routes[4])
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("site_title: Partial\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	if cfg.SiteTitle != "Partial" {
		t.Errorf("site_title: got %q", cfg.SiteTitle)
	}
	if len(cfg.Items) != 4 || len(cfg.Routes) != 4 {
		t.Errorf("expected default items and routes, got %d items %d routes", len(cfg.Items), len(cfg.Routes))
	}
	if cfg.Items[0].Label != "Home" || cfg.Port != 8080 || cfg.HistoryRetention != 500 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadCustomItemsReplaceDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	yml := "items:\n  - id: a\n    path: /a\n  - id: b\n    path: /b\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Items, 2)

	want := []ItemConfig{
		{ID: "a", Label: "a", Path: "/a"},
		{ID: "b", Label: "b", Path: "/b"},
	}
	for i, w := range want {
		if cfg.Items[i] != w {
			t.Errorf("items[%d] = %+v, want %+v", i, cfg.Items[i], w)
		}
	}

	// Routes follow the custom items, not the default table.
	wantRoutes := []RouteConfig{{Path: "/a", Item: "a"}, {Path: "/b", Item: "b"}}
	require.Equal(t, wantRoutes, cfg.Routes)
	require.NoError(t, cfg.Validate())

	if DefaultConfig().Items[0].Label != "Home" {
		t.Error("loading custom items modified the default items")
	}
}

func TestLoadCustomRoutesKept(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yml")
	yml := "routes:\n  - path: /docs/**\n    item: \"4\"\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Items, 4)
	require.Equal(t, []RouteConfig{{Path: "/docs/**", Item: "4"}}, cfg.Routes)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.Save(path))

	t.Setenv("NAVMARK_DATA_DIR", "/var/lib/navmark")
	t.Setenv("NAVMARK_PORT", "9000")

	loaded, err := Load(path)
	require.NoError(t, err)
	if loaded.DataDir != "/var/lib/navmark" {
		t.Errorf("env override failed: got %q", loaded.DataDir)
	}
	if loaded.Port != 9000 {
		t.Errorf("env override failed: got port %d", loaded.Port)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"empty cookie", func(c *Config) { c.CookieName = "" }},
		{"empty storage key", func(c *Config) { c.StorageKey = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"empty item id", func(c *Config) { c.Items[1].ID = "" }},
		{"duplicate item id", func(c *Config) { c.Items[1].ID = "1" }},
		{"route to unknown item", func(c *Config) { c.Routes[0].Item = "9" }},
		{"empty route path", func(c *Config) { c.Routes[0].Path = "" }},
		{"unknown fallback", func(c *Config) { c.FallbackItem = "9" }},
		{"bad glob", func(c *Config) {
			c.Routes = append(c.Routes, RouteConfig{Path: "/docs/[", Item: "4"})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRouteTableFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FallbackItem = "2"
	table, err := cfg.RouteTable()
	require.NoError(t, err)

	tests := []struct {
		path string
		want string
	}{
		{"/", "1"},
		{"/settings", "3"},
		{"/nope", "2"},
	}
	for _, tt := range tests {
		got, ok := table.Resolve(tt.path)
		if !ok || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v, want %q", tt.path, got, ok, tt.want)
		}
	}
}

func TestNavItems(t *testing.T) {
	items := DefaultConfig().NavItems()
	if len(items) != 4 {
		t.Fatalf("got %d items, want 4", len(items))
	}
	if items[2].ID != "3" || items[2].Path != "/settings" {
		t.Errorf("items[2] = %+v", items[2])
	}
	for _, it := range items {
		if it.Active || it.Stopped {
			t.Errorf("item %s should start unmarked", it.ID)
		}
	}
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"8080", false},
		{" 80 ", false},
		{"0", true},
		{"70000", true},
		{"http", true},
	}
	for _, tt := range tests {
		err := validatePort(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("validatePort(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestFallbackChoices(t *testing.T) {
	got := fallbackChoices(DefaultItems)
	if len(got) != 5 {
		t.Fatalf("got %d choices, want 5", len(got))
	}
	if got[0] != noFallback {
		t.Errorf("first choice = %q, want none", got[0])
	}
}
