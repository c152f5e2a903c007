package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/navmark/internal/nav"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (NAVMARK_*). Fields left unset by both
// get their defaults; items and routes are replaced as whole lists.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: NAVMARK_DATA_DIR -> data_dir, etc.
	if err := k.Load(env.Provider("NAVMARK_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "NAVMARK_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills zero fields from DefaultConfig. Without routes, each
// item routes its own path. An item without a label is labelled by its ID.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.SiteTitle == "" {
		c.SiteTitle = d.SiteTitle
	}
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.CookieName == "" {
		c.CookieName = d.CookieName
	}
	if c.StorageKey == "" {
		c.StorageKey = d.StorageKey
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.HistoryRetention == 0 {
		c.HistoryRetention = d.HistoryRetention
	}
	if len(c.Items) == 0 {
		c.Items = d.Items
	}
	for i := range c.Items {
		if c.Items[i].Label == "" {
			c.Items[i].Label = c.Items[i].ID
		}
	}
	if len(c.Routes) == 0 {
		for _, it := range c.Items {
			if it.Path != "" {
				c.Routes = append(c.Routes, RouteConfig{Path: it.Path, Item: it.ID})
			}
		}
	}
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogLevels is the set of recognized log_level values.
var validLogLevels = map[LogLevel]bool{
	LogDebug: true,
	LogInfo:  true,
	LogWarn:  true,
	LogError: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.CookieName == "" {
		return fmt.Errorf("cookie_name is required")
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage_key is required")
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	ids := make(map[string]bool, len(c.Items))
	for i, it := range c.Items {
		if it.ID == "" {
			return fmt.Errorf("items[%d]: id is required", i)
		}
		if ids[it.ID] {
			return fmt.Errorf("items[%d]: duplicate id %q", i, it.ID)
		}
		ids[it.ID] = true
	}

	for i, r := range c.Routes {
		if r.Path == "" {
			return fmt.Errorf("routes[%d]: path is required", i)
		}
		if !ids[r.Item] {
			return fmt.Errorf("routes[%d]: unknown item %q", i, r.Item)
		}
	}
	if c.FallbackItem != "" && !ids[c.FallbackItem] {
		return fmt.Errorf("fallback_item: unknown item %q", c.FallbackItem)
	}

	if _, err := c.RouteTable(); err != nil {
		return err
	}
	return nil
}

// NavItems returns the configured items as an unmarked navigation list.
func (c *Config) NavItems() []nav.Item {
	items := make([]nav.Item, len(c.Items))
	for i, it := range c.Items {
		items[i] = nav.Item{ID: it.ID, Label: it.Label, Path: it.Path}
	}
	return items
}

// RouteTable builds the path lookup table from routes and fallback_item.
func (c *Config) RouteTable() (*nav.RouteTable, error) {
	routes := make([]nav.Route, len(c.Routes))
	for i, r := range c.Routes {
		routes[i] = nav.Route{Pattern: r.Path, ItemID: r.Item}
	}
	t, err := nav.NewRouteTable(routes, c.FallbackItem)
	if err != nil {
		return nil, fmt.Errorf("building route table: %w", err)
	}
	return t, nil
}

// DatabasePath returns the SQLite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "navmark.db")
}
