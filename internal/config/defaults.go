package config

import "github.com/ziadkadry99/navmark/internal/selection"

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = ".navmark.yml"

// DefaultItems are the site's four navigation links.
var DefaultItems = []ItemConfig{
	{ID: "1", Label: "Home", Path: "/"},
	{ID: "2", Label: "History", Path: "/history"},
	{ID: "3", Label: "Settings", Path: "/settings"},
	{ID: "4", Label: "Documentation", Path: "/documentation"},
}

// DefaultRoutes maps each page path to its item.
var DefaultRoutes = []RouteConfig{
	{Path: "/", Item: "1"},
	{Path: "/history", Item: "2"},
	{Path: "/settings", Item: "3"},
	{Path: "/documentation", Item: "4"},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteTitle:  "navmark",
		Port:       8080,
		DataDir:    ".navmark",
		CookieName: "navmark_client",
		StorageKey: "activated",
		LogLevel:   LogInfo,
		Items:      append([]ItemConfig(nil), DefaultItems...),
		Routes:     append([]RouteConfig(nil), DefaultRoutes...),

		HistoryRetention: selection.DefaultRetention,
	}
}
