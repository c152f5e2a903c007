package config

// LogLevel is a logrus level name.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level navmark configuration, corresponding to .navmark.yml.
type Config struct {
	SiteTitle       string   `yaml:"site_title" koanf:"site_title"`
	Port            int      `yaml:"port" koanf:"port"`
	DataDir         string   `yaml:"data_dir" koanf:"data_dir"`
	CookieName      string   `yaml:"cookie_name" koanf:"cookie_name"`
	StorageKey      string   `yaml:"storage_key" koanf:"storage_key"`
	FallbackItem    string   `yaml:"fallback_item" koanf:"fallback_item"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	LogLevel        LogLevel `yaml:"log_level" koanf:"log_level"`

	// HistoryRetention is the activations kept per client; negative keeps all.
	HistoryRetention int `yaml:"history_retention" koanf:"history_retention"`

	Items  []ItemConfig  `yaml:"items" koanf:"items"`
	Routes []RouteConfig `yaml:"routes" koanf:"routes"`
}

// ItemConfig describes one navigation link, in document order.
type ItemConfig struct {
	ID    string `yaml:"id" koanf:"id"`
	Label string `yaml:"label" koanf:"label"`
	Path  string `yaml:"path" koanf:"path"`
}

// RouteConfig maps a path or doublestar glob to an item ID.
type RouteConfig struct {
	Path string `yaml:"path" koanf:"path"`
	Item string `yaml:"item" koanf:"item"`
}
