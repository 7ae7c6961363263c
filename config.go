package folio

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/eringen/folio/views"
)

// DefaultConfigFile is looked up in the working directory when no path is given.
const DefaultConfigFile = "folio.yaml"

// Config holds the site metadata and the build layout, read from folio.yaml.
type Config struct {
	Site views.SiteConfig `mapstructure:"site"`

	ContentDir    string `mapstructure:"content_dir"` // Markdown posts (default "content/posts")
	StaticDir     string `mapstructure:"static_dir"`  // copied verbatim (default "static")
	OutputDir     string `mapstructure:"output_dir"`  // build target (default "public")
	IndexPath     string `mapstructure:"index_path"`  // SQLite post index (default "data/index.db")
	IncludeDrafts bool   `mapstructure:"drafts"`
	Workers       int    `mapstructure:"workers"` // parallel page writers (default GOMAXPROCS)
}

func (c *Config) setDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = "content/posts"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.IndexPath == "" {
		c.IndexPath = "data/index.db"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Site.Locale == "" {
		c.Site.Locale = "en_US"
	}
	if c.Site.Lang == "" {
		c.Site.Lang = "en"
	}
	c.Site.URL = strings.TrimSuffix(strings.TrimSpace(c.Site.URL), "/")
}

// Validate reports authoring errors in the site config.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Site.Title) == "" {
		errs = append(errs, errors.New("site.title is required"))
	}
	if c.Site.URL == "" {
		errs = append(errs, errors.New("site.url is required"))
	} else if u, err := url.Parse(c.Site.URL); err != nil || !u.IsAbs() || u.Host == "" {
		errs = append(errs, fmt.Errorf("site.url %q must be an absolute URL", c.Site.URL))
	}
	return errors.Join(errs...)
}

// LoadConfig reads the site config from path (or ./folio.yaml when empty),
// applies FOLIO_* environment overrides and defaults, and validates it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("site.title", "")
	v.SetDefault("site.url", "")
	v.SetDefault("content_dir", "content/posts")
	v.SetDefault("static_dir", "static")
	v.SetDefault("output_dir", "public")
	v.SetDefault("index_path", "data/index.db")
	v.SetDefault("drafts", false)
	v.SetDefault("workers", 0)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Runtime holds process settings for the dev server, read from the
// environment (and a .env file when present).
type Runtime struct {
	Addr          string        `env:"FOLIO_ADDR" envDefault:":3000"`
	LogLevel      string        `env:"FOLIO_LOG_LEVEL" envDefault:"info"`
	PostCacheTTL  time.Duration `env:"FOLIO_CACHE_TTL" envDefault:"5m"`
	PageCacheSize int           `env:"FOLIO_PAGE_CACHE_SIZE" envDefault:"256"`
	Watch         bool          `env:"FOLIO_WATCH" envDefault:"true"`
}

// LoadRuntime parses the runtime settings from the environment.
func LoadRuntime() (Runtime, error) {
	_ = godotenv.Load()

	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return Runtime{}, fmt.Errorf("parsing runtime env: %w", err)
	}
	if rt.PageCacheSize <= 0 {
		return Runtime{}, fmt.Errorf("FOLIO_PAGE_CACHE_SIZE must be positive, got %d", rt.PageCacheSize)
	}
	return rt, nil
}

// LogLevel maps a level name to a slog.Level. Unknown names map to info.
func LogLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the structured logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithRuntime overrides the runtime settings.
func WithRuntime(rt Runtime) Option {
	return func(a *App) {
		a.runtime = rt
	}
}
