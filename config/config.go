package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ENV string

const (
	Dev        ENV = "development"
	Test       ENV = "test"
	Preview    ENV = "preview"
	Production ENV = "production"
)

type Config struct {
	AppName string
	AppEnv  string
	AppPort int
	ENV     ENV

	LogLevel string

	// Comma separated; empty means only the dev defaults apply.
	CORSAllowedOrigins []string

	Browser Browser
}

// Browser describes the local browser backend the app provisions and drives.
type Browser struct {
	Host string
	Port int

	BinaryPath  string
	DownloadURL string // empty selects the platform default
	SHA256      string // optional; enables checksum verification of downloads

	ProbeTimeout   time.Duration
	StartupTimeout time.Duration
	FetchTimeout   time.Duration
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "title-reader")
	v.SetDefault("APP_ENV", string(Dev))
	v.SetDefault("APP_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	v.SetDefault("BROWSER_HOST", "127.0.0.1")
	v.SetDefault("BROWSER_PORT", 9222)
	v.SetDefault("BROWSER_BINARY_PATH", "lightpanda")
	v.SetDefault("BROWSER_DOWNLOAD_URL", "")
	v.SetDefault("BROWSER_BINARY_SHA256", "")
	v.SetDefault("BROWSER_PROBE_TIMEOUT", "1s")
	v.SetDefault("BROWSER_STARTUP_TIMEOUT", "5s")
	v.SetDefault("FETCH_TIMEOUT", "30s")

	return v
}

func NewConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppName: v.GetString("APP_NAME"),
		AppEnv:  v.GetString("APP_ENV"),
		AppPort: v.GetInt("APP_PORT"),

		LogLevel: v.GetString("LOG_LEVEL"),

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		Browser: Browser{
			Host:           strings.TrimSpace(v.GetString("BROWSER_HOST")),
			Port:           v.GetInt("BROWSER_PORT"),
			BinaryPath:     strings.TrimSpace(v.GetString("BROWSER_BINARY_PATH")),
			DownloadURL:    strings.TrimSpace(v.GetString("BROWSER_DOWNLOAD_URL")),
			SHA256:         strings.ToLower(strings.TrimSpace(v.GetString("BROWSER_BINARY_SHA256"))),
			ProbeTimeout:   v.GetDuration("BROWSER_PROBE_TIMEOUT"),
			StartupTimeout: v.GetDuration("BROWSER_STARTUP_TIMEOUT"),
			FetchTimeout:   v.GetDuration("FETCH_TIMEOUT"),
		},
	}
	cfg.ENV = envFromString(cfg.AppEnv)

	if cfg.AppPort <= 0 || cfg.AppPort > 65535 {
		return nil, fmt.Errorf("invalid APP_PORT %d", cfg.AppPort)
	}
	if cfg.Browser.Port <= 0 || cfg.Browser.Port > 65535 {
		return nil, fmt.Errorf("invalid BROWSER_PORT %d", cfg.Browser.Port)
	}
	if cfg.Browser.Host == "" {
		return nil, fmt.Errorf("missing BROWSER_HOST")
	}
	if cfg.Browser.BinaryPath == "" {
		return nil, fmt.Errorf("missing BROWSER_BINARY_PATH")
	}
	if cfg.Browser.SHA256 != "" && len(cfg.Browser.SHA256) != 64 {
		return nil, fmt.Errorf("invalid BROWSER_BINARY_SHA256 (want 64 hex chars, got %d)", len(cfg.Browser.SHA256))
	}
	if cfg.Browser.ProbeTimeout <= 0 {
		return nil, fmt.Errorf("invalid BROWSER_PROBE_TIMEOUT %s", cfg.Browser.ProbeTimeout)
	}
	if cfg.Browser.StartupTimeout <= 0 {
		return nil, fmt.Errorf("invalid BROWSER_STARTUP_TIMEOUT %s", cfg.Browser.StartupTimeout)
	}
	if cfg.Browser.FetchTimeout <= 0 {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT %s", cfg.Browser.FetchTimeout)
	}

	return cfg, nil
}

func envFromString(raw string) ENV {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return Production
	case "preview", "staging":
		return Preview
	case "test":
		return Test
	default:
		return Dev
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
