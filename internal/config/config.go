package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultEnvFile = ".env"
	envPrefix      = "GIFTBOX_WEB_"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var (
	recipientPattern = regexp.MustCompile(`^[1-9][0-9]{6,14}$`)
	currencyPattern  = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Env       string `env:"ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	SiteURL   string `env:"SITE_URL"`
	Server    ServerConfig
	Brand     BrandConfig
	WhatsApp  WhatsAppConfig  `envPrefix:"WHATSAPP_"`
	Session   SessionConfig   `envPrefix:"SESSION_"`
	Templates TemplatesConfig `envPrefix:"TEMPLATES_"`
	Analytics AnalyticsConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string        `env:"PORT"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
}

// BrandConfig holds the copy that names the shop.
type BrandConfig struct {
	Name              string        `env:"BRAND" envDefault:"My Gift Box"`
	Instagram         string        `env:"INSTAGRAM" envDefault:"@mygiftbox"`
	Currency          string        `env:"CURRENCY" envDefault:"USD"`
	AnimationDuration time.Duration `env:"ANIMATION_DURATION" envDefault:"1600ms"`
}

// WhatsAppConfig addresses the click-to-chat links.
type WhatsAppConfig struct {
	Number  string `env:"NUMBER" envDefault:"593969563324"`
	BaseURL string `env:"BASE_URL" envDefault:"https://wa.me"`
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	SigningKey string `env:"SIGNING_KEY"`
}

// TemplatesConfig points at an on-disk template directory for live reload.
type TemplatesConfig struct {
	Dir string `env:"DIR"`
}

// AnalyticsConfig holds client instrumentation ids surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string `env:"GA_MEASUREMENT_ID"`
	GTMContainerID   string `env:"GTM_CONTAINER_ID"`
	SegmentWriteKey  string `env:"SEGMENT_WRITE_KEY"`
	Debug            bool   `env:"ANALYTICS_DEBUG"`
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction) || strings.EqualFold(c.Env, "prod")
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Server.Port
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load.
type Option func(*loadOptions)

type loadOptions struct {
	envMap        map[string]string
	useSystemEnv  bool
	envFile       string
	envFileForced bool
}

// WithEnvMap supplies variables that take precedence over the system environment.
func WithEnvMap(m map[string]string) Option {
	return func(o *loadOptions) {
		if o.envMap == nil {
			o.envMap = map[string]string{}
		}
		for k, v := range m {
			o.envMap[k] = v
		}
	}
}

// WithoutSystemEnv ignores os.Environ.
func WithoutSystemEnv() Option {
	return func(o *loadOptions) { o.useSystemEnv = false }
}

// WithEnvFile overrides the dotenv path. An empty path disables dotenv loading.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		o.envFile = path
		o.envFileForced = true
	}
}

// Load resolves configuration from the environment, an optional .env file
// (outside production) and defaults, then validates it.
func Load(opts ...Option) (Config, error) {
	o := loadOptions{useSystemEnv: true, envFile: defaultEnvFile}
	for _, opt := range opts {
		opt(&o)
	}

	vars := map[string]string{}
	if o.useSystemEnv {
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				vars[k] = v
			}
		}
	}
	for k, v := range o.envMap {
		vars[k] = v
	}

	if o.envFile != "" && !isProductionValue(vars[envPrefix+"ENV"]) {
		fileVars, err := godotenv.Read(o.envFile)
		switch {
		case err == nil:
			for k, v := range fileVars {
				vars[k] = v
			}
		case errors.Is(err, os.ErrNotExist) && !o.envFileForced:
		default:
			return Config{}, fmt.Errorf("read env file %s: %w", o.envFile, err)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars, Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = vars["PORT"]
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	cfg.WhatsApp.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.WhatsApp.BaseURL), "/")
	cfg.SiteURL = strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var fields []string
	if strings.TrimSpace(c.Brand.Name) == "" {
		fields = append(fields, envPrefix+"BRAND")
	}
	if !recipientPattern.MatchString(c.WhatsApp.Number) {
		fields = append(fields, envPrefix+"WHATSAPP_NUMBER")
	}
	if !strings.HasPrefix(c.WhatsApp.BaseURL, "https://") && !strings.HasPrefix(c.WhatsApp.BaseURL, "http://") {
		fields = append(fields, envPrefix+"WHATSAPP_BASE_URL")
	}
	if !currencyPattern.MatchString(c.Brand.Currency) {
		fields = append(fields, envPrefix+"CURRENCY")
	}
	if c.Brand.AnimationDuration <= 0 {
		fields = append(fields, envPrefix+"ANIMATION_DURATION")
	}
	if c.IsProduction() && len(c.Session.SigningKey) < 32 {
		fields = append(fields, envPrefix+"SESSION_SIGNING_KEY")
	}
	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

func isProductionValue(v string) bool {
	return strings.EqualFold(v, EnvProduction) || strings.EqualFold(v, "prod")
}
