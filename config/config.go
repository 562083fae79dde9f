package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/statview/backend"
	"github.com/spektr-org/statview/engine"
	"github.com/spektr-org/statview/logging"
)

// ============================================================================
// CONFIGURATION — Defaults → YAML → .env → environment → validation
// ============================================================================
// Environment variables use the STATVIEW prefix and the section name:
//   STATVIEW_BACKEND_BASE_URL, STATVIEW_DISPLAY_LOCALE, STATVIEW_LOGGING_LEVEL
// A missing config file is not an error; the defaults apply.
// ============================================================================

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "statview"

// Config is the full client configuration.
type Config struct {
	AppName string        `yaml:"app_name" split_words:"true" validate:"required"`
	Backend BackendConfig `yaml:"backend"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig configures the chat service client.
type BackendConfig struct {
	// BaseURL is the root of the analytics service.
	BaseURL string `yaml:"base_url" split_words:"true" validate:"required,url"`

	// ChatEndpoint is appended to BaseURL for every question.
	ChatEndpoint string `yaml:"chat_endpoint" split_words:"true" validate:"required,startswith=/"`

	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`

	// Token is sent as a bearer token when set. Its lifecycle is managed
	// outside the client.
	Token string `yaml:"token"`

	SessionPrefix string `yaml:"session_prefix" split_words:"true"`
}

// DisplayConfig configures number formatting and the terminal theme.
type DisplayConfig struct {
	Locale            string `yaml:"locale" validate:"required"`
	MaxFractionDigits int    `yaml:"max_fraction_digits" split_words:"true" validate:"gte=0,lte=6"`
	PercentSuffix     string `yaml:"percent_suffix" split_words:"true"`
	Theme             string `yaml:"theme" validate:"oneof=dark light"`

	// Header and no-data labels. Empty keeps the French defaults.
	CategoryLabel string `yaml:"category_label" split_words:"true"`
	ValueLabel    string `yaml:"value_label" split_words:"true"`
	PeriodLabel   string `yaml:"period_label" split_words:"true"`
	NoDataLabel   string `yaml:"no_data_label" split_words:"true"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Output string `yaml:"output" validate:"required"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	def := backend.DefaultConfig()
	return &Config{
		AppName: "Chatbot Assistant",
		Backend: BackendConfig{
			BaseURL:       def.BaseURL,
			ChatEndpoint:  def.ChatEndpoint,
			Timeout:       def.Timeout,
			SessionPrefix: def.SessionPrefix,
		},
		Display: DisplayConfig{
			Locale:            "fr",
			MaxFractionDigits: 2,
			PercentSuffix:     "%",
			Theme:             "dark",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "statview.log",
		},
	}
}

// Load reads the YAML file at path (if any), then the .env files (default
// ".env"), then the environment, and validates the result.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrap(err, "read config")
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables already set
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "load %s", f)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field constraint and that the locale is a valid
// BCP 47 tag.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if _, err := language.Parse(c.Display.Locale); err != nil {
		return errors.Wrapf(err, "invalid config: display locale %q", c.Display.Locale)
	}
	return nil
}

// ============================================================================
// VIEWS FOR THE OTHER PACKAGES
// ============================================================================

// BackendClient returns the backend client configuration.
func (c *Config) BackendClient() backend.Config {
	return backend.Config{
		BaseURL:       c.Backend.BaseURL,
		ChatEndpoint:  c.Backend.ChatEndpoint,
		Timeout:       c.Backend.Timeout,
		Token:         c.Backend.Token,
		SessionPrefix: c.Backend.SessionPrefix,
	}
}

// Policy returns the formatting policy for renderers.
func (c *Config) Policy() *engine.FormatPolicy {
	tag, err := language.Parse(c.Display.Locale)
	if err != nil {
		tag = language.French
	}
	return engine.NewFormatPolicy(
		engine.WithLocale(tag),
		engine.WithMaxFractionDigits(c.Display.MaxFractionDigits),
		engine.WithPercentSuffix(c.Display.PercentSuffix),
		engine.WithLabels(c.Display.CategoryLabel, c.Display.ValueLabel, c.Display.PeriodLabel),
		engine.WithNoDataLabel(c.Display.NoDataLabel),
	)
}

// Logger returns the logging configuration.
func (c *Config) Logger() logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Output: []string{c.Logging.Output},
	}
}
