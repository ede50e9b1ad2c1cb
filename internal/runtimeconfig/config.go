package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrLanguagesRequired        = errors.New("lnkmx config: at least one language is required")
	ErrLanguageUnsupported      = errors.New("lnkmx config: unsupported language")
	ErrDefaultLanguageNotListed = errors.New("lnkmx config: default language must be one of the configured languages")
	ErrStorageProviderUnknown   = errors.New("lnkmx config: storage provider is invalid")
	ErrStorageDSNRequired       = errors.New("lnkmx config: storage dsn is required for sql providers")
	ErrCacheTTLInvalid          = errors.New("lnkmx config: cache ttl must be positive when cache is enabled")
	ErrPublicBaseURLRequired    = errors.New("lnkmx config: public base url is required")
	ErrLoggingProviderRequired  = errors.New("lnkmx config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("lnkmx config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("lnkmx config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("lnkmx config: logging format is invalid")
	ErrCommandTimeoutInvalid    = errors.New("lnkmx config: command timeout cannot be negative")
)

// Storage providers understood by the module.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config aggregates the runtime options of the lnkmx module.
type Config struct {
	DefaultLanguage  string
	FallbackLanguage string
	Languages        []string
	Storage          StorageConfig
	Cache            CacheConfig
	PublicURL        PublicURLConfig
	Features         Features
	Commands         CommandsConfig
	Logging          LoggingConfig
}

// StorageConfig selects the page repository backend.
type StorageConfig struct {
	Provider string
	DSN      string
}

// CacheConfig controls the read-through cache in front of the page repository.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// PublicURLConfig configures go-urlkit routing for published pages.
type PublicURLConfig struct {
	BaseURL   string
	PagePath  string
	SlugParam string
}

// Features toggles optional behaviour.
type Features struct {
	Logger        bool
	Commands      bool
	StrictReorder bool
}

// CommandsConfig captures command handler behaviour.
type CommandsConfig struct {
	Timeout time.Duration
}

// LoggingConfig captures provider options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the configuration used by the hosted service.
func DefaultConfig() Config {
	return Config{
		DefaultLanguage:  "ru",
		FallbackLanguage: "ru",
		Languages:        []string{"ru", "en", "kk"},
		Storage: StorageConfig{
			Provider: StorageMemory,
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		PublicURL: PublicURLConfig{
			BaseURL:   "https://lnkmx.my",
			PagePath:  "/:slug",
			SlugParam: "slug",
		},
		Features: Features{
			Commands:      true,
			StrictReorder: true,
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate performs consistency checks on the configuration.
func (cfg Config) Validate() error {
	if len(cfg.Languages) == 0 {
		return ErrLanguagesRequired
	}
	for _, lang := range cfg.Languages {
		if !isSupportedLanguage(lang) {
			return fmt.Errorf("%w: %s", ErrLanguageUnsupported, lang)
		}
	}
	if def := normalize(cfg.DefaultLanguage); def != "" && !containsLanguage(cfg.Languages, def) {
		return fmt.Errorf("%w: %s", ErrDefaultLanguageNotListed, def)
	}
	if fallback := normalize(cfg.FallbackLanguage); fallback != "" && !isSupportedLanguage(fallback) {
		return fmt.Errorf("%w: %s", ErrLanguageUnsupported, fallback)
	}

	switch normalize(cfg.Storage.Provider) {
	case "", StorageMemory:
	case StorageSQLite, StoragePostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(cfg.PublicURL.BaseURL) == "" {
		return ErrPublicBaseURLRequired
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLanguage(lang string) bool {
	switch normalize(lang) {
	case "ru", "en", "kk":
		return true
	default:
		return false
	}
}

func containsLanguage(langs []string, target string) bool {
	for _, lang := range langs {
		if normalize(lang) == target {
			return true
		}
	}
	return false
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
