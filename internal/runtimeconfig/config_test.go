package runtimeconfig

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{
			name:   "languages required",
			mutate: func(c *Config) { c.Languages = nil },
			want:   ErrLanguagesRequired,
		},
		{
			name:   "unsupported language",
			mutate: func(c *Config) { c.Languages = []string{"ru", "de"} },
			want:   ErrLanguageUnsupported,
		},
		{
			name:   "default language must be listed",
			mutate: func(c *Config) { c.Languages = []string{"en"}; c.DefaultLanguage = "kk" },
			want:   ErrDefaultLanguageNotListed,
		},
		{
			name:   "unknown storage",
			mutate: func(c *Config) { c.Storage.Provider = "mongo" },
			want:   ErrStorageProviderUnknown,
		},
		{
			name:   "sql storage needs dsn",
			mutate: func(c *Config) { c.Storage.Provider = StorageSQLite },
			want:   ErrStorageDSNRequired,
		},
		{
			name:   "cache ttl",
			mutate: func(c *Config) { c.Cache.Enabled = true; c.Cache.DefaultTTL = 0 },
			want:   ErrCacheTTLInvalid,
		},
		{
			name:   "public base url",
			mutate: func(c *Config) { c.PublicURL.BaseURL = " " },
			want:   ErrPublicBaseURLRequired,
		},
		{
			name:   "negative command timeout",
			mutate: func(c *Config) { c.Commands.Timeout = -time.Second },
			want:   ErrCommandTimeoutInvalid,
		},
		{
			name:   "logging provider required",
			mutate: func(c *Config) { c.Features.Logger = true; c.Logging.Provider = "" },
			want:   ErrLoggingProviderRequired,
		},
		{
			name:   "logging provider unknown",
			mutate: func(c *Config) { c.Features.Logger = true; c.Logging.Provider = "zap" },
			want:   ErrLoggingProviderUnknown,
		},
		{
			name:   "logging level",
			mutate: func(c *Config) { c.Features.Logger = true; c.Logging.Level = "loud" },
			want:   ErrLoggingLevelInvalid,
		},
		{
			name:   "logging format",
			mutate: func(c *Config) { c.Features.Logger = true; c.Logging.Format = "xml" },
			want:   ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidateAcceptsSQLiteWithDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage = StorageConfig{Provider: "SQLite", DSN: "file::memory:?cache=shared"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected sqlite config to validate, got %v", err)
	}
}
