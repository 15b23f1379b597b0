package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// maxTTL is the largest TTL RFC 2181 allows.
const maxTTL = math.MaxInt32

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// LogFile, when set, receives a JSON copy of every log entry and is rotated by size.
	LogFile       string `koanf:"log_file"`
	LogMaxSize    int    `koanf:"log_max_size" validate:"gte=1"`
	LogMaxAge     int    `koanf:"log_max_age" validate:"gte=0"`
	LogMaxBackups int    `koanf:"log_max_backups" validate:"gte=0"`

	// Script is the path of the nsupdate script to apply.
	Script string `koanf:"script" validate:"required"`

	// ZoneDir is the directory of zone files seeding the store. Empty skips zone loading.
	ZoneDir string `koanf:"zone_dir"`

	// JournalPath is the bbolt file recording applied changes. Empty disables the journal.
	JournalPath string `koanf:"journal_path"`

	// JournalReset discards the journal at startup instead of replaying it.
	JournalReset bool `koanf:"journal_reset"`

	// DefaultTTL is used for zone file records that do not carry their own.
	DefaultTTL uint32 `koanf:"default_ttl" validate:"ttl"`

	// ExpectedNames and FilterFPRate size the bloom filter of known owner names.
	ExpectedNames uint    `koanf:"expected_names" validate:"required,gte=1"`
	FilterFPRate  float64 `koanf:"filter_fp_rate" validate:"gt=0,lt=1"`

	// HistorySize bounds the number of batch reports kept in memory.
	HistorySize int `koanf:"history_size" validate:"required,gte=1"`

	// DryRun builds the RFC 2136 messages for each batch without touching the store.
	DryRun bool `koanf:"dry_run"`
}

// DEFAULT_APP_CONFIG defines the default application configuration settings for the updater.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:           "prod",
	LogLevel:      "info",
	LogMaxSize:    10,
	LogMaxAge:     28,
	LogMaxBackups: 3,
	ZoneDir:       "",
	JournalPath:   "",
	JournalReset:  false,
	DefaultTTL:    3600,
	ExpectedNames: 10000,
	FilterFPRate:  0.01,
	HistorySize:   128,
	DryRun:        false,
}

// validTTL reports whether the field is a TTL no larger than 2^31-1.
func validTTL(fl validator.FieldLevel) bool {
	return fl.Field().Uint() <= maxTTL
}

// envLoader is a function that loads environment variables with the prefix "NSUPDATE_".
// It transforms the keys to lowercase and removes the prefix,
// and can be mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "NSUPDATE_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "NSUPDATE_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG into the provided Koanf instance
// using the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the custom "ttl" tag with the provided validator.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("ttl", validTTL)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	err := defaultLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	err = envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	err = registerValidation(validate)
	if err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
