// Package config loads prism settings from defaults, an optional YAML file
// and PRISM_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"prism/internal/blob"
	"prism/internal/core"
)

// EnvPrefix is prepended to every environment override, e.g.
// PRISM_STORAGE_DRIVER for storage.driver.
const EnvPrefix = "PRISM"

// Config is the full runtime configuration.
type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	View    ViewConfig    `mapstructure:"view"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Trace   TraceConfig   `mapstructure:"trace"`

	file string
}

// HTTPConfig configures the UI listener.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug|info|warn|error
	Format string `mapstructure:"format"` // json|text
}

// StorageConfig selects the snapshot slot backend.
type StorageConfig struct {
	Driver      string     `mapstructure:"driver"`
	SlotKey     string     `mapstructure:"slot_key"`
	SQLitePath  string     `mapstructure:"sqlite_path"`
	PostgresDSN string     `mapstructure:"postgres_dsn"`
	Blob        BlobConfig `mapstructure:"blob"`
}

// BlobConfig configures the object store used by the blob driver.
type BlobConfig struct {
	Driver string   `mapstructure:"driver"`
	FSRoot string   `mapstructure:"fs_root"`
	Prefix string   `mapstructure:"prefix"`
	S3     S3Config `mapstructure:"s3"`
}

// S3Config configures the S3 blob driver.
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	PathStyle       bool   `mapstructure:"path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// ViewConfig controls how records are formatted in the UI.
type ViewConfig struct {
	Locale     string `mapstructure:"locale"`
	Currency   string `mapstructure:"currency"`
	PrettyHTML bool   `mapstructure:"pretty_html"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// TraceConfig names a file receiving one JSON line per store operation.
type TraceConfig struct {
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", "127.0.0.1:8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("storage.driver", string(core.StorageSQLite))
	v.SetDefault("storage.slot_key", core.DefaultSlotKey)
	v.SetDefault("storage.sqlite_path", "prism.db")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.blob.driver", string(blob.DriverFilesystem))
	v.SetDefault("storage.blob.fs_root", "./blobdata")
	v.SetDefault("storage.blob.prefix", "")
	v.SetDefault("storage.blob.s3.bucket", "")
	v.SetDefault("storage.blob.s3.region", "us-east-1")
	v.SetDefault("storage.blob.s3.endpoint", "")
	v.SetDefault("storage.blob.s3.path_style", false)
	v.SetDefault("storage.blob.s3.access_key_id", "")
	v.SetDefault("storage.blob.s3.secret_access_key", "")
	v.SetDefault("view.locale", "en-US")
	v.SetDefault("view.currency", "USD")
	v.SetDefault("view.pretty_html", false)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("trace.path", "")
}

// Load resolves the configuration. When path is empty an optional
// ./prism.yaml is read; an explicit path must exist.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("prism")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config to struct: %w", err)
	}
	cfg.file = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// File returns the config file that was read, or "" when none was found.
func (c Config) File() string { return c.file }

// Validate rejects unknown drivers and log settings.
func (c Config) Validate() error {
	var errs []error
	switch core.StorageDriver(c.Storage.Driver) {
	case core.StorageMemory, core.StorageSQLite, core.StoragePostgres, core.StorageBlob:
	default:
		errs = append(errs, fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver))
	}
	if c.Storage.Driver == string(core.StorageBlob) {
		switch blob.Driver(c.Storage.Blob.Driver) {
		case blob.DriverFilesystem, blob.DriverMemory:
		case blob.DriverS3:
			if c.Storage.Blob.S3.Bucket == "" {
				errs = append(errs, errors.New("storage.blob.s3.bucket: required for s3 driver"))
			}
		default:
			errs = append(errs, fmt.Errorf("storage.blob.driver: unknown driver %q", c.Storage.Blob.Driver))
		}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format: expected json or text, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// SlogLevel parses Level into a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// SlotConfig converts the storage section into the record store's slot settings.
func (s StorageConfig) SlotConfig() core.StorageConfig {
	return core.StorageConfig{
		Driver:      s.Driver,
		SQLitePath:  s.SQLitePath,
		PostgresDSN: s.PostgresDSN,
		BlobPrefix:  s.Blob.Prefix,
		Blob: blob.Config{
			Driver: s.Blob.Driver,
			FSRoot: s.Blob.FSRoot,
			S3: blob.S3Config{
				Bucket:          s.Blob.S3.Bucket,
				Region:          s.Blob.S3.Region,
				Endpoint:        s.Blob.S3.Endpoint,
				PathStyle:       s.Blob.S3.PathStyle,
				AccessKeyID:     s.Blob.S3.AccessKeyID,
				SecretAccessKey: s.Blob.S3.SecretAccessKey,
			},
		},
	}
}
