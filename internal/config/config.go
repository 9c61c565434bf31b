package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Wiki    WikiConfig    `yaml:"wiki" mapstructure:"wiki"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DatasetConfig locates the aetheryte dataset file.
type DatasetConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig configures the fetched-page cache.
type CacheConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// WikiConfig configures wiki page retrieval.
type WikiConfig struct {
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	FetchDelayMS int    `yaml:"fetch_delay_ms" mapstructure:"fetch_delay_ms"`
}

// LogConfig configures logging. Level "silent" disables output entirely.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("AETHERYTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.path", "aetheryte.json")
	v.SetDefault("cache.path", "wiki_cache.db")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("wiki.base_url", "https://ffxiv.consolegameswiki.com")
	v.SetDefault("wiki.timeout_secs", 10)
	v.SetDefault("wiki.fetch_delay_ms", 1000)
	v.SetDefault("log.level", "silent")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger. The "silent" level
// installs a no-op logger so library code can log unconditionally.
func InitLogger(cfg LogConfig) error {
	if strings.EqualFold(cfg.Level, "silent") {
		zap.ReplaceGlobals(zap.NewNop())
		return nil
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	name := cfg.Level
	if strings.EqualFold(name, "warning") {
		name = "warn"
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
