// Package conf loads the process-wide configuration. Configuration is read
// once at startup, treated as immutable, and handed to components as plain
// values through dependency injection.
package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/pkg/xcache"
	"github.com/porticohq/portico/internal/research"
	"github.com/porticohq/portico/internal/server"
	"github.com/porticohq/portico/internal/server/biz"
	"github.com/porticohq/portico/internal/server/store"
	"github.com/porticohq/portico/internal/server/warmer"
)

type Config struct {
	APIServer  server.Config        `conf:"server"     yaml:"server"     json:"server"`
	Log        log.Config           `conf:"log"        yaml:"log"        json:"log"`
	Store      store.Config         `conf:"store"      yaml:"store"      json:"store"`
	Auth       biz.AuthConfig       `conf:"auth"       yaml:"auth"       json:"auth"`
	Onboarding biz.OnboardingConfig `conf:"onboarding" yaml:"onboarding" json:"onboarding"`
	Analytics  biz.AnalyticsConfig  `conf:"analytics"  yaml:"analytics"  json:"analytics"`
	Generator  research.Config      `conf:"generator"  yaml:"generator"  json:"generator"`
	Cache      xcache.Config        `conf:"cache"      yaml:"cache"      json:"cache"`
	Warmer     warmer.Config        `conf:"warmer"     yaml:"warmer"     json:"warmer"`
}

// Load reads portico.yml (working directory, ./conf, /etc/portico) and
// PORTICO_* environment overrides.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("portico")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./conf")
	v.AddConfigPath("/etc/portico")

	v.SetEnvPrefix("PORTICO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config

	err = v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "conf"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.name", "portico")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.research_request_timeout", 5*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("store.path", "portico.db")

	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("cache.mode", "memory")

	v.SetDefault("warmer.enabled", false)
	v.SetDefault("warmer.cron", "*/30 * * * *")
}
