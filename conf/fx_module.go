package conf

import (
	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/pkg/xcache"
	"github.com/porticohq/portico/internal/research"
	"github.com/porticohq/portico/internal/server"
	"github.com/porticohq/portico/internal/server/biz"
	"github.com/porticohq/portico/internal/server/store"
	"github.com/porticohq/portico/internal/server/warmer"
)

// Module explodes the loaded Config into the per-component configuration
// values the rest of the graph consumes.
var Module = fx.Module("conf",
	fx.Provide(
		func(c Config) server.Config { return c.APIServer },
		func(c Config) log.Config { return c.Log },
		func(c Config) store.Config { return c.Store },
		func(c Config) *biz.AuthConfig { return &c.Auth },
		func(c Config) *biz.OnboardingConfig { return &c.Onboarding },
		func(c Config) *biz.AnalyticsConfig { return &c.Analytics },
		func(c Config) *research.Config { return &c.Generator },
		func(c Config) xcache.Config { return c.Cache },
		func(c Config) warmer.Config { return c.Warmer },
	),
)
