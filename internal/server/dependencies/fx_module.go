package dependencies

import (
	"context"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/pkg/httpclient"
	"github.com/porticohq/portico/internal/pkg/xcache"
	"github.com/porticohq/portico/internal/research"
	"github.com/porticohq/portico/internal/server/store"
)

var Module = fx.Module("dependencies",
	fx.Provide(log.New),
	fx.Provide(store.Open),
	fx.Provide(httpclient.NewHttpClient),
	fx.Provide(NewExecutors),
	fx.Provide(func(cfg *research.Config, client *httpclient.HttpClient) research.Generator {
		return research.NewHTTPGenerator(cfg, client)
	}),
	fx.Provide(func(cfg xcache.Config) xcache.Cache[string] {
		return xcache.NewFromConfig[string](cfg)
	}),
	fx.Invoke(func(lc fx.Lifecycle, st *store.Store) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return st.Close()
			},
		})
	}),
	fx.Invoke(func(lc fx.Lifecycle, executor executors.ScheduledExecutor) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return executor.Shutdown(ctx)
			},
		})
	}),
)
