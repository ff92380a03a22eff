package api

import (
	"go.uber.org/fx"
)

var Module = fx.Module("api",
	fx.Provide(NewAuthHandlers),
	fx.Provide(NewPortfolioHandlers),
	fx.Provide(NewAnalyticsHandlers),
	fx.Provide(NewLegalHandlers),
	fx.Provide(NewPredictHandlers),
	fx.Provide(NewSystemHandlers),
)
