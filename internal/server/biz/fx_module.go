package biz

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("biz",
	fx.Provide(NewAuthService),
	fx.Provide(NewOnboardingService),
	fx.Provide(NewPortfolioService),
	fx.Provide(NewAnalyticsService),
	fx.Provide(NewPredictService),
	fx.Invoke(func(lc fx.Lifecycle, svc *OnboardingService) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return svc.EnsureSeeded(ctx)
			},
		})
	}),
)
