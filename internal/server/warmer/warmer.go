// Package warmer keeps the default executive report warm in cache by
// regenerating it on a schedule, so interactive requests rarely pay for a
// full research run.
package warmer

import (
	"context"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/server/biz"
)

type Config struct {
	Enabled bool `conf:"enabled" yaml:"enabled" json:"enabled"`

	// CRON is a five-field schedule expression.
	CRON string `conf:"cron" yaml:"cron" json:"cron"`

	// Location and Year select which report to keep warm. Empty means the
	// default report.
	Location string `conf:"location" yaml:"location" json:"location"`
	Year     string `conf:"year"     yaml:"year"     json:"year"`
}

type Params struct {
	fx.In

	Config           Config
	AnalyticsService *biz.AnalyticsService
	Executor         executors.ScheduledExecutor
}

func NewWorker(params Params) *Worker {
	return &Worker{
		config:    params.Config,
		analytics: params.AnalyticsService,
		executor:  params.Executor,
	}
}

type Worker struct {
	config    Config
	analytics *biz.AnalyticsService
	executor  executors.ScheduledExecutor

	cancel context.CancelFunc
}

func (w *Worker) Start(ctx context.Context) error {
	if !w.config.Enabled {
		log.Debug(ctx, "report warmer disabled")
		return nil
	}

	expr := w.config.CRON
	if expr == "" {
		expr = "*/30 * * * *"
	}

	cancel, err := w.executor.ScheduleFuncAtCronRate(w.refresh, executors.CRONRule{Expr: expr})
	if err != nil {
		return err
	}

	w.cancel = cancel

	log.Info(ctx, "report warmer started", log.String("cron", expr))

	return nil
}

func (w *Worker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}

	return nil
}

func (w *Worker) refresh(ctx context.Context) {
	_, err := w.analytics.Report(ctx, w.config.Location, w.config.Year)
	if err != nil {
		log.Warn(ctx, "report warm-up failed", log.Cause(err))
		return
	}

	log.Debug(ctx, "report warmed",
		log.String("location", w.config.Location),
		log.String("year", w.config.Year),
	)
}
