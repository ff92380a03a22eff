package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"

	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/objects"
	"github.com/porticohq/portico/internal/pipeline"
	"github.com/porticohq/portico/internal/pkg/xcache"
	"github.com/porticohq/portico/internal/research"
)

// AnalyticsConfig is fixed at process start.
type AnalyticsConfig struct {
	// ReportTTL bounds how long a synthesized report is served from cache.
	ReportTTL time.Duration `conf:"report_ttl" yaml:"report_ttl" json:"report_ttl"`

	// StepTimeout bounds each research step's capability call.
	StepTimeout time.Duration `conf:"step_timeout" yaml:"step_timeout" json:"step_timeout"`
}

func (c *AnalyticsConfig) withDefaults() AnalyticsConfig {
	out := *c
	if out.ReportTTL <= 0 {
		out.ReportTTL = 15 * time.Minute
	}

	if out.StepTimeout <= 0 {
		out.StepTimeout = 60 * time.Second
	}

	return out
}

// Scenario baseline of the sample portfolio.
var (
	scenarioUnits     = decimal.NewFromInt(1836)
	scenarioAvgRent   = decimal.NewFromInt(4100)
	scenarioOccupancy = decimal.RequireFromString("0.94")
	monthsPerYear     = decimal.NewFromInt(12)
	hundred           = decimal.NewFromInt(100)
)

type AnalyticsServiceParams struct {
	fx.In

	Config    *AnalyticsConfig
	Generator research.Generator
	Cache     xcache.Cache[string]
}

func NewAnalyticsService(params AnalyticsServiceParams) (*AnalyticsService, error) {
	cfg := params.Config.withDefaults()

	report, err := research.ReportPipeline(params.Generator, pipeline.WithStepTimeout(cfg.StepTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to build report pipeline: %w", err)
	}

	risk, err := research.RiskPipeline(params.Generator, pipeline.WithStepTimeout(cfg.StepTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to build risk pipeline: %w", err)
	}

	lease, err := research.LeasePipeline(params.Generator, pipeline.WithStepTimeout(cfg.StepTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to build lease pipeline: %w", err)
	}

	return &AnalyticsService{
		config: cfg,
		cache:  params.Cache,
		report: report,
		risk:   risk,
		lease:  lease,
	}, nil
}

// AnalyticsService runs the research pipelines and the revenue projections
// behind the analytics endpoints.
type AnalyticsService struct {
	config AnalyticsConfig
	cache  xcache.Cache[string]

	report *pipeline.Pipeline
	risk   *pipeline.Pipeline
	lease  *pipeline.Pipeline

	// group collapses concurrent report requests for the same key into one
	// pipeline run.
	group singleflight.Group
}

func reportCacheKey(location, year string) string {
	return fmt.Sprintf("report:%s:%s", location, year)
}

// Report synthesizes the executive report for a location and year. Reports
// are expensive to produce, so results are cached and concurrent requests
// for the same key share one run.
func (s *AnalyticsService) Report(ctx context.Context, location, year string) (*objects.ReportResponse, error) {
	if location == "" {
		location = "NYC"
	}

	if year == "" {
		year = "2026"
	}

	key := reportCacheKey(location, year)

	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		log.Debug(ctx, "report served from cache", log.String("key", key))
		return &objects.ReportResponse{Report: cached}, nil
	}

	report, err, shared := s.group.Do(key, func() (any, error) {
		return s.generateReport(ctx, location, year)
	})
	if err != nil {
		return nil, err
	}

	if shared {
		log.Debug(ctx, "report request coalesced", log.String("key", key))
	}

	return &objects.ReportResponse{Report: report.(string)}, nil
}

func (s *AnalyticsService) generateReport(ctx context.Context, location, year string) (string, error) {
	rc := pipeline.NewContext()
	rc.SetString(pipeline.SlotObjective, fmt.Sprintf("Write Q1 %s Report", year))
	rc.SetString(pipeline.SlotLocation, location)
	rc.SetString(pipeline.SlotYear, year)

	out, err := s.report.Run(ctx, rc)
	if err != nil {
		log.Error(ctx, "report pipeline failed", log.Cause(err))
		return "", ErrInternal
	}

	report := out.StringOr(s.report.FinalSlot(), "")

	key := reportCacheKey(location, year)
	if err := s.cache.Set(ctx, key, report, xcache.WithExpiration(s.config.ReportTTL)); err != nil {
		log.Warn(ctx, "failed to cache report", log.String("key", key), log.Cause(err))
	}

	return report, nil
}

// Scenario projects annual revenue under a proposed rent and occupancy
// change and attaches a risk assessment of the proposal.
func (s *AnalyticsService) Scenario(ctx context.Context, rentChangePct, occupancyChangePct float64) (*objects.ScenarioResult, error) {
	baseline := scenarioUnits.
		Mul(scenarioAvgRent).
		Mul(scenarioOccupancy).
		Mul(monthsPerYear)

	newRent := scenarioAvgRent.Mul(
		decimal.NewFromInt(1).Add(decimal.NewFromFloat(rentChangePct).Div(hundred)))

	newOcc := scenarioOccupancy.Add(decimal.NewFromFloat(occupancyChangePct).Div(hundred))
	// Occupancy is a share; a scenario cannot push it below empty or past
	// full.
	if newOcc.IsNegative() {
		newOcc = decimal.Zero
	} else if newOcc.GreaterThan(decimal.NewFromInt(1)) {
		newOcc = decimal.NewFromInt(1)
	}

	newRevenue := scenarioUnits.Mul(newRent).Mul(newOcc).Mul(monthsPerYear)

	rc := pipeline.NewContext()
	rc.SetNumber(pipeline.SlotRentChangePct, rentChangePct)
	rc.SetNumber(pipeline.SlotOccupancyChangePct, occupancyChangePct)
	rc.SetString(pipeline.SlotLocation, "NYC")
	rc.SetString(pipeline.SlotYear, "2026")

	analysis := "Analysis Failed"

	out, err := s.risk.Run(ctx, rc)
	if err != nil {
		log.Warn(ctx, "risk pipeline failed", log.Cause(err))
	} else {
		analysis = out.StringOr(s.risk.FinalSlot(), analysis)
	}

	return &objects.ScenarioResult{
		BaselineRevenue: baseline.IntPart(),
		NewRevenue:      newRevenue.IntPart(),
		Delta:           newRevenue.Sub(baseline).IntPart(),
		RiskAnalysis:    analysis,
	}, nil
}

// AnalyzeLease runs the lease analysis over extracted document text.
func (s *AnalyticsService) AnalyzeLease(ctx context.Context, documentText, query string) (string, error) {
	rc := pipeline.NewContext()
	rc.SetString(pipeline.SlotDocumentText, documentText)
	rc.SetString(pipeline.SlotUserQuery, query)

	out, err := s.lease.Run(ctx, rc)
	if err != nil {
		log.Error(ctx, "lease pipeline failed", log.Cause(err))
		return "", ErrInternal
	}

	return out.StringOr(s.lease.FinalSlot(), "Analysis Failed"), nil
}

// Data returns the fixed dashboard series.
func (s *AnalyticsService) Data(ctx context.Context) *objects.AnalyticsData {
	return &objects.AnalyticsData{
		RentGrowth: []objects.RentGrowthPoint{
			{Year: "2023", Portfolio: 2.5, Market: 1.8},
			{Year: "2024", Portfolio: 3.2, Market: 2.1},
			{Year: "2025", Portfolio: 4.5, Market: 3.0},
			{Year: "2026", Portfolio: 5.1, Market: 3.1},
		},
		Occupancy: []objects.OccupancyPoint{
			{Quarter: "Q1 25", Value: 94},
			{Quarter: "Q2 25", Value: 95},
			{Quarter: "Q3 25", Value: 96},
			{Quarter: "Q4 25", Value: 93},
		},
	}
}
