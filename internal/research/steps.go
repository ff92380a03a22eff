package research

import (
	"context"
	"fmt"

	"github.com/porticohq/portico/internal/pipeline"
)

const (
	defaultLocation = "NYC"
	defaultYear     = "2026"

	// Lease documents are truncated before generation to stay within the
	// model's context limit.
	maxDocumentChars = 10000
)

// MacroStep researches high-level economic trends for a location and year.
func MacroStep(gen Generator) pipeline.Step {
	return pipeline.NewStep(
		"macro",
		[]pipeline.Slot{pipeline.SlotLocation, pipeline.SlotYear},
		pipeline.SlotMacroData,
		func(ctx context.Context, rc *pipeline.Context) (pipeline.Value, error) {
			loc := rc.StringOr(pipeline.SlotLocation, defaultLocation)
			year := rc.StringOr(pipeline.SlotYear, defaultYear)

			content, err := gen.Generate(ctx, &GenerateRequest{
				SystemRole: "Macroeconomist",
				Tier:       TierFast,
				Prompt: fmt.Sprintf(
					"Find specific %s macroeconomic forecasts for %s: Interest Rates, Unemployment Rate, and Inflation impact on real estate.",
					loc, year),
			})
			if err != nil {
				return pipeline.Value{}, err
			}

			return pipeline.StringValue(content), nil
		},
	)
}

// MarketStep analyzes residential rental market trends.
func MarketStep(gen Generator) pipeline.Step {
	return pipeline.NewStep(
		"market",
		[]pipeline.Slot{pipeline.SlotLocation, pipeline.SlotYear},
		pipeline.SlotMarketData,
		func(ctx context.Context, rc *pipeline.Context) (pipeline.Value, error) {
			loc := rc.StringOr(pipeline.SlotLocation, defaultLocation)
			year := rc.StringOr(pipeline.SlotYear, defaultYear)

			content, err := gen.Generate(ctx, &GenerateRequest{
				SystemRole: "Market Analyst",
				Tier:       TierFast,
				Prompt: fmt.Sprintf(
					"Find %s Residential Rental Market trends for %s: Vacancy rates, and luxury vs mid-market rent growth projections.",
					loc, year),
			})
			if err != nil {
				return pipeline.Value{}, err
			}

			return pipeline.StringValue(content), nil
		},
	)
}

// LegalStep checks legislation and compliance risks for landlords.
func LegalStep(gen Generator) pipeline.Step {
	return pipeline.NewStep(
		"legal",
		[]pipeline.Slot{pipeline.SlotLocation, pipeline.SlotYear},
		pipeline.SlotLegalData,
		func(ctx context.Context, rc *pipeline.Context) (pipeline.Value, error) {
			loc := rc.StringOr(pipeline.SlotLocation, defaultLocation)
			year := rc.StringOr(pipeline.SlotYear, defaultYear)

			content, err := gen.Generate(ctx, &GenerateRequest{
				SystemRole: "Legal Scholar",
				Tier:       TierFast,
				Prompt: fmt.Sprintf(
					"Summarize the latest status of eviction laws (like 'Good Cause') and compliance requirements for landlords in %s for %s.",
					loc, year),
			})
			if err != nil {
				return pipeline.Value{}, err
			}

			return pipeline.StringValue(content), nil
		},
	)
}

// RiskStep validates whether a proposed rent/occupancy scenario is realistic
// given market trends.
func RiskStep(gen Generator) pipeline.Step {
	return pipeline.NewStep(
		"risk",
		[]pipeline.Slot{
			pipeline.SlotLocation,
			pipeline.SlotYear,
			pipeline.SlotRentChangePct,
			pipeline.SlotOccupancyChangePct,
		},
		pipeline.SlotRiskAnalysis,
		func(ctx context.Context, rc *pipeline.Context) (pipeline.Value, error) {
			loc := rc.StringOr(pipeline.SlotLocation, defaultLocation)
			year := rc.StringOr(pipeline.SlotYear, defaultYear)
			rentChange := rc.NumberOr(pipeline.SlotRentChangePct, 0)
			occChange := rc.NumberOr(pipeline.SlotOccupancyChangePct, 0)

			content, err := gen.Generate(ctx, &GenerateRequest{
				SystemRole: "Risk Manager",
				Tier:       TierFast,
				Prompt: fmt.Sprintf(`Verify this real estate scenario for %s %s compatibility:
Proposed Rent Increase: %v%%
Projected Occ Change: %v%%

Is this realistic given %s market vacancy trends?
Be critical. If rent hike is >5%%, warn about churn.
Output a single paragraph risk assessment.`,
					loc, year, rentChange, occChange, year),
			})
			if err != nil {
				return pipeline.Value{}, err
			}

			return pipeline.StringValue(content), nil
		},
	)
}

// LeaseStep analyzes lease document text against a user query.
func LeaseStep(gen Generator) pipeline.Step {
	return pipeline.NewStep(
		"lease",
		[]pipeline.Slot{pipeline.SlotDocumentText, pipeline.SlotUserQuery},
		pipeline.SlotLeaseAnalysis,
		func(ctx context.Context, rc *pipeline.Context) (pipeline.Value, error) {
			text := rc.StringOr(pipeline.SlotDocumentText, "")
			query := rc.StringOr(pipeline.SlotUserQuery, "Analyze risks")

			if len(text) > maxDocumentChars {
				text = text[:maxDocumentChars]
			}

			content, err := gen.Generate(ctx, &GenerateRequest{
				SystemRole: "Lease Lawyer",
				Tier:       TierReasoning,
				Prompt:     fmt.Sprintf("Analyze this Lease clause regarding: %s\n\nText:\n%s", query, text),
			})
			if err != nil {
				return pipeline.Value{}, err
			}

			return pipeline.StringValue(content), nil
		},
	)
}

// EditorStep synthesizes the gathered data streams into an executive report.
func EditorStep(gen Generator) pipeline.Step {
	return pipeline.NewStep(
		"editor",
		[]pipeline.Slot{
			pipeline.SlotObjective,
			pipeline.SlotLocation,
			pipeline.SlotYear,
			pipeline.SlotMacroData,
			pipeline.SlotMarketData,
			pipeline.SlotLegalData,
		},
		pipeline.SlotFinalReport,
		func(ctx context.Context, rc *pipeline.Context) (pipeline.Value, error) {
			content, err := gen.Generate(ctx, &GenerateRequest{
				SystemRole: "Chief Editor",
				Tier:       TierReasoning,
				Prompt: fmt.Sprintf(`You are the Chief Investment Officer. Write a Quarterly Executive Report using the data below.

CONTEXT:
Objective: %s
Location: %s
Year: %s

DATA STREAMS:
[MACRO]: %s
[MARKET]: %s
[LEGAL]: %s

FORMAT:
# Executive Report

## 1. Macro Outlook
(Synthesis of macro data)

## 2. Rental Market Dynamics
(Synthesis of market data)

## 3. Regulatory Watch
(Synthesis of legal data)

## 4. Strategic Recommendation
(Buy/Hold/Sell advice based on the above)`,
					rc.StringOr(pipeline.SlotObjective, "General Report"),
					rc.StringOr(pipeline.SlotLocation, "Unknown"),
					rc.StringOr(pipeline.SlotYear, defaultYear),
					rc.StringOr(pipeline.SlotMacroData, "N/A"),
					rc.StringOr(pipeline.SlotMarketData, "N/A"),
					rc.StringOr(pipeline.SlotLegalData, "N/A"),
				),
			})
			if err != nil {
				return pipeline.Value{}, err
			}

			return pipeline.StringValue(content), nil
		},
	)
}

// ReportPipeline is the fixed report-generation chain: macro, market, legal
// research followed by editorial synthesis.
func ReportPipeline(gen Generator, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	return pipeline.New([]pipeline.Step{
		MacroStep(gen),
		MarketStep(gen),
		LegalStep(gen),
		EditorStep(gen),
	}, opts...)
}

// RiskPipeline is the single-step scenario validation chain.
func RiskPipeline(gen Generator, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	return pipeline.New([]pipeline.Step{RiskStep(gen)}, opts...)
}

// LeasePipeline is the single-step lease document analysis chain.
func LeasePipeline(gen Generator, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	return pipeline.New([]pipeline.Step{LeaseStep(gen)}, opts...)
}
