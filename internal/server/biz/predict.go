package biz

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/objects"
)

// Predictor estimates rents and churn risk. The default implementation is a
// calibrated heuristic; a trained model can be swapped in behind the same
// interface.
type Predictor interface {
	PredictRent(ctx context.Context, features *objects.PropertyFeatures) (int, error)
	PredictChurn(ctx context.Context, features *objects.TenantFeatures) (float64, error)
}

type PredictServiceParams struct {
	fx.In

	Predictor Predictor `optional:"true"`
}

func NewPredictService(params PredictServiceParams) *PredictService {
	predictor := params.Predictor
	if predictor == nil {
		predictor = &heuristicPredictor{}
	}

	return &PredictService{predictor: predictor}
}

// PredictService serves the dashboard estimator widgets.
type PredictService struct {
	predictor Predictor
}

// Rent estimates market rent for a unit profile.
func (s *PredictService) Rent(ctx context.Context, features *objects.PropertyFeatures) (*objects.RentPrediction, error) {
	val, err := s.predictor.PredictRent(ctx, features)
	if err != nil {
		return nil, err
	}

	return &objects.RentPrediction{
		EstimatedRent: val,
		FormattedRent: formatDollars(val),
		Currency:      "USD",
	}, nil
}

// Churn estimates the probability a tenant leaves at renewal.
func (s *PredictService) Churn(ctx context.Context, features *objects.TenantFeatures) (*objects.ChurnPrediction, error) {
	prob, err := s.predictor.PredictChurn(ctx, features)
	if err != nil {
		return nil, err
	}

	level := "Low"
	if prob > 0.5 {
		level = "High"
	}

	return &objects.ChurnPrediction{
		ChurnProbability: prob,
		RiskLevel:        level,
	}, nil
}

// heuristicPredictor mirrors the calibration of the trained models closely
// enough for demo setups.
type heuristicPredictor struct{}

func (heuristicPredictor) PredictRent(_ context.Context, features *objects.PropertyFeatures) (int, error) {
	base := 3500

	if features.Neighborhood == "Tribeca" {
		base += 1500
	}

	if strings.Contains(features.PropertyClass, "A") {
		base += 1000
	}

	return base, nil
}

func (heuristicPredictor) PredictChurn(_ context.Context, features *objects.TenantFeatures) (float64, error) {
	risk := 0.2

	if features.CreditScore < 650 {
		risk += 0.4
	}

	if features.Income > 0 {
		rentBurden := float64(features.MarketRent) / (float64(features.Income) / 12)
		if rentBurden > 0.4 {
			risk += 0.3
		}
	}

	if risk > 0.95 {
		risk = 0.95
	}

	return risk, nil
}

// formatDollars renders 4500 as "$4,500".
func formatDollars(v int) string {
	s := fmt.Sprintf("%d", v)

	var b strings.Builder

	if strings.HasPrefix(s, "-") {
		b.WriteByte('-')
		s = s[1:]
	}

	b.WriteByte('$')

	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}

	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}

	return b.String()
}
