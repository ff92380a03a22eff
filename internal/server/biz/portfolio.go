package biz

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/authz"
	"github.com/porticohq/portico/internal/contexts"
	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/objects"
	"github.com/porticohq/portico/internal/server/store"
)

const (
	// portfolioOccupancy is the assumed steady-state occupancy percentage
	// of the sample portfolio.
	portfolioOccupancy = 94

	// yieldGainFloor is the minimum annualized upside for a unit to count
	// as a yield opportunity.
	yieldGainFloor = 3000

	// yieldTopN bounds the opportunities returned per property.
	yieldTopN = 3
)

type PortfolioServiceParams struct {
	fx.In

	Store *store.Store
}

func NewPortfolioService(params PortfolioServiceParams) *PortfolioService {
	return &PortfolioService{store: params.Store}
}

// PortfolioService serves property, unit, and tenant views. Every read
// narrows its result to the caller's scope before returning.
type PortfolioService struct {
	store *store.Store
}

func principalFromContext(ctx context.Context) (authz.Principal, error) {
	p, ok := contexts.GetPrincipal(ctx)
	if !ok {
		return authz.Principal{}, fmt.Errorf("%w: no principal in context", ErrInternal)
	}

	return p, nil
}

// Properties returns the roll-up view of every property visible to the
// caller.
func (s *PortfolioService) Properties(ctx context.Context) ([]objects.Property, error) {
	p, err := principalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	properties, err := s.store.Properties(ctx)
	if err != nil {
		log.Error(ctx, "failed to load properties", log.Cause(err))
		return nil, ErrInternal
	}

	units, err := s.store.Units(ctx, "")
	if err != nil {
		log.Error(ctx, "failed to load units", log.Cause(err))
		return nil, ErrInternal
	}

	unitsByProperty := lo.GroupBy(units, func(u objects.Unit) string {
		return u.PropertyID
	})

	for i := range properties {
		propUnits := unitsByProperty[properties[i].ID]

		avgRent := 0
		if len(propUnits) > 0 {
			total := lo.SumBy(propUnits, func(u objects.Unit) int {
				return u.MarketRent
			})
			avgRent = total / len(propUnits)
		}

		properties[i].Units = len(propUnits)
		properties[i].AvgRent = avgRent
		properties[i].Occupancy = portfolioOccupancy
		// Annual gross at average rent, at a 65% margin.
		properties[i].NOI = int(float64(len(propUnits)*avgRent*12) * 0.65)
	}

	return authz.ApplyScope(p, properties), nil
}

// Yield returns the top under-rented units of one property. An owner asking
// about a property outside their scope gets an empty result, not an
// existence hint.
func (s *PortfolioService) Yield(ctx context.Context, propertyID string) ([]objects.YieldOpportunity, error) {
	p, err := principalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !p.Scope.Allows(propertyID) {
		log.Debug(ctx, "yield request outside caller scope",
			log.String("principal", p.String()),
			log.String("property_id", propertyID),
		)

		return []objects.YieldOpportunity{}, nil
	}

	units, err := s.store.Units(ctx, propertyID)
	if err != nil {
		log.Error(ctx, "failed to load units", log.Cause(err))
		return nil, ErrInternal
	}

	opportunities := make([]objects.YieldOpportunity, 0, len(units))

	for _, unit := range units {
		// Current rent is a deterministic discount off market, derived
		// from the unit id so results are stable across restarts.
		seed := 0
		for _, c := range unit.ID {
			seed += int(c)
		}

		discount := 0.80 + float64(seed%15)/100.0
		currentRent := int(float64(unit.MarketRent) * discount)
		gain := (unit.MarketRent - currentRent) * 12

		if gain > yieldGainFloor {
			opportunities = append(opportunities, objects.YieldOpportunity{
				UnitID:      unit.ID,
				Type:        unit.Type,
				CurrentRent: currentRent,
				MarketRent:  unit.MarketRent,
				Gain:        gain,
				Sqft:        unit.Sqft,
			})
		}
	}

	sort.Slice(opportunities, func(i, j int) bool {
		return opportunities[i].Gain > opportunities[j].Gain
	})

	if len(opportunities) > yieldTopN {
		opportunities = opportunities[:yieldTopN]
	}

	return opportunities, nil
}

// Tenants returns the tenants visible to the caller.
func (s *PortfolioService) Tenants(ctx context.Context) ([]objects.Tenant, error) {
	p, err := principalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tenants, err := s.store.Tenants(ctx)
	if err != nil {
		log.Error(ctx, "failed to load tenants", log.Cause(err))
		return nil, ErrInternal
	}

	return authz.ApplyScope(p, tenants), nil
}
