package store

import (
	"context"
	"fmt"
)

//nolint:gochecknoglobals // Fixed sample-data vocabulary.
var (
	seedNeighborhoods = []string{"Tribeca", "SoHo", "Harlem", "Williamsburg", "Astoria", "Bushwick"}
	seedClasses       = []string{"A", "B", "C"}
	seedUnitTypes     = []string{"Studio", "1BD", "2BD"}
	seedSurnames      = []string{"Rodriguez", "Chen", "Okafor", "Novak", "Hassan", "Kowalski", "Silva", "Tanaka"}
)

// byteSeed derives a stable small number from an identifier. The sample data
// must be reproducible across runs, so everything is keyed off the ids.
func byteSeed(id string) int {
	sum := 0
	for _, c := range []byte(id) {
		sum += int(c)
	}

	return sum
}

// SeedPortfolio provisions a deterministic sample portfolio of n properties
// with units and tenants. Existing rows are left untouched; seeding an
// already-seeded store is an error surfaced by the primary keys.
func (s *Store) SeedPortfolio(ctx context.Context, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range n {
		propertyID := fmt.Sprintf("PROP_%03d", i)
		seed := byteSeed(propertyID)
		neighborhood := seedNeighborhoods[seed%len(seedNeighborhoods)]
		class := seedClasses[seed%len(seedClasses)]
		name := fmt.Sprintf("%s Towers", seedSurnames[seed%len(seedSurnames)])

		_, err := tx.ExecContext(ctx,
			`INSERT INTO properties (id, name, neighborhood, class) VALUES (?, ?, ?, ?)`,
			propertyID, name, neighborhood, class)
		if err != nil {
			return fmt.Errorf("failed to seed property %s: %w", propertyID, err)
		}

		unitCount := 12 + seed%24

		for j := range unitCount {
			unitID := fmt.Sprintf("U-%s-%02d", propertyID, j)
			unitSeed := byteSeed(unitID)
			unitType := seedUnitTypes[unitSeed%len(seedUnitTypes)]
			sqft := 450 + unitSeed%9*150
			rent := 2200 + unitSeed%17*250

			_, err := tx.ExecContext(ctx,
				`INSERT INTO units (id, property_id, type, sqft, market_rent) VALUES (?, ?, ?, ?, ?)`,
				unitID, propertyID, unitType, sqft, rent)
			if err != nil {
				return fmt.Errorf("failed to seed unit %s: %w", unitID, err)
			}

			// Roughly two thirds of the units get a tenant.
			if unitSeed%3 == 0 {
				continue
			}

			tenantID := fmt.Sprintf("T-%s-%02d", propertyID, j)
			tenantName := fmt.Sprintf("%s %c.", seedSurnames[unitSeed%len(seedSurnames)], 'A'+rune(unitSeed%26))
			income := rent*28 + unitSeed%11*4000
			creditScore := 580 + unitSeed%27*10

			_, err = tx.ExecContext(ctx,
				`INSERT INTO tenants (id, name, property_id, unit_id, income, credit_score, market_rent)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				tenantID, tenantName, propertyID, unitID, income, creditScore, rent)
			if err != nil {
				return fmt.Errorf("failed to seed tenant %s: %w", tenantID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	return nil
}

// Seeded reports whether the portfolio tables already hold data.
func (s *Store) Seeded(ctx context.Context) (bool, error) {
	var count int

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count properties: %w", err)
	}

	return count > 0, nil
}
