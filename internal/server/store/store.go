// Package store persists principal records and the sample portfolio in
// SQLite. Reads are lock-free; provisioning writes are serialized.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/porticohq/portico/internal/authz"
	"github.com/porticohq/portico/internal/objects"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

type Config struct {
	// Path is the SQLite database path. ":memory:" keeps everything in process.
	Path string `conf:"path" yaml:"path" json:"path"`
}

// PrincipalRecord is the stored form of a principal. The raw secret is never
// stored, only its salted hash.
type PrincipalRecord struct {
	Identity   string
	SecretHash string
	Role       authz.Role
	Scope      authz.ScopeValue
}

type Store struct {
	db *sql.DB

	// mu serializes provisioning writes; reads take no lock.
	mu sync.Mutex
}

// Open opens (or creates) the database and runs migrations.
func Open(cfg Config) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// modernc sqlite serializes at the driver level; a single connection
	// avoids table-lock errors on concurrent writes.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}

	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS principals (
	identity    TEXT PRIMARY KEY,
	secret_hash TEXT NOT NULL,
	role        TEXT NOT NULL,
	property_id TEXT
);
CREATE TABLE IF NOT EXISTS properties (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	neighborhood TEXT NOT NULL,
	class        TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS units (
	id          TEXT PRIMARY KEY,
	property_id TEXT NOT NULL REFERENCES properties(id),
	type        TEXT NOT NULL,
	sqft        INTEGER NOT NULL,
	market_rent INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS tenants (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	property_id  TEXT NOT NULL REFERENCES properties(id),
	unit_id      TEXT NOT NULL REFERENCES units(id),
	income       INTEGER NOT NULL,
	credit_score INTEGER NOT NULL,
	market_rent  INTEGER NOT NULL
);
`

	_, err := s.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// FindByIdentity looks up a principal record by its unique identity.
func (s *Store) FindByIdentity(ctx context.Context, identity string) (*PrincipalRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT identity, secret_hash, role, property_id FROM principals WHERE identity = ?`, identity)

	var (
		rec        PrincipalRecord
		role       string
		propertyID sql.NullString
	)

	err := row.Scan(&rec.Identity, &rec.SecretHash, &role, &propertyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("principal %q: %w", identity, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query principal: %w", err)
	}

	rec.Role = authz.Role(role)

	if propertyID.Valid && propertyID.String != "" {
		rec.Scope = authz.SingleResource(propertyID.String)
	} else {
		rec.Scope = authz.AllResources()
	}

	return &rec, nil
}

// CreatePrincipal inserts a principal record. Provisioning only.
func (s *Store) CreatePrincipal(ctx context.Context, rec PrincipalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var propertyID sql.NullString
	if id, ok := rec.Scope.PropertyID(); ok {
		propertyID = sql.NullString{String: id, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO principals (identity, secret_hash, role, property_id) VALUES (?, ?, ?, ?)`,
		rec.Identity, rec.SecretHash, string(rec.Role), propertyID)
	if err != nil {
		return fmt.Errorf("failed to create principal %q: %w", rec.Identity, err)
	}

	return nil
}

// Properties returns all property rows.
func (s *Store) Properties(ctx context.Context) ([]objects.Property, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, neighborhood, class FROM properties ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var properties []objects.Property

	for rows.Next() {
		var p objects.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Neighborhood, &p.Class); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}

		properties = append(properties, p)
	}

	return properties, rows.Err()
}

// Units returns all unit rows, or only those of one property when propertyID
// is non-empty.
func (s *Store) Units(ctx context.Context, propertyID string) ([]objects.Unit, error) {
	query := `SELECT id, property_id, type, sqft, market_rent FROM units`

	var args []any

	if propertyID != "" {
		query += ` WHERE property_id = ?`

		args = append(args, propertyID)
	}

	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []objects.Unit

	for rows.Next() {
		var u objects.Unit
		if err := rows.Scan(&u.ID, &u.PropertyID, &u.Type, &u.Sqft, &u.MarketRent); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}

		units = append(units, u)
	}

	return units, rows.Err()
}

// Tenants returns all tenant rows.
func (s *Store) Tenants(ctx context.Context) ([]objects.Tenant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, property_id, unit_id, income, credit_score, market_rent FROM tenants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	var tenants []objects.Tenant

	for rows.Next() {
		var t objects.Tenant

		err := rows.Scan(&t.ID, &t.Name, &t.PropertyID, &t.UnitID, &t.Income, &t.CreditScore, &t.MarketRent)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}

		tenants = append(tenants, t)
	}

	return tenants, rows.Err()
}
