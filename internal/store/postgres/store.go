package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowmasterhq/flowmaster/internal/domain"
)

// Store is the global-database store: the tenant registry plus the shared
// master-data tables.
type Store struct {
	pool       *pgxpool.Pool
	tenants    *TenantRepo
	pipes      *masterRepo[domain.Pipe]
	fittings   *masterRepo[domain.Fitting]
	gases      *masterRepo[domain.Gas]
	liquids    *masterRepo[domain.Liquid]
	units      *masterRepo[domain.Unit]
	components *masterRepo[domain.Component]
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:       pool,
		tenants:    NewTenantRepo(pool),
		pipes:      newPipeRepo(pool),
		fittings:   newFittingRepo(pool),
		gases:      newGasRepo(pool),
		liquids:    newLiquidRepo(pool),
		units:      newUnitRepo(pool),
		components: newComponentRepo(pool),
	}, nil
}

// EnsureSchema creates the global tables when they do not exist yet. The
// original deployment ran migrations at startup; this is the equivalent
// idempotent path.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range globalTableDDL {
		_, err := s.pool.Exec(ctx, stmt)
		if err != nil {
			return fmt.Errorf("postgres.EnsureSchema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Tenants() domain.TenantRepository                      { return s.tenants }
func (s *Store) Pipes() domain.MasterDataRepository[domain.Pipe]       { return s.pipes }
func (s *Store) Fittings() domain.MasterDataRepository[domain.Fitting] { return s.fittings }
func (s *Store) Gases() domain.MasterDataRepository[domain.Gas]        { return s.gases }
func (s *Store) Liquids() domain.MasterDataRepository[domain.Liquid]   { return s.liquids }
func (s *Store) Units() domain.MasterDataRepository[domain.Unit]       { return s.units }
func (s *Store) Components() domain.MasterDataRepository[domain.Component] {
	return s.components
}
