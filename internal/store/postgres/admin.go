package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowmasterhq/flowmaster/internal/config"
	"github.com/flowmasterhq/flowmaster/internal/domain"
)

// Admin issues server-level statements for tenant provisioning. It holds its
// own connection to the global database because CREATE DATABASE cannot run
// inside a transaction or through a request-scoped tenant pool.
type Admin struct {
	pool *pgxpool.Pool
	cfg  config.DatabaseConfig
}

func NewAdmin(ctx context.Context, cfg config.DatabaseConfig) (*Admin, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GlobalDSN())
	if err != nil {
		return nil, fmt.Errorf("postgres.NewAdmin: parse config: %w", err)
	}
	// Provisioning is rare; two connections cover a create + concurrent resume.
	poolCfg.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.NewAdmin: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.NewAdmin: ping: %w", err)
	}

	return &Admin{pool: pool, cfg: cfg}, nil
}

func (a *Admin) Close() {
	a.pool.Close()
}

// CreateDatabase creates the physical database for a tenant. dbName must be
// a normalized tenant identifier; it is quoted defensively anyway since
// database names cannot be bound as statement parameters. A duplicate
// database maps to domain.ErrConflict so a resumed provisioning run can
// tolerate it.
func (a *Admin) CreateDatabase(ctx context.Context, dbName string) error {
	if _, err := domain.NormalizeTenantID(dbName); err != nil {
		return fmt.Errorf("admin.CreateDatabase: %w", err)
	}

	_, err := a.pool.Exec(ctx, `CREATE DATABASE `+pgx.Identifier{dbName}.Sanitize())
	if pgErrCode(err) == pgCodeDuplicateDatabase {
		return fmt.Errorf("admin.CreateDatabase: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("admin.CreateDatabase: %w", err)
	}

	return nil
}

// ApplyTenantSchema connects to one tenant database and creates the tenant
// tables in a single transaction. It is the shared path for provisioning and
// for migrating an existing tenant, so the two cannot drift apart.
func (a *Admin) ApplyTenantSchema(ctx context.Context, dbName string) error {
	id, err := domain.NormalizeTenantID(dbName)
	if err != nil {
		return fmt.Errorf("admin.ApplyTenantSchema: %w", err)
	}

	pool, err := pgxpool.New(ctx, a.cfg.TenantDSN(id))
	if err != nil {
		return fmt.Errorf("admin.ApplyTenantSchema: connect: %w", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("admin.ApplyTenantSchema: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range tenantTableDDL {
		_, err = tx.Exec(ctx, stmt)
		if err != nil {
			return fmt.Errorf("admin.ApplyTenantSchema: %w", err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("admin.ApplyTenantSchema: commit: %w", err)
	}

	return nil
}
