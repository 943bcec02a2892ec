package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowmasterhq/flowmaster/internal/domain"
)

type TenantRepo struct {
	pool *pgxpool.Pool
}

func NewTenantRepo(pool *pgxpool.Pool) *TenantRepo {
	return &TenantRepo{pool: pool}
}

// Create inserts the tenant record. A unique violation on tenant_id maps to
// domain.ErrConflict; this is the backstop for two provisioning requests
// racing past the uniqueness check.
func (r *TenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tenant (id, tenant_id, company_name, logo_url, status, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.TenantID, nilIfEmpty(t.CompanyName), nilIfEmpty(t.LogoURL),
		t.Status, t.CreatedAt, t.CreatedBy,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("tenantRepo.Create: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("tenantRepo.Create: %w", err)
	}

	return nil
}

func (r *TenantRepo) GetByTenantID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	var t domain.Tenant
	var companyName, logoURL *string

	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, company_name, logo_url, status, created_at, created_by, modified_at, modified_by
		 FROM tenant WHERE tenant_id = $1`,
		tenantID,
	).Scan(&t.ID, &t.TenantID, &companyName, &logoURL, &t.Status,
		&t.CreatedAt, &t.CreatedBy, &t.ModifiedAt, &t.ModifiedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tenantRepo.GetByTenantID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("tenantRepo.GetByTenantID: %w", err)
	}

	t.CompanyName = derefStr(companyName)
	t.LogoURL = derefStr(logoURL)

	return &t, nil
}

func (r *TenantRepo) UpdateStatus(ctx context.Context, tenantID string, status domain.TenantStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tenant SET status = $1, modified_at = now() WHERE tenant_id = $2`,
		status, tenantID,
	)
	if err != nil {
		return fmt.Errorf("tenantRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenantRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TenantRepo) List(ctx context.Context) ([]*domain.Tenant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, company_name, logo_url, status, created_at, created_by, modified_at, modified_by
		 FROM tenant ORDER BY created_at
		 LIMIT 500`,
	)
	if err != nil {
		return nil, fmt.Errorf("tenantRepo.List: %w", err)
	}
	defer rows.Close()

	var tenants []*domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		var companyName, logoURL *string

		err = rows.Scan(&t.ID, &t.TenantID, &companyName, &logoURL, &t.Status,
			&t.CreatedAt, &t.CreatedBy, &t.ModifiedAt, &t.ModifiedBy)
		if err != nil {
			return nil, fmt.Errorf("tenantRepo.List: scan: %w", err)
		}

		t.CompanyName = derefStr(companyName)
		t.LogoURL = derefStr(logoURL)
		tenants = append(tenants, &t)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("tenantRepo.List: rows: %w", err)
	}

	return tenants, nil
}
