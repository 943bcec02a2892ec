package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowmasterhq/flowmaster/internal/domain"
)

type PermissionRepo struct {
	pool *pgxpool.Pool
}

func NewPermissionRepo(pool *pgxpool.Pool) *PermissionRepo {
	return &PermissionRepo{pool: pool}
}

func (r *PermissionRepo) Create(ctx context.Context, p *domain.Permission) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO permission (id, code, description, is_active, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Code, nilIfEmpty(p.Description), p.IsActive, p.CreatedAt, p.CreatedBy,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("permissionRepo.Create: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("permissionRepo.Create: %w", err)
	}

	return nil
}

func (r *PermissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Permission, error) {
	var p domain.Permission
	var description *string

	err := r.pool.QueryRow(ctx,
		`SELECT id, code, description, is_active, created_at, created_by, modified_at, modified_by
		 FROM permission WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Code, &description, &p.IsActive,
		&p.CreatedAt, &p.CreatedBy, &p.ModifiedAt, &p.ModifiedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("permissionRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("permissionRepo.GetByID: %w", err)
	}

	p.Description = derefStr(description)

	return &p, nil
}

func (r *PermissionRepo) Update(ctx context.Context, p *domain.Permission) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE permission SET code = $1, description = $2, modified_at = now(), modified_by = $3
		 WHERE id = $4`,
		p.Code, nilIfEmpty(p.Description), p.ModifiedBy, p.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("permissionRepo.Update: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("permissionRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("permissionRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

// Delete removes the row. Unlike user and role there is no soft-delete path
// for permissions.
func (r *PermissionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM permission WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("permissionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("permissionRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *PermissionRepo) List(ctx context.Context) ([]*domain.Permission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, description, is_active, created_at, created_by, modified_at, modified_by
		 FROM permission ORDER BY code
		 LIMIT 500`,
	)
	if err != nil {
		return nil, fmt.Errorf("permissionRepo.List: %w", err)
	}
	defer rows.Close()

	var perms []*domain.Permission
	for rows.Next() {
		var p domain.Permission
		var description *string

		err = rows.Scan(&p.ID, &p.Code, &description, &p.IsActive,
			&p.CreatedAt, &p.CreatedBy, &p.ModifiedAt, &p.ModifiedBy)
		if err != nil {
			return nil, fmt.Errorf("permissionRepo.List: scan: %w", err)
		}

		p.Description = derefStr(description)
		perms = append(perms, &p)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("permissionRepo.List: rows: %w", err)
	}

	return perms, nil
}
