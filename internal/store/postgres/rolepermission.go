package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowmasterhq/flowmaster/internal/domain"
)

type RolePermissionRepo struct {
	pool *pgxpool.Pool
}

func NewRolePermissionRepo(pool *pgxpool.Pool) *RolePermissionRepo {
	return &RolePermissionRepo{pool: pool}
}

func (r *RolePermissionRepo) Assign(ctx context.Context, rp *domain.RolePermission) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO role_permission (id, role_id, permission_id, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5)`,
		rp.ID, rp.RoleID, rp.PermissionID, rp.CreatedAt, rp.CreatedBy,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("rolePermissionRepo.Assign: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("rolePermissionRepo.Assign: %w", err)
	}

	return nil
}

func (r *RolePermissionRepo) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM role_permission WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("rolePermissionRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rolePermissionRepo.Remove: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *RolePermissionRepo) ListByRole(ctx context.Context, roleID uuid.UUID) ([]*domain.RolePermission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, role_id, permission_id, created_at, created_by, modified_at, modified_by
		 FROM role_permission WHERE role_id = $1 ORDER BY created_at, id`,
		roleID,
	)
	if err != nil {
		return nil, fmt.Errorf("rolePermissionRepo.ListByRole: %w", err)
	}
	defer rows.Close()

	var rps []*domain.RolePermission
	for rows.Next() {
		var rp domain.RolePermission

		err = rows.Scan(&rp.ID, &rp.RoleID, &rp.PermissionID,
			&rp.CreatedAt, &rp.CreatedBy, &rp.ModifiedAt, &rp.ModifiedBy)
		if err != nil {
			return nil, fmt.Errorf("rolePermissionRepo.ListByRole: scan: %w", err)
		}

		rps = append(rps, &rp)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("rolePermissionRepo.ListByRole: rows: %w", err)
	}

	return rps, nil
}
