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

type RoleRepo struct {
	pool *pgxpool.Pool
}

func NewRoleRepo(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

func (r *RoleRepo) Create(ctx context.Context, role *domain.Role) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO role (id, name, is_active, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5)`,
		role.ID, role.Name, role.IsActive, role.CreatedAt, role.CreatedBy,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("roleRepo.Create: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("roleRepo.Create: %w", err)
	}

	return nil
}

func (r *RoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	var role domain.Role

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, is_active, created_at, created_by, modified_at, modified_by
		 FROM role WHERE id = $1`,
		id,
	).Scan(&role.ID, &role.Name, &role.IsActive,
		&role.CreatedAt, &role.CreatedBy, &role.ModifiedAt, &role.ModifiedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("roleRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("roleRepo.GetByID: %w", err)
	}

	return &role, nil
}

func (r *RoleRepo) Update(ctx context.Context, role *domain.Role) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE role SET name = $1, modified_at = now(), modified_by = $2
		 WHERE id = $3`,
		role.Name, role.ModifiedBy, role.ID,
	)
	if err != nil {
		return fmt.Errorf("roleRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("roleRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *RoleRepo) Deactivate(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE role SET is_active = FALSE, modified_at = now(), modified_by = $1
		 WHERE id = $2`,
		actor, id,
	)
	if err != nil {
		return fmt.Errorf("roleRepo.Deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("roleRepo.Deactivate: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *RoleRepo) ListActive(ctx context.Context) ([]*domain.Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, is_active, created_at, created_by, modified_at, modified_by
		 FROM role WHERE is_active = TRUE ORDER BY created_at, id
		 LIMIT 500`,
	)
	if err != nil {
		return nil, fmt.Errorf("roleRepo.ListActive: %w", err)
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		var role domain.Role

		err = rows.Scan(&role.ID, &role.Name, &role.IsActive,
			&role.CreatedAt, &role.CreatedBy, &role.ModifiedAt, &role.ModifiedBy)
		if err != nil {
			return nil, fmt.Errorf("roleRepo.ListActive: scan: %w", err)
		}

		roles = append(roles, &role)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("roleRepo.ListActive: rows: %w", err)
	}

	return roles, nil
}
