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

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO "user" (id, name, email, role_id, is_active, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, nilIfEmpty(u.Email), u.RoleID, u.IsActive, u.CreatedAt, u.CreatedBy,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("userRepo.Create: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("userRepo.Create: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	var email *string

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, role_id, is_active, created_at, created_by, modified_at, modified_by
		 FROM "user" WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &email, &u.RoleID, &u.IsActive,
		&u.CreatedAt, &u.CreatedBy, &u.ModifiedAt, &u.ModifiedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}

	u.Email = derefStr(email)

	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	var dbEmail *string

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, role_id, is_active, created_at, created_by, modified_at, modified_by
		 FROM "user" WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &dbEmail, &u.RoleID, &u.IsActive,
		&u.CreatedAt, &u.CreatedBy, &u.ModifiedAt, &u.ModifiedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}

	u.Email = derefStr(dbEmail)

	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE "user" SET name = $1, email = $2, role_id = $3, modified_at = now(), modified_by = $4
		 WHERE id = $5`,
		u.Name, nilIfEmpty(u.Email), u.RoleID, u.ModifiedBy, u.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("userRepo.Update: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

// Deactivate is the delete path: rows are flagged inactive, never removed.
func (r *UserRepo) Deactivate(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE "user" SET is_active = FALSE, modified_at = now(), modified_by = $1
		 WHERE id = $2`,
		actor, id,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.Deactivate: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepo) ListActive(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, role_id, is_active, created_at, created_by, modified_at, modified_by
		 FROM "user" WHERE is_active = TRUE ORDER BY created_at, id
		 LIMIT 500`,
	)
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListActive: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		var email *string

		err = rows.Scan(&u.ID, &u.Name, &email, &u.RoleID, &u.IsActive,
			&u.CreatedAt, &u.CreatedBy, &u.ModifiedAt, &u.ModifiedBy)
		if err != nil {
			return nil, fmt.Errorf("userRepo.ListActive: scan: %w", err)
		}

		u.Email = derefStr(email)
		users = append(users, &u)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListActive: rows: %w", err)
	}

	return users, nil
}
