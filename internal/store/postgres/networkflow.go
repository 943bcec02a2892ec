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

type NetworkFlowRepo struct {
	pool *pgxpool.Pool
}

func NewNetworkFlowRepo(pool *pgxpool.Pool) *NetworkFlowRepo {
	return &NetworkFlowRepo{pool: pool}
}

func (r *NetworkFlowRepo) Create(ctx context.Context, f *domain.NetworkFlow) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO network_flow (id, name, flow_url, is_active, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.Name, nilIfEmpty(f.FlowURL), f.IsActive, f.CreatedAt, f.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("networkFlowRepo.Create: %w", err)
	}

	return nil
}

func (r *NetworkFlowRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.NetworkFlow, error) {
	var f domain.NetworkFlow
	var flowURL *string

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, flow_url, is_active, created_at, created_by, modified_at, modified_by
		 FROM network_flow WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.Name, &flowURL, &f.IsActive,
		&f.CreatedAt, &f.CreatedBy, &f.ModifiedAt, &f.ModifiedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("networkFlowRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("networkFlowRepo.GetByID: %w", err)
	}

	f.FlowURL = derefStr(flowURL)

	return &f, nil
}

func (r *NetworkFlowRepo) Update(ctx context.Context, f *domain.NetworkFlow) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE network_flow SET name = $1, is_active = $2, modified_at = now(), modified_by = $3
		 WHERE id = $4`,
		f.Name, f.IsActive, f.ModifiedBy, f.ID,
	)
	if err != nil {
		return fmt.Errorf("networkFlowRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("networkFlowRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *NetworkFlowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM network_flow WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("networkFlowRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("networkFlowRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *NetworkFlowRepo) ListActive(ctx context.Context) ([]*domain.NetworkFlow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, flow_url, is_active, created_at, created_by, modified_at, modified_by
		 FROM network_flow WHERE is_active = TRUE ORDER BY created_at, id
		 LIMIT 500`,
	)
	if err != nil {
		return nil, fmt.Errorf("networkFlowRepo.ListActive: %w", err)
	}
	defer rows.Close()

	var flows []*domain.NetworkFlow
	for rows.Next() {
		var f domain.NetworkFlow
		var flowURL *string

		err = rows.Scan(&f.ID, &f.Name, &flowURL, &f.IsActive,
			&f.CreatedAt, &f.CreatedBy, &f.ModifiedAt, &f.ModifiedBy)
		if err != nil {
			return nil, fmt.Errorf("networkFlowRepo.ListActive: scan: %w", err)
		}

		f.FlowURL = derefStr(flowURL)
		flows = append(flows, &f)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("networkFlowRepo.ListActive: rows: %w", err)
	}

	return flows, nil
}
