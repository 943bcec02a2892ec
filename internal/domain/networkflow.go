package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NetworkFlow is a piping network diagram uploaded by a tenant user. FlowURL
// points at the stored file in object storage.
type NetworkFlow struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	FlowURL    string     `json:"flow_url" db:"flow_url"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	CreatedBy  uuid.UUID  `json:"created_by" db:"created_by"`
	ModifiedAt *time.Time `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy *uuid.UUID `json:"modified_by,omitempty" db:"modified_by"`
}

type NetworkFlowRepository interface {
	Create(ctx context.Context, f *NetworkFlow) error
	GetByID(ctx context.Context, id uuid.UUID) (*NetworkFlow, error)
	Update(ctx context.Context, f *NetworkFlow) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]*NetworkFlow, error)
}
