package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User lives in the tenant database. Its ID equals the subject identifier
// from the bearer token, so one identity maps to at most one row per tenant.
type User struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Email      string     `json:"email" db:"email"`
	RoleID     *uuid.UUID `json:"role_id,omitempty" db:"role_id"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	CreatedBy  uuid.UUID  `json:"created_by" db:"created_by"`
	ModifiedAt *time.Time `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy *uuid.UUID `json:"modified_by,omitempty" db:"modified_by"`
}

type Role struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	CreatedBy  uuid.UUID  `json:"created_by" db:"created_by"`
	ModifiedAt *time.Time `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy *uuid.UUID `json:"modified_by,omitempty" db:"modified_by"`
}

type Permission struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Code        string     `json:"code" db:"code"`
	Description string     `json:"description,omitempty" db:"description"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CreatedBy   uuid.UUID  `json:"created_by" db:"created_by"`
	ModifiedAt  *time.Time `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy  *uuid.UUID `json:"modified_by,omitempty" db:"modified_by"`
}

type RolePermission struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	RoleID       uuid.UUID  `json:"role_id" db:"role_id"`
	PermissionID uuid.UUID  `json:"permission_id" db:"permission_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	CreatedBy    uuid.UUID  `json:"created_by" db:"created_by"`
	ModifiedAt   *time.Time `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy   *uuid.UUID `json:"modified_by,omitempty" db:"modified_by"`
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Update changes the mutable fields (name, email, role assignment) and
	// stamps modified_at/modified_by. ID, creation audit fields and the
	// active flag are immutable through this path.
	Update(ctx context.Context, u *User) error
	Deactivate(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
	ListActive(ctx context.Context) ([]*User, error)
}

type RoleRepository interface {
	Create(ctx context.Context, r *Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*Role, error)
	Update(ctx context.Context, r *Role) error
	Deactivate(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
	ListActive(ctx context.Context) ([]*Role, error)
}

type PermissionRepository interface {
	Create(ctx context.Context, p *Permission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Permission, error)
	Update(ctx context.Context, p *Permission) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Permission, error)
}

type RolePermissionRepository interface {
	Assign(ctx context.Context, rp *RolePermission) error
	Remove(ctx context.Context, id uuid.UUID) error
	ListByRole(ctx context.Context, roleID uuid.UUID) ([]*RolePermission, error)
}
