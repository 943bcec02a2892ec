package domain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TenantStatus tracks how far provisioning has progressed. The status is
// persisted after every step so an interrupted run can be resumed from the
// first missing artifact instead of failing with a spurious conflict.
type TenantStatus string

const (
	TenantStatusPending       TenantStatus = "pending"
	TenantStatusDBCreated     TenantStatus = "db_created"
	TenantStatusSchemaCreated TenantStatus = "schema_created"
	TenantStatusReady         TenantStatus = "ready"
)

// Tenant is an isolated customer organization. TenantID doubles as the name
// of the tenant's physical database, so it is restricted to a safe identifier
// character set and stored lower-cased.
type Tenant struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	TenantID    string       `json:"tenant_id" db:"tenant_id"`
	CompanyName string       `json:"company_name,omitempty" db:"company_name"`
	LogoURL     string       `json:"logo_url,omitempty" db:"logo_url"`
	Status      TenantStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	CreatedBy   uuid.UUID    `json:"created_by" db:"created_by"`
	ModifiedAt  *time.Time   `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy  *uuid.UUID   `json:"modified_by,omitempty" db:"modified_by"`
}

type TenantRepository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByTenantID(ctx context.Context, tenantID string) (*Tenant, error)
	UpdateStatus(ctx context.Context, tenantID string, status TenantStatus) error
	List(ctx context.Context) ([]*Tenant, error)
}

// tenantIDPattern matches identifiers that are safe to use verbatim as a
// PostgreSQL database name: lower-case letter first, then lower-case letters,
// digits or underscores, at most 63 bytes (the server's identifier limit).
var tenantIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// NormalizeTenantID case-folds and validates a tenant identifier. Every
// component that touches a tenant identifier must go through this before
// comparing, storing or connecting, so "Acme" and "acme" always name the
// same tenant and the same physical database.
func NormalizeTenantID(raw string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id == "" {
		return "", ErrTenantIDMissing
	}
	if !tenantIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrTenantIDInvalid, raw)
	}
	return id, nil
}
