package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/flowmasterhq/flowmaster/internal/domain"
	"github.com/flowmasterhq/flowmaster/internal/storage"
)

// DataStore abstracts the global-database repositories for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Tenants() domain.TenantRepository
	Pipes() domain.MasterDataRepository[domain.Pipe]
	Fittings() domain.MasterDataRepository[domain.Fitting]
	Gases() domain.MasterDataRepository[domain.Gas]
	Liquids() domain.MasterDataRepository[domain.Liquid]
	Units() domain.MasterDataRepository[domain.Unit]
	Components() domain.MasterDataRepository[domain.Component]
}

// TenantData abstracts the per-tenant repositories. *postgres.TenantStore
// satisfies this interface.
type TenantData interface {
	Users() domain.UserRepository
	Roles() domain.RoleRepository
	Permissions() domain.PermissionRepository
	RolePermissions() domain.RolePermissionRepository
	NetworkFlows() domain.NetworkFlowRepository
}

// TenantResolver maps a tenant identifier from the token claims to that
// tenant's database. *postgres.TenantPools satisfies this interface via the
// server's adapter.
type TenantResolver interface {
	Resolve(ctx context.Context, tenantID string) (TenantData, error)
}

// TenantProvisioner abstracts the provisioning saga for handler testing.
// *provision.Service satisfies this interface.
type TenantProvisioner interface {
	Provision(ctx context.Context, tenantID, companyName string, logo *storage.Upload, actor uuid.UUID) (*domain.Tenant, error)
}
