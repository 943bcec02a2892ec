package server

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/flowmasterhq/flowmaster/internal/api/v1"
	"github.com/flowmasterhq/flowmaster/internal/provision"
	"github.com/flowmasterhq/flowmaster/internal/storage"
	"github.com/flowmasterhq/flowmaster/internal/store/postgres"
)

// tenantResolver adapts *postgres.TenantPools to the handler-level resolver
// interface so handler tests can substitute a mock.
type tenantResolver struct {
	pools *postgres.TenantPools
}

func (r tenantResolver) Resolve(ctx context.Context, tenantID string) (v1.TenantData, error) {
	ts, err := r.pools.Resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func registerGlobalRoutes(api huma.API, store *postgres.Store, provisioner *provision.Service) {
	v1.RegisterTenantRoutes(api, store, provisioner)
	v1.RegisterMasterDataRoutes(api, store)
}

func registerTenantRoutes(api huma.API, resolver v1.TenantResolver, objectStore storage.ObjectStore) {
	v1.RegisterUserRoutes(api, resolver)
	v1.RegisterRoleRoutes(api, resolver)
	v1.RegisterPermissionRoutes(api, resolver)
	v1.RegisterRolePermissionRoutes(api, resolver)
	v1.RegisterNetworkFlowRoutes(api, resolver, objectStore)
}
