package v1_test

import (
	"context"
	"io"

	"github.com/google/uuid"

	v1 "github.com/flowmasterhq/flowmaster/internal/api/v1"
	"github.com/flowmasterhq/flowmaster/internal/domain"
	"github.com/flowmasterhq/flowmaster/internal/server/middleware"
	"github.com/flowmasterhq/flowmaster/internal/storage"
)

// ---------------------------------------------------------------------------
// Context helpers — inject tenant/user/role into context for DoCtx
// ---------------------------------------------------------------------------

func fixedUserID() uuid.UUID {
	return uuid.MustParse("5f1b2a48-9c21-4a8f-bb7e-07f3a9c2d101")
}

func userCtx(tenantID string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyTenantID, tenantID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, fixedUserID())
	return ctx
}

func adminCtx(tenantID string) context.Context {
	ctx := userCtx(tenantID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserRole, "admin")
	return ctx
}

// ---------------------------------------------------------------------------
// Mock DataStore (global database)
// ---------------------------------------------------------------------------

type mockDataStore struct {
	tenants    domain.TenantRepository
	pipes      domain.MasterDataRepository[domain.Pipe]
	fittings   domain.MasterDataRepository[domain.Fitting]
	gases      domain.MasterDataRepository[domain.Gas]
	liquids    domain.MasterDataRepository[domain.Liquid]
	units      domain.MasterDataRepository[domain.Unit]
	components domain.MasterDataRepository[domain.Component]
}

func (m *mockDataStore) Tenants() domain.TenantRepository { return m.tenants }

func (m *mockDataStore) Pipes() domain.MasterDataRepository[domain.Pipe] {
	if m.pipes == nil {
		return &mockMasterRepo[domain.Pipe]{}
	}
	return m.pipes
}

func (m *mockDataStore) Fittings() domain.MasterDataRepository[domain.Fitting] {
	if m.fittings == nil {
		return &mockMasterRepo[domain.Fitting]{}
	}
	return m.fittings
}

func (m *mockDataStore) Gases() domain.MasterDataRepository[domain.Gas] {
	if m.gases == nil {
		return &mockMasterRepo[domain.Gas]{}
	}
	return m.gases
}

func (m *mockDataStore) Liquids() domain.MasterDataRepository[domain.Liquid] {
	if m.liquids == nil {
		return &mockMasterRepo[domain.Liquid]{}
	}
	return m.liquids
}

func (m *mockDataStore) Units() domain.MasterDataRepository[domain.Unit] {
	if m.units == nil {
		return &mockMasterRepo[domain.Unit]{}
	}
	return m.units
}

func (m *mockDataStore) Components() domain.MasterDataRepository[domain.Component] {
	if m.components == nil {
		return &mockMasterRepo[domain.Component]{}
	}
	return m.components
}

// ---------------------------------------------------------------------------
// Mock TenantRepository
// ---------------------------------------------------------------------------

type mockTenantRepo struct {
	createFunc        func(ctx context.Context, t *domain.Tenant) error
	getByTenantIDFunc func(ctx context.Context, tenantID string) (*domain.Tenant, error)
	updateStatusFunc  func(ctx context.Context, tenantID string, status domain.TenantStatus) error
	listFunc          func(ctx context.Context) ([]*domain.Tenant, error)
}

func (m *mockTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	return m.createFunc(ctx, t)
}

func (m *mockTenantRepo) GetByTenantID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return m.getByTenantIDFunc(ctx, tenantID)
}

func (m *mockTenantRepo) UpdateStatus(ctx context.Context, tenantID string, status domain.TenantStatus) error {
	return m.updateStatusFunc(ctx, tenantID, status)
}

func (m *mockTenantRepo) List(ctx context.Context) ([]*domain.Tenant, error) {
	return m.listFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock MasterDataRepository
// ---------------------------------------------------------------------------

type mockMasterRepo[T any] struct {
	listFunc      func(ctx context.Context) ([]*T, error)
	getByNameFunc func(ctx context.Context, name string) (*T, error)
	updateFunc    func(ctx context.Context, name string, row *T, actor string) (*T, error)
	deleteFunc    func(ctx context.Context, name string) error
}

func (m *mockMasterRepo[T]) List(ctx context.Context) ([]*T, error) {
	return m.listFunc(ctx)
}

func (m *mockMasterRepo[T]) GetByName(ctx context.Context, name string) (*T, error) {
	return m.getByNameFunc(ctx, name)
}

func (m *mockMasterRepo[T]) Update(ctx context.Context, name string, row *T, actor string) (*T, error) {
	return m.updateFunc(ctx, name, row, actor)
}

func (m *mockMasterRepo[T]) Delete(ctx context.Context, name string) error {
	return m.deleteFunc(ctx, name)
}

// ---------------------------------------------------------------------------
// Mock TenantData and TenantResolver
// ---------------------------------------------------------------------------

type mockTenantData struct {
	users        domain.UserRepository
	roles        domain.RoleRepository
	permissions  domain.PermissionRepository
	rolePerms    domain.RolePermissionRepository
	networkFlows domain.NetworkFlowRepository
}

func (m *mockTenantData) Users() domain.UserRepository                     { return m.users }
func (m *mockTenantData) Roles() domain.RoleRepository                     { return m.roles }
func (m *mockTenantData) Permissions() domain.PermissionRepository         { return m.permissions }
func (m *mockTenantData) RolePermissions() domain.RolePermissionRepository { return m.rolePerms }
func (m *mockTenantData) NetworkFlows() domain.NetworkFlowRepository       { return m.networkFlows }

type mockResolver struct {
	resolveFunc func(ctx context.Context, tenantID string) (v1.TenantData, error)
}

func (m *mockResolver) Resolve(ctx context.Context, tenantID string) (v1.TenantData, error) {
	return m.resolveFunc(ctx, tenantID)
}

// fixedResolver always resolves to the given tenant data.
func fixedResolver(data v1.TenantData) *mockResolver {
	return &mockResolver{
		resolveFunc: func(_ context.Context, _ string) (v1.TenantData, error) {
			return data, nil
		},
	}
}

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFunc     func(ctx context.Context, u *domain.User) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	updateFunc     func(ctx context.Context, u *domain.User) error
	deactivateFunc func(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
	listActiveFunc func(ctx context.Context) ([]*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.updateFunc(ctx, u)
}

func (m *mockUserRepo) Deactivate(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	return m.deactivateFunc(ctx, id, actor)
}

func (m *mockUserRepo) ListActive(ctx context.Context) ([]*domain.User, error) {
	return m.listActiveFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock RoleRepository
// ---------------------------------------------------------------------------

type mockRoleRepo struct {
	createFunc     func(ctx context.Context, r *domain.Role) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	updateFunc     func(ctx context.Context, r *domain.Role) error
	deactivateFunc func(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
	listActiveFunc func(ctx context.Context) ([]*domain.Role, error)
}

func (m *mockRoleRepo) Create(ctx context.Context, r *domain.Role) error {
	return m.createFunc(ctx, r)
}

func (m *mockRoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRoleRepo) Update(ctx context.Context, r *domain.Role) error {
	return m.updateFunc(ctx, r)
}

func (m *mockRoleRepo) Deactivate(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	return m.deactivateFunc(ctx, id, actor)
}

func (m *mockRoleRepo) ListActive(ctx context.Context) ([]*domain.Role, error) {
	return m.listActiveFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock PermissionRepository
// ---------------------------------------------------------------------------

type mockPermissionRepo struct {
	createFunc  func(ctx context.Context, p *domain.Permission) error
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Permission, error)
	updateFunc  func(ctx context.Context, p *domain.Permission) error
	deleteFunc  func(ctx context.Context, id uuid.UUID) error
	listFunc    func(ctx context.Context) ([]*domain.Permission, error)
}

func (m *mockPermissionRepo) Create(ctx context.Context, p *domain.Permission) error {
	return m.createFunc(ctx, p)
}

func (m *mockPermissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Permission, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockPermissionRepo) Update(ctx context.Context, p *domain.Permission) error {
	return m.updateFunc(ctx, p)
}

func (m *mockPermissionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockPermissionRepo) List(ctx context.Context) ([]*domain.Permission, error) {
	return m.listFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock RolePermissionRepository
// ---------------------------------------------------------------------------

type mockRolePermissionRepo struct {
	assignFunc     func(ctx context.Context, rp *domain.RolePermission) error
	removeFunc     func(ctx context.Context, id uuid.UUID) error
	listByRoleFunc func(ctx context.Context, roleID uuid.UUID) ([]*domain.RolePermission, error)
}

func (m *mockRolePermissionRepo) Assign(ctx context.Context, rp *domain.RolePermission) error {
	return m.assignFunc(ctx, rp)
}

func (m *mockRolePermissionRepo) Remove(ctx context.Context, id uuid.UUID) error {
	return m.removeFunc(ctx, id)
}

func (m *mockRolePermissionRepo) ListByRole(ctx context.Context, roleID uuid.UUID) ([]*domain.RolePermission, error) {
	return m.listByRoleFunc(ctx, roleID)
}

// ---------------------------------------------------------------------------
// Mock NetworkFlowRepository
// ---------------------------------------------------------------------------

type mockNetworkFlowRepo struct {
	createFunc     func(ctx context.Context, f *domain.NetworkFlow) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.NetworkFlow, error)
	updateFunc     func(ctx context.Context, f *domain.NetworkFlow) error
	deleteFunc     func(ctx context.Context, id uuid.UUID) error
	listActiveFunc func(ctx context.Context) ([]*domain.NetworkFlow, error)
}

func (m *mockNetworkFlowRepo) Create(ctx context.Context, f *domain.NetworkFlow) error {
	return m.createFunc(ctx, f)
}

func (m *mockNetworkFlowRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.NetworkFlow, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockNetworkFlowRepo) Update(ctx context.Context, f *domain.NetworkFlow) error {
	return m.updateFunc(ctx, f)
}

func (m *mockNetworkFlowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockNetworkFlowRepo) ListActive(ctx context.Context) ([]*domain.NetworkFlow, error) {
	return m.listActiveFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock TenantProvisioner
// ---------------------------------------------------------------------------

type mockProvisioner struct {
	provisionFunc func(ctx context.Context, tenantID, companyName string, logo *storage.Upload, actor uuid.UUID) (*domain.Tenant, error)
}

func (m *mockProvisioner) Provision(ctx context.Context, tenantID, companyName string, logo *storage.Upload, actor uuid.UUID) (*domain.Tenant, error) {
	return m.provisionFunc(ctx, tenantID, companyName, logo, actor)
}

// ---------------------------------------------------------------------------
// Mock ObjectStore
// ---------------------------------------------------------------------------

type mockObjectStore struct {
	putFunc func(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

func (m *mockObjectStore) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	return m.putFunc(ctx, key, body, contentType)
}
