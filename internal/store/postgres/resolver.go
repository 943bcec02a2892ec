package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/flowmasterhq/flowmaster/internal/config"
	"github.com/flowmasterhq/flowmaster/internal/domain"
)

// TenantPools resolves tenant identifiers to per-tenant database stores.
// Pools are created on first use and cached for the process lifetime, keyed
// by the normalized identifier, so "Acme" and "acme" share one pool against
// one physical database. Creation pings the target so an absent or
// unreachable tenant database surfaces immediately as ErrTenantUnavailable
// instead of on the first query.
type TenantPools struct {
	cfg         config.DatabaseConfig
	pingTimeout time.Duration

	mu     sync.Mutex
	stores map[string]*TenantStore
}

func NewTenantPools(cfg config.DatabaseConfig, pingTimeout time.Duration) *TenantPools {
	return &TenantPools{
		cfg:         cfg,
		pingTimeout: pingTimeout,
		stores:      make(map[string]*TenantStore),
	}
}

// Resolve returns the store for one tenant. A missing identifier is a caller
// error (the claims mapping lacked the field), distinct from an identifier
// whose database does not exist.
func (p *TenantPools) Resolve(ctx context.Context, tenantID string) (*TenantStore, error) {
	id, err := domain.NormalizeTenantID(tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenantPools.Resolve: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if ts, ok := p.stores[id]; ok {
		return ts, nil
	}

	poolCfg, err := pgxpool.ParseConfig(p.cfg.TenantDSN(id))
	if err != nil {
		return nil, fmt.Errorf("tenantPools.Resolve: parse config: %w", err)
	}
	poolCfg.MaxConns = int32(p.cfg.MaxConns) //nolint:gosec // bounds checked in config.validate

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("tenantPools.Resolve: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, p.pingTimeout)
	defer cancel()

	err = pool.Ping(pingCtx)
	if err != nil {
		pool.Close()
		return nil, pingError(id, err)
	}

	ts := NewTenantStore(pool)
	p.stores[id] = ts
	log.Info().Str("tenant_id", id).Msg("tenant database pool created")

	return ts, nil
}

// pingError classifies a failed connectivity check. An invalid catalog name
// means the tenant database was never provisioned; anything else is treated
// as the server being unreachable. Both surface as ErrTenantUnavailable.
func pingError(id string, err error) error {
	if pgErrCode(err) == pgCodeInvalidCatalogName {
		return fmt.Errorf("tenantPools.Resolve: tenant database %q does not exist: %w",
			id, domain.ErrTenantUnavailable)
	}
	return fmt.Errorf("tenantPools.Resolve: tenant database %q is not reachable: %w",
		id, domain.ErrTenantUnavailable)
}

// CloseAll tears down every cached pool. Called at process shutdown.
func (p *TenantPools) CloseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, ts := range p.stores {
		ts.Close()
		delete(p.stores, id)
	}
}

// TenantStore bundles the repositories over one tenant database.
type TenantStore struct {
	pool         *pgxpool.Pool
	users        *UserRepo
	roles        *RoleRepo
	permissions  *PermissionRepo
	rolePerms    *RolePermissionRepo
	networkFlows *NetworkFlowRepo
}

func NewTenantStore(pool *pgxpool.Pool) *TenantStore {
	return &TenantStore{
		pool:         pool,
		users:        NewUserRepo(pool),
		roles:        NewRoleRepo(pool),
		permissions:  NewPermissionRepo(pool),
		rolePerms:    NewRolePermissionRepo(pool),
		networkFlows: NewNetworkFlowRepo(pool),
	}
}

func (s *TenantStore) Close() {
	s.pool.Close()
}

func (s *TenantStore) Users() domain.UserRepository                     { return s.users }
func (s *TenantStore) Roles() domain.RoleRepository                     { return s.roles }
func (s *TenantStore) Permissions() domain.PermissionRepository         { return s.permissions }
func (s *TenantStore) RolePermissions() domain.RolePermissionRepository { return s.rolePerms }
func (s *TenantStore) NetworkFlows() domain.NetworkFlowRepository       { return s.networkFlows }
