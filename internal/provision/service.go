package provision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/flowmasterhq/flowmaster/internal/domain"
	"github.com/flowmasterhq/flowmaster/internal/storage"
)

// DatabaseAdmin issues the server-level provisioning statements.
// *postgres.Admin satisfies this interface.
type DatabaseAdmin interface {
	CreateDatabase(ctx context.Context, dbName string) error
	ApplyTenantSchema(ctx context.Context, dbName string) error
}

// Locker serializes provisioning per tenant identifier. *redis.Locker
// satisfies this interface.
type Locker interface {
	Acquire(ctx context.Context, tenantID string, ttl time.Duration) (func(), error)
}

// Service orchestrates tenant provisioning: global record, physical
// database, tenant schema. Each step persists a status so an interrupted run
// resumes from the first missing artifact instead of failing with a
// spurious conflict or leaving silent inconsistency.
type Service struct {
	tenants     domain.TenantRepository
	admin       DatabaseAdmin
	store       storage.ObjectStore // nil disables logo uploads
	locker      Locker              // nil disables the provisioning lease
	lockTTL     time.Duration
	stepTimeout time.Duration
}

func NewService(tenants domain.TenantRepository, admin DatabaseAdmin, store storage.ObjectStore, locker Locker, lockTTL, stepTimeout time.Duration) *Service {
	return &Service{
		tenants:     tenants,
		admin:       admin,
		store:       store,
		locker:      locker,
		lockTTL:     lockTTL,
		stepTimeout: stepTimeout,
	}
}

// Provision creates (or resumes creating) a tenant. The identifier is
// normalized before any check or side effect, so identifiers differing only
// in case name the same tenant. A tenant that already reached the ready
// state yields domain.ErrConflict.
func (s *Service) Provision(ctx context.Context, tenantID, companyName string, logo *storage.Upload, actor uuid.UUID) (*domain.Tenant, error) {
	id, err := domain.NormalizeTenantID(tenantID)
	if err != nil {
		return nil, fmt.Errorf("provision.Provision: %w", err)
	}

	if s.locker != nil {
		release, lockErr := s.locker.Acquire(ctx, id, s.lockTTL)
		if lockErr != nil {
			return nil, fmt.Errorf("provision.Provision: %w", lockErr)
		}
		defer release()
	}

	t, err := s.prepareRecord(ctx, id, companyName, logo, actor)
	if err != nil {
		return nil, err
	}

	if t.Status == domain.TenantStatusPending {
		err = s.createDatabase(ctx, id)
		if err != nil {
			return nil, err
		}
		err = s.advance(ctx, t, domain.TenantStatusDBCreated)
		if err != nil {
			return nil, err
		}
	}

	if t.Status == domain.TenantStatusDBCreated {
		err = s.applySchema(ctx, id)
		if err != nil {
			return nil, err
		}
		err = s.advance(ctx, t, domain.TenantStatusSchemaCreated)
		if err != nil {
			return nil, err
		}
	}

	if t.Status == domain.TenantStatusSchemaCreated {
		err = s.advance(ctx, t, domain.TenantStatusReady)
		if err != nil {
			return nil, err
		}
	}

	log.Info().Str("tenant_id", id).Msg("tenant provisioned")

	return t, nil
}

// prepareRecord runs the uniqueness check and inserts the global tenant row,
// or picks up an existing row that never reached ready. The check happens
// before any external side effect so a duplicate request leaves no orphaned
// upload or database behind.
func (s *Service) prepareRecord(ctx context.Context, id, companyName string, logo *storage.Upload, actor uuid.UUID) (*domain.Tenant, error) {
	existing, err := s.tenants.GetByTenantID(ctx, id)
	switch {
	case err == nil && existing.Status == domain.TenantStatusReady:
		return nil, fmt.Errorf("provision.Provision: tenant identifier %q in use: %w", id, domain.ErrConflict)
	case err == nil:
		if logo != nil {
			log.Warn().Str("tenant_id", id).Msg("resuming provisioning; supplied logo ignored")
		}
		log.Info().Str("tenant_id", id).Str("status", string(existing.Status)).Msg("resuming tenant provisioning")
		return existing, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("provision.Provision: %w", err)
	}

	logoURL := ""
	if logo != nil {
		if s.store == nil {
			return nil, errors.New("provision.Provision: logo upload unavailable: object storage not configured")
		}
		logoURL, err = s.store.Put(ctx, storage.TenantLogoKey(id, logo.Filename), logo.Body, logo.ContentType)
		if err != nil {
			return nil, fmt.Errorf("provision.Provision: upload logo: %w", err)
		}
	}

	t := &domain.Tenant{
		ID:          uuid.New(),
		TenantID:    id,
		CompanyName: companyName,
		LogoURL:     logoURL,
		Status:      domain.TenantStatusPending,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   actor,
	}

	// A concurrent request may have inserted between the check and here; the
	// unique constraint reports that as a conflict.
	err = s.tenants.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("provision.Provision: %w", err)
	}

	return t, nil
}

// createDatabase issues CREATE DATABASE under the step timeout. An existing
// database is tolerated: it means a previous run got that far before dying.
func (s *Service) createDatabase(ctx context.Context, id string) error {
	stepCtx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	err := s.admin.CreateDatabase(stepCtx, id)
	if err != nil && !errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("provision.Provision: create database: %w", err)
	}

	return nil
}

func (s *Service) applySchema(ctx context.Context, id string) error {
	stepCtx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	err := s.admin.ApplyTenantSchema(stepCtx, id)
	if err != nil {
		return fmt.Errorf("provision.Provision: apply schema: %w", err)
	}

	return nil
}

func (s *Service) advance(ctx context.Context, t *domain.Tenant, status domain.TenantStatus) error {
	err := s.tenants.UpdateStatus(ctx, t.TenantID, status)
	if err != nil {
		return fmt.Errorf("provision.Provision: advance to %s: %w", status, err)
	}
	t.Status = status

	return nil
}
