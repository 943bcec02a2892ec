package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/flowmasterhq/flowmaster/internal/api/v1"
	"github.com/flowmasterhq/flowmaster/internal/domain"
	"github.com/flowmasterhq/flowmaster/internal/storage"
)

// multipartBody builds a multipart form with the given fields and an optional
// file part named "logo".
func multipartBody(t *testing.T, fields map[string]string, logoName string, logoContent []byte) (string, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if logoName != "" {
		part, err := w.CreateFormFile("logo", logoName)
		require.NoError(t, err)
		_, err = part.Write(logoContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return fmt.Sprintf("Content-Type: %s", w.FormDataContentType()), &buf
}

// ---------------------------------------------------------------------------
// POST /tenants
// ---------------------------------------------------------------------------

func TestProvisionTenant(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		provisioner := &mockProvisioner{
			provisionFunc: func(_ context.Context, tenantID, companyName string, logo *storage.Upload, actor uuid.UUID) (*domain.Tenant, error) {
				assert.Equal(t, "acme", tenantID)
				assert.Equal(t, "Acme Corp", companyName)
				assert.Equal(t, fixedUserID(), actor)
				require.NotNil(t, logo)
				assert.Equal(t, "logo.png", logo.Filename)
				return &domain.Tenant{
					ID:          uuid.New(),
					TenantID:    "acme",
					CompanyName: "Acme Corp",
					Status:      domain.TenantStatusReady,
					CreatedAt:   time.Now().UTC(),
					CreatedBy:   actor,
				}, nil
			},
		}

		v1.RegisterTenantRoutes(api, &mockDataStore{}, provisioner)

		header, body := multipartBody(t, map[string]string{
			"tenant_id":    "acme",
			"company_name": "Acme Corp",
		}, "logo.png", []byte("png-bytes"))

		resp := api.DoCtx(userCtx("acme"), http.MethodPost, "/tenants", header, body)
		require.Equal(t, http.StatusOK, resp.Code)

		var got domain.Tenant
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "acme", got.TenantID)
		assert.Equal(t, domain.TenantStatusReady, got.Status)
	})

	t.Run("missing_tenant_id", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		provisioner := &mockProvisioner{
			provisionFunc: func(_ context.Context, _, _ string, _ *storage.Upload, _ uuid.UUID) (*domain.Tenant, error) {
				t.Fatal("provisioner must not be called")
				return nil, nil
			},
		}

		v1.RegisterTenantRoutes(api, &mockDataStore{}, provisioner)

		header, body := multipartBody(t, map[string]string{
			"company_name": "Acme Corp",
		}, "", nil)

		resp := api.DoCtx(userCtx("acme"), http.MethodPost, "/tenants", header, body)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("identifier_in_use", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		provisioner := &mockProvisioner{
			provisionFunc: func(_ context.Context, _, _ string, _ *storage.Upload, _ uuid.UUID) (*domain.Tenant, error) {
				return nil, fmt.Errorf("provision.Provision: %w", domain.ErrConflict)
			},
		}

		v1.RegisterTenantRoutes(api, &mockDataStore{}, provisioner)

		header, body := multipartBody(t, map[string]string{
			"tenant_id": "acme",
		}, "", nil)

		resp := api.DoCtx(userCtx("acme"), http.MethodPost, "/tenants", header, body)
		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("invalid_identifier", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		provisioner := &mockProvisioner{
			provisionFunc: func(_ context.Context, _, _ string, _ *storage.Upload, _ uuid.UUID) (*domain.Tenant, error) {
				return nil, fmt.Errorf("provision.Provision: %w", domain.ErrTenantIDInvalid)
			},
		}

		v1.RegisterTenantRoutes(api, &mockDataStore{}, provisioner)

		header, body := multipartBody(t, map[string]string{
			"tenant_id": "Acme;DROP",
		}, "", nil)

		resp := api.DoCtx(userCtx(""), http.MethodPost, "/tenants", header, body)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// GET /tenants
// ---------------------------------------------------------------------------

func TestListTenants(t *testing.T) {
	t.Parallel()

	t.Run("admin_ok", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			tenants: &mockTenantRepo{
				listFunc: func(_ context.Context) ([]*domain.Tenant, error) {
					return []*domain.Tenant{
						{TenantID: "acme", Status: domain.TenantStatusReady},
						{TenantID: "globex", Status: domain.TenantStatusPending},
					}, nil
				},
			},
		}

		v1.RegisterTenantRoutes(api, store, &mockProvisioner{})

		resp := api.GetCtx(adminCtx("acme"), "/tenants")
		require.Equal(t, http.StatusOK, resp.Code)

		var got []*domain.Tenant
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got, 2)
		assert.Equal(t, "acme", got[0].TenantID)
	})

	t.Run("non_admin_forbidden", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterTenantRoutes(api, &mockDataStore{}, &mockProvisioner{})

		resp := api.GetCtx(userCtx("acme"), "/tenants")
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}
