package v1

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/flowmasterhq/flowmaster/internal/domain"
	"github.com/flowmasterhq/flowmaster/internal/server/middleware"
	"github.com/flowmasterhq/flowmaster/internal/storage"
)

type ProvisionTenantInput struct {
	RawBody multipart.Form
}

type ProvisionTenantOutput struct {
	Body *domain.Tenant
}

type ListTenantsOutput struct {
	Body []*domain.Tenant
}

func RegisterTenantRoutes(api huma.API, store DataStore, provisioner TenantProvisioner) {
	huma.Register(api, huma.Operation{
		OperationID: "provision-tenant",
		Method:      http.MethodPost,
		Path:        "/tenants",
		Summary:     "Provision a new tenant (record, database, schema)",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *ProvisionTenantInput) (*ProvisionTenantOutput, error) {
		tenantID := formValue(&input.RawBody, "tenant_id")
		if tenantID == "" {
			return nil, huma.Error400BadRequest("tenant_id is required")
		}
		companyName := formValue(&input.RawBody, "company_name")

		actor, _ := middleware.UserIDFromContext(ctx)

		var logo *storage.Upload
		if headers := input.RawBody.File["logo"]; len(headers) > 0 {
			file, err := headers[0].Open()
			if err != nil {
				return nil, huma.Error500InternalServerError("failed to read logo upload", err)
			}
			defer file.Close()
			logo = &storage.Upload{
				Filename:    headers[0].Filename,
				ContentType: headers[0].Header.Get("Content-Type"),
				Body:        file,
			}
		}

		t, err := provisioner.Provision(ctx, tenantID, companyName, logo, actor)
		if err != nil {
			return nil, mapError(err, "tenant identifier in use")
		}

		return &ProvisionTenantOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tenants",
		Method:      http.MethodGet,
		Path:        "/tenants",
		Summary:     "List all tenants",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, _ *struct{}) (*ListTenantsOutput, error) {
		role, ok := middleware.RoleFromContext(ctx)
		if !ok || role != "admin" {
			return nil, huma.Error403Forbidden("admin role required")
		}

		tenants, err := store.Tenants().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list tenants", err)
		}

		return &ListTenantsOutput{Body: tenants}, nil
	})
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
