package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/flowmasterhq/flowmaster/internal/domain"
	"github.com/flowmasterhq/flowmaster/internal/server/middleware"
)

type CreatePermissionInput struct {
	Body struct {
		Code        string `json:"code" minLength:"1" maxLength:"128" doc:"Permission code, unique per tenant"`
		Description string `json:"description,omitempty" maxLength:"512"`
	}
}

type PermissionOutput struct {
	Body *domain.Permission
}

type PermissionIDInput struct {
	ID uuid.UUID `path:"id" doc:"Permission identifier"`
}

type UpdatePermissionInput struct {
	ID   uuid.UUID `path:"id" doc:"Permission identifier"`
	Body struct {
		Code        string `json:"code" minLength:"1" maxLength:"128"`
		Description string `json:"description,omitempty" maxLength:"512"`
	}
}

type ListPermissionsOutput struct {
	Body []*domain.Permission
}

func RegisterPermissionRoutes(api huma.API, resolver TenantResolver) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-permission",
		Method:        http.MethodPost,
		Path:          "/permissions",
		Summary:       "Create a permission",
		Tags:          []string{"Permissions"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreatePermissionInput) (*PermissionOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		actor, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		p := &domain.Permission{
			ID:          uuid.New(),
			Code:        input.Body.Code,
			Description: input.Body.Description,
			IsActive:    true,
			CreatedAt:   time.Now().UTC(),
			CreatedBy:   actor,
		}
		if err := ts.Permissions().Create(ctx, p); err != nil {
			return nil, mapError(err, "permission code already in use")
		}

		created, err := ts.Permissions().GetByID(ctx, p.ID)
		if err != nil {
			return nil, mapError(err, "permission not found after create")
		}

		return &PermissionOutput{Body: created}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-permission",
		Method:      http.MethodGet,
		Path:        "/permissions/{id}",
		Summary:     "Get a permission by id",
		Tags:        []string{"Permissions"},
	}, func(ctx context.Context, input *PermissionIDInput) (*PermissionOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		p, err := ts.Permissions().GetByID(ctx, input.ID)
		if err != nil {
			return nil, mapError(err, "permission not found")
		}

		return &PermissionOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-permission",
		Method:      http.MethodPut,
		Path:        "/permissions/{id}",
		Summary:     "Update a permission",
		Tags:        []string{"Permissions"},
	}, func(ctx context.Context, input *UpdatePermissionInput) (*PermissionOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		actor, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		p := &domain.Permission{
			ID:          input.ID,
			Code:        input.Body.Code,
			Description: input.Body.Description,
			ModifiedBy:  &actor,
		}
		if err := ts.Permissions().Update(ctx, p); err != nil {
			return nil, mapError(err, "permission not found")
		}

		updated, err := ts.Permissions().GetByID(ctx, input.ID)
		if err != nil {
			return nil, mapError(err, "permission not found")
		}

		return &PermissionOutput{Body: updated}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-permission",
		Method:        http.MethodDelete,
		Path:          "/permissions/{id}",
		Summary:       "Delete a permission",
		Tags:          []string{"Permissions"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *PermissionIDInput) (*struct{}, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		if err := ts.Permissions().Delete(ctx, input.ID); err != nil {
			return nil, mapError(err, "permission not found")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-permissions",
		Method:      http.MethodGet,
		Path:        "/permissions",
		Summary:     "List permissions",
		Tags:        []string{"Permissions"},
	}, func(ctx context.Context, _ *struct{}) (*ListPermissionsOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		perms, err := ts.Permissions().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list permissions", err)
		}

		return &ListPermissionsOutput{Body: perms}, nil
	})
}
