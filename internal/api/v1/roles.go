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

type CreateRoleInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"128" doc:"Role name, unique per tenant"`
	}
}

type RoleOutput struct {
	Body *domain.Role
}

type RoleIDInput struct {
	ID uuid.UUID `path:"id" doc:"Role identifier"`
}

type UpdateRoleInput struct {
	ID   uuid.UUID `path:"id" doc:"Role identifier"`
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"128"`
	}
}

type ListRolesOutput struct {
	Body []*domain.Role
}

func RegisterRoleRoutes(api huma.API, resolver TenantResolver) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-role",
		Method:        http.MethodPost,
		Path:          "/roles",
		Summary:       "Create a role",
		Tags:          []string{"Roles"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateRoleInput) (*RoleOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		actor, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		r := &domain.Role{
			ID:        uuid.New(),
			Name:      input.Body.Name,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
			CreatedBy: actor,
		}
		if err := ts.Roles().Create(ctx, r); err != nil {
			return nil, mapError(err, "role name already in use")
		}

		created, err := ts.Roles().GetByID(ctx, r.ID)
		if err != nil {
			return nil, mapError(err, "role not found after create")
		}

		return &RoleOutput{Body: created}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-role",
		Method:      http.MethodGet,
		Path:        "/roles/{id}",
		Summary:     "Get a role by id",
		Tags:        []string{"Roles"},
	}, func(ctx context.Context, input *RoleIDInput) (*RoleOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		r, err := ts.Roles().GetByID(ctx, input.ID)
		if err != nil {
			return nil, mapError(err, "role not found")
		}

		return &RoleOutput{Body: r}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-role",
		Method:      http.MethodPut,
		Path:        "/roles/{id}",
		Summary:     "Rename a role",
		Tags:        []string{"Roles"},
	}, func(ctx context.Context, input *UpdateRoleInput) (*RoleOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		actor, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		r := &domain.Role{
			ID:         input.ID,
			Name:       input.Body.Name,
			ModifiedBy: &actor,
		}
		if err := ts.Roles().Update(ctx, r); err != nil {
			return nil, mapError(err, "role not found")
		}

		updated, err := ts.Roles().GetByID(ctx, input.ID)
		if err != nil {
			return nil, mapError(err, "role not found")
		}

		return &RoleOutput{Body: updated}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "deactivate-role",
		Method:        http.MethodDelete,
		Path:          "/roles/{id}",
		Summary:       "Deactivate a role",
		Tags:          []string{"Roles"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *RoleIDInput) (*struct{}, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		actor, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		if err := ts.Roles().Deactivate(ctx, input.ID, actor); err != nil {
			return nil, mapError(err, "role not found")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-roles",
		Method:      http.MethodGet,
		Path:        "/roles",
		Summary:     "List active roles",
		Tags:        []string{"Roles"},
	}, func(ctx context.Context, _ *struct{}) (*ListRolesOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		roles, err := ts.Roles().ListActive(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list roles", err)
		}

		return &ListRolesOutput{Body: roles}, nil
	})
}
