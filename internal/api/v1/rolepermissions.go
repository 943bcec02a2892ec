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

type AssignPermissionInput struct {
	RoleID uuid.UUID `path:"roleID" doc:"Role identifier"`
	Body   struct {
		PermissionID uuid.UUID `json:"permission_id" doc:"Permission to grant"`
	}
}

type RolePermissionOutput struct {
	Body *domain.RolePermission
}

type RemovePermissionInput struct {
	RoleID uuid.UUID `path:"roleID" doc:"Role identifier"`
	ID     uuid.UUID `path:"id" doc:"Assignment identifier"`
}

type ListRolePermissionsInput struct {
	RoleID uuid.UUID `path:"roleID" doc:"Role identifier"`
}

type ListRolePermissionsOutput struct {
	Body []*domain.RolePermission
}

func RegisterRolePermissionRoutes(api huma.API, resolver TenantResolver) {
	huma.Register(api, huma.Operation{
		OperationID:   "assign-role-permission",
		Method:        http.MethodPost,
		Path:          "/roles/{roleID}/permissions",
		Summary:       "Grant a permission to a role",
		Tags:          []string{"Roles"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *AssignPermissionInput) (*RolePermissionOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		actor, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		rp := &domain.RolePermission{
			ID:           uuid.New(),
			RoleID:       input.RoleID,
			PermissionID: input.Body.PermissionID,
			CreatedAt:    time.Now().UTC(),
			CreatedBy:    actor,
		}
		if err := ts.RolePermissions().Assign(ctx, rp); err != nil {
			return nil, mapError(err, "permission already granted to role")
		}

		return &RolePermissionOutput{Body: rp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "remove-role-permission",
		Method:        http.MethodDelete,
		Path:          "/roles/{roleID}/permissions/{id}",
		Summary:       "Revoke a permission grant from a role",
		Tags:          []string{"Roles"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *RemovePermissionInput) (*struct{}, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		if err := ts.RolePermissions().Remove(ctx, input.ID); err != nil {
			return nil, mapError(err, "grant not found")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-role-permissions",
		Method:      http.MethodGet,
		Path:        "/roles/{roleID}/permissions",
		Summary:     "List the permissions granted to a role",
		Tags:        []string{"Roles"},
	}, func(ctx context.Context, input *ListRolePermissionsInput) (*ListRolePermissionsOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		grants, err := ts.RolePermissions().ListByRole(ctx, input.RoleID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list role permissions", err)
		}

		return &ListRolePermissionsOutput{Body: grants}, nil
	})
}
