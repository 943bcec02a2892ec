package v1_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/flowmasterhq/flowmaster/internal/api/v1"
	"github.com/flowmasterhq/flowmaster/internal/domain"
)

func TestCreateRole(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		roles := &mockRoleRepo{
			createFunc: func(_ context.Context, r *domain.Role) error {
				assert.Equal(t, "operator", r.Name)
				assert.Equal(t, fixedUserID(), r.CreatedBy)
				assert.True(t, r.IsActive)
				return nil
			},
			getByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Role, error) {
				return &domain.Role{ID: id, Name: "operator", IsActive: true}, nil
			},
		}

		v1.RegisterRoleRoutes(api, fixedResolver(&mockTenantData{roles: roles}))

		resp := api.PostCtx(userCtx("acme"), "/roles", map[string]any{
			"name": "operator",
		})
		require.Equal(t, http.StatusCreated, resp.Code)

		var got domain.Role
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "operator", got.Name)
	})

	t.Run("duplicate_name", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		roles := &mockRoleRepo{
			createFunc: func(_ context.Context, _ *domain.Role) error {
				return fmt.Errorf("roleRepo.Create: %w", domain.ErrConflict)
			},
		}

		v1.RegisterRoleRoutes(api, fixedResolver(&mockTenantData{roles: roles}))

		resp := api.PostCtx(userCtx("acme"), "/roles", map[string]any{
			"name": "operator",
		})
		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestDeactivateRole(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	roleID := uuid.New()
	roles := &mockRoleRepo{
		deactivateFunc: func(_ context.Context, id uuid.UUID, actor uuid.UUID) error {
			assert.Equal(t, roleID, id)
			assert.Equal(t, fixedUserID(), actor)
			return nil
		},
	}

	v1.RegisterRoleRoutes(api, fixedResolver(&mockTenantData{roles: roles}))

	resp := api.DeleteCtx(userCtx("acme"), "/roles/"+roleID.String())
	require.Equal(t, http.StatusNoContent, resp.Code)
}

func TestAssignRolePermission(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		roleID := uuid.New()
		permID := uuid.New()
		rolePerms := &mockRolePermissionRepo{
			assignFunc: func(_ context.Context, rp *domain.RolePermission) error {
				assert.Equal(t, roleID, rp.RoleID)
				assert.Equal(t, permID, rp.PermissionID)
				assert.Equal(t, fixedUserID(), rp.CreatedBy)
				return nil
			},
		}

		v1.RegisterRolePermissionRoutes(api, fixedResolver(&mockTenantData{rolePerms: rolePerms}))

		resp := api.PostCtx(userCtx("acme"), "/roles/"+roleID.String()+"/permissions", map[string]any{
			"permission_id": permID.String(),
		})
		require.Equal(t, http.StatusCreated, resp.Code)
	})

	t.Run("already_granted", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		rolePerms := &mockRolePermissionRepo{
			assignFunc: func(_ context.Context, _ *domain.RolePermission) error {
				return fmt.Errorf("rolePermissionRepo.Assign: %w", domain.ErrConflict)
			},
		}

		v1.RegisterRolePermissionRoutes(api, fixedResolver(&mockTenantData{rolePerms: rolePerms}))

		resp := api.PostCtx(userCtx("acme"), "/roles/"+uuid.NewString()+"/permissions", map[string]any{
			"permission_id": uuid.NewString(),
		})
		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestListRolePermissions(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	roleID := uuid.New()
	rolePerms := &mockRolePermissionRepo{
		listByRoleFunc: func(_ context.Context, id uuid.UUID) ([]*domain.RolePermission, error) {
			assert.Equal(t, roleID, id)
			return []*domain.RolePermission{
				{ID: uuid.New(), RoleID: roleID, PermissionID: uuid.New()},
			}, nil
		},
	}

	v1.RegisterRolePermissionRoutes(api, fixedResolver(&mockTenantData{rolePerms: rolePerms}))

	resp := api.GetCtx(userCtx("acme"), "/roles/"+roleID.String()+"/permissions")
	require.Equal(t, http.StatusOK, resp.Code)

	var got []*domain.RolePermission
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got, 1)
}
