package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/flowmasterhq/flowmaster/internal/domain"
	"github.com/flowmasterhq/flowmaster/internal/server/middleware"
)

// User rows live in the tenant database and are keyed by the token subject,
// so a caller can only ever create or modify their own row. The list endpoint
// is the one read that spans users.

type CreateUserInput struct {
	Body struct {
		Name   string     `json:"name" minLength:"1" maxLength:"256" doc:"Display name"`
		Email  string     `json:"email" format:"email" maxLength:"320" doc:"Email address, unique per tenant"`
		RoleID *uuid.UUID `json:"role_id,omitempty" doc:"Optional role assignment"`
	}
}

type UserOutput struct {
	Body *domain.User
}

type UpdateUserInput struct {
	Body struct {
		Name   string     `json:"name" minLength:"1" maxLength:"256"`
		Email  string     `json:"email" format:"email" maxLength:"320"`
		RoleID *uuid.UUID `json:"role_id,omitempty"`
	}
}

type ListUsersOutput struct {
	Body []*domain.User
}

func RegisterUserRoutes(api huma.API, resolver TenantResolver) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-user",
		Method:        http.MethodPost,
		Path:          "/users",
		Summary:       "Register the calling identity as a tenant user",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		// The unique constraint on email still backstops a race past this
		// check; it exists to give the common duplicate a clear message.
		_, err = ts.Users().GetByEmail(ctx, input.Body.Email)
		switch {
		case err == nil:
			return nil, huma.Error409Conflict("user with this email already exists")
		case !errors.Is(err, domain.ErrNotFound):
			return nil, huma.Error500InternalServerError("failed to look up user", err)
		}

		u := &domain.User{
			ID:        userID,
			Name:      input.Body.Name,
			Email:     input.Body.Email,
			RoleID:    input.Body.RoleID,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
			CreatedBy: userID,
		}
		if err := ts.Users().Create(ctx, u); err != nil {
			return nil, mapError(err, "user already exists")
		}

		created, err := ts.Users().GetByID(ctx, userID)
		if err != nil {
			return nil, mapError(err, "user not found after create")
		}

		return &UserOutput{Body: created}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-current-user",
		Method:      http.MethodGet,
		Path:        "/users/me",
		Summary:     "Get the calling user's profile",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, _ *struct{}) (*UserOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		u, err := ts.Users().GetByID(ctx, userID)
		if err != nil {
			return nil, mapError(err, "user not found")
		}

		return &UserOutput{Body: u}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-current-user",
		Method:      http.MethodPut,
		Path:        "/users/me",
		Summary:     "Update the calling user's profile",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		u := &domain.User{
			ID:         userID,
			Name:       input.Body.Name,
			Email:      input.Body.Email,
			RoleID:     input.Body.RoleID,
			ModifiedBy: &userID,
		}
		if err := ts.Users().Update(ctx, u); err != nil {
			return nil, mapError(err, "user not found")
		}

		updated, err := ts.Users().GetByID(ctx, userID)
		if err != nil {
			return nil, mapError(err, "user not found")
		}

		return &UserOutput{Body: updated}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "deactivate-current-user",
		Method:        http.MethodDelete,
		Path:          "/users/me",
		Summary:       "Deactivate the calling user",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		if err := ts.Users().Deactivate(ctx, userID, userID); err != nil {
			return nil, mapError(err, "user not found")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/users",
		Summary:     "List active users in the tenant",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		users, err := ts.Users().ListActive(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list users", err)
		}

		return &ListUsersOutput{Body: users}, nil
	})
}
