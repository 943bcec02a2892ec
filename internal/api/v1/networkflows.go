package v1

import (
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/flowmasterhq/flowmaster/internal/domain"
	"github.com/flowmasterhq/flowmaster/internal/server/middleware"
	"github.com/flowmasterhq/flowmaster/internal/storage"
)

// Network flows pair a row in the tenant database with a file in object
// storage. Creation is multipart: a name field plus the flow file. When no
// object store is configured the upload is rejected up front rather than
// leaving a row without a file behind it.

type CreateNetworkFlowInput struct {
	RawBody multipart.Form
}

type NetworkFlowOutput struct {
	Body *domain.NetworkFlow
}

type NetworkFlowIDInput struct {
	ID uuid.UUID `path:"id" doc:"Network flow identifier"`
}

type UpdateNetworkFlowInput struct {
	ID   uuid.UUID `path:"id" doc:"Network flow identifier"`
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"256"`
	}
}

type ListNetworkFlowsOutput struct {
	Body []*domain.NetworkFlow
}

func RegisterNetworkFlowRoutes(api huma.API, resolver TenantResolver, store storage.ObjectStore) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-network-flow",
		Method:        http.MethodPost,
		Path:          "/network-flows",
		Summary:       "Upload a network flow diagram",
		Tags:          []string{"NetworkFlows"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateNetworkFlowInput) (*NetworkFlowOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		actor, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		name := formValue(&input.RawBody, "name")
		if name == "" {
			return nil, huma.Error400BadRequest("name is required")
		}

		headers := input.RawBody.File["file"]
		if len(headers) == 0 {
			return nil, huma.Error400BadRequest("file is required")
		}
		if store == nil {
			return nil, huma.Error503ServiceUnavailable("object storage is not configured")
		}

		file, err := headers[0].Open()
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to read flow upload", err)
		}
		defer file.Close()

		key := storage.NetworkFlowKey(actor.String(), headers[0].Filename)
		url, err := store.Put(ctx, key, file, headers[0].Header.Get("Content-Type"))
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to store flow file", err)
		}

		f := &domain.NetworkFlow{
			ID:        uuid.New(),
			Name:      name,
			FlowURL:   url,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
			CreatedBy: actor,
		}
		if err := ts.NetworkFlows().Create(ctx, f); err != nil {
			return nil, mapError(err, "failed to create network flow")
		}

		created, err := ts.NetworkFlows().GetByID(ctx, f.ID)
		if err != nil {
			return nil, mapError(err, "network flow not found after create")
		}

		return &NetworkFlowOutput{Body: created}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-network-flow",
		Method:      http.MethodGet,
		Path:        "/network-flows/{id}",
		Summary:     "Get a network flow by id",
		Tags:        []string{"NetworkFlows"},
	}, func(ctx context.Context, input *NetworkFlowIDInput) (*NetworkFlowOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		f, err := ts.NetworkFlows().GetByID(ctx, input.ID)
		if err != nil {
			return nil, mapError(err, "network flow not found")
		}

		return &NetworkFlowOutput{Body: f}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-network-flow",
		Method:      http.MethodPut,
		Path:        "/network-flows/{id}",
		Summary:     "Rename a network flow",
		Tags:        []string{"NetworkFlows"},
	}, func(ctx context.Context, input *UpdateNetworkFlowInput) (*NetworkFlowOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		actor, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		f := &domain.NetworkFlow{
			ID:         input.ID,
			Name:       input.Body.Name,
			ModifiedBy: &actor,
		}
		if err := ts.NetworkFlows().Update(ctx, f); err != nil {
			return nil, mapError(err, "network flow not found")
		}

		updated, err := ts.NetworkFlows().GetByID(ctx, input.ID)
		if err != nil {
			return nil, mapError(err, "network flow not found")
		}

		return &NetworkFlowOutput{Body: updated}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-network-flow",
		Method:        http.MethodDelete,
		Path:          "/network-flows/{id}",
		Summary:       "Delete a network flow",
		Tags:          []string{"NetworkFlows"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *NetworkFlowIDInput) (*struct{}, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		if err := ts.NetworkFlows().Delete(ctx, input.ID); err != nil {
			return nil, mapError(err, "network flow not found")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-network-flows",
		Method:      http.MethodGet,
		Path:        "/network-flows",
		Summary:     "List active network flows",
		Tags:        []string{"NetworkFlows"},
	}, func(ctx context.Context, _ *struct{}) (*ListNetworkFlowsOutput, error) {
		ts, err := resolveTenant(ctx, resolver)
		if err != nil {
			return nil, err
		}

		flows, err := ts.NetworkFlows().ListActive(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list network flows", err)
		}

		return &ListNetworkFlowsOutput{Body: flows}, nil
	})
}
