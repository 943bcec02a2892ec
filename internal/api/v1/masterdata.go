package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/flowmasterhq/flowmaster/internal/domain"
	"github.com/flowmasterhq/flowmaster/internal/server/middleware"
)

// Master data is shared across tenants and served from the global database.
// Rows are addressed by their natural key: name for most types, material for
// pipes and type for fittings. Reads are open to any authenticated user;
// mutations require the admin role.

type masterDataListOutput[T any] struct {
	Body []*T
}

type masterDataGetInput struct {
	Name string `path:"name" maxLength:"64" doc:"Natural key of the row"`
}

type masterDataGetOutput[T any] struct {
	Body *T
}

type masterDataUpdateInput[T any] struct {
	Name string `path:"name" maxLength:"64" doc:"Natural key of the row"`
	Body T
}

type masterDataDeleteInput struct {
	Name string `path:"name" maxLength:"64" doc:"Natural key of the row"`
}

func RegisterMasterDataRoutes(api huma.API, store DataStore) {
	registerMasterDataType(api, "pipe", store.Pipes())
	registerMasterDataType(api, "fitting", store.Fittings())
	registerMasterDataType(api, "gas", store.Gases())
	registerMasterDataType(api, "liquid", store.Liquids())
	registerMasterDataType(api, "unit", store.Units())
	registerMasterDataType(api, "component", store.Components())
}

func registerMasterDataType[T any](api huma.API, typeName string, repo domain.MasterDataRepository[T]) {
	huma.Register(api, huma.Operation{
		OperationID: "list-masterdata-" + typeName,
		Method:      http.MethodGet,
		Path:        "/masterdata/" + typeName,
		Summary:     fmt.Sprintf("List %s master data", typeName),
		Tags:        []string{"MasterData"},
	}, func(ctx context.Context, _ *struct{}) (*masterDataListOutput[T], error) {
		rows, err := repo.List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list "+typeName+" rows", err)
		}

		return &masterDataListOutput[T]{Body: rows}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-masterdata-" + typeName,
		Method:      http.MethodGet,
		Path:        "/masterdata/" + typeName + "/{name}",
		Summary:     fmt.Sprintf("Get one %s row by name", typeName),
		Tags:        []string{"MasterData"},
	}, func(ctx context.Context, input *masterDataGetInput) (*masterDataGetOutput[T], error) {
		row, err := repo.GetByName(ctx, input.Name)
		if err != nil {
			return nil, mapError(err, typeName+" not found")
		}

		return &masterDataGetOutput[T]{Body: row}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-masterdata-" + typeName,
		Method:      http.MethodPut,
		Path:        "/masterdata/" + typeName + "/{name}",
		Summary:     fmt.Sprintf("Update one %s row by name", typeName),
		Tags:        []string{"MasterData"},
	}, func(ctx context.Context, input *masterDataUpdateInput[T]) (*masterDataGetOutput[T], error) {
		role, ok := middleware.RoleFromContext(ctx)
		if !ok || role != "admin" {
			return nil, huma.Error403Forbidden("admin role required")
		}

		actor := ""
		if userID, found := middleware.UserIDFromContext(ctx); found {
			actor = userID.String()
		}

		row, err := repo.Update(ctx, input.Name, &input.Body, actor)
		if err != nil {
			return nil, mapError(err, typeName+" not found")
		}

		return &masterDataGetOutput[T]{Body: row}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-masterdata-" + typeName,
		Method:        http.MethodDelete,
		Path:          "/masterdata/" + typeName + "/{name}",
		Summary:       fmt.Sprintf("Delete one %s row by name", typeName),
		Tags:          []string{"MasterData"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *masterDataDeleteInput) (*struct{}, error) {
		role, ok := middleware.RoleFromContext(ctx)
		if !ok || role != "admin" {
			return nil, huma.Error403Forbidden("admin role required")
		}

		err := repo.Delete(ctx, input.Name)
		if err != nil {
			return nil, mapError(err, typeName+" not found")
		}

		return nil, nil
	})
}
