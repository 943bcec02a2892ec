package v1

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/flowmasterhq/flowmaster/internal/domain"
	"github.com/flowmasterhq/flowmaster/internal/server/middleware"
)

// mapError translates domain sentinels into status-coded huma errors. msg is
// used for the conflict/not-found cases where the sentinel alone says too
// little; everything unrecognized becomes a 500 with the cause attached for
// diagnostics.
func mapError(err error, msg string) error {
	switch {
	case errors.Is(err, domain.ErrTenantIDMissing):
		return huma.Error400BadRequest("tenant identifier missing in token")
	case errors.Is(err, domain.ErrTenantIDInvalid):
		return huma.Error400BadRequest("tenant identifier contains unsafe characters")
	case errors.Is(err, domain.ErrTenantUnavailable):
		return huma.Error503ServiceUnavailable(err.Error())
	case errors.Is(err, domain.ErrConflict):
		return huma.Error409Conflict(msg)
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(msg)
	case errors.Is(err, domain.ErrUnauthorized):
		return huma.Error401Unauthorized(msg)
	case errors.Is(err, domain.ErrForbidden):
		return huma.Error403Forbidden(msg)
	default:
		return huma.Error500InternalServerError(msg, err)
	}
}

// resolveTenant obtains the per-tenant repositories for the request's tenant
// claim. The claim may be absent, invalid, or name a database that does not
// exist; each maps to its own error category.
func resolveTenant(ctx context.Context, resolver TenantResolver) (TenantData, error) {
	tenantID, _ := middleware.TenantIDFromContext(ctx)
	ts, err := resolver.Resolve(ctx, tenantID)
	if err != nil {
		return nil, mapError(err, "failed to resolve tenant database")
	}
	return ts, nil
}
