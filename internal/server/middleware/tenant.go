package middleware

import "net/http"

// RequireTenant rejects requests whose token carried no tenant identifier.
// This is a caller/input error (the claim is missing), distinct from the 503
// returned later when the identifier is present but its database is not.
func RequireTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tid, ok := TenantIDFromContext(r.Context())
			if !ok || tid == "" {
				http.Error(w, `{"title":"Bad Request","status":400,"detail":"tenant identifier missing in token"}`, http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
