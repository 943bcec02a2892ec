package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/flowmasterhq/flowmaster/internal/config"
	"github.com/flowmasterhq/flowmaster/internal/domain"
)

// Claims is the decoded token payload used to authorize and scope a request.
// TenantID may be empty; handlers that need a tenant database report that as
// an input error, not an authentication failure.
type Claims struct {
	TenantID string
	Subject  string
	Role     string
}

// tokenClaims maps the identity provider's claim names. The tenant and role
// claims use the provider's custom-attribute namespace.
type tokenClaims struct {
	jwt.RegisteredClaims
	TenantID string `json:"custom:tenant_id"`
	Role     string `json:"custom:role"`
}

// Verifier turns a raw bearer credential into a claims mapping.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// NewVerifier builds the verifier for the configured mode.
func NewVerifier(cfg config.AuthConfig) (Verifier, error) {
	switch cfg.Mode {
	case config.AuthModeVerify:
		return &HMACVerifier{secret: []byte(cfg.Secret)}, nil
	case config.AuthModeTrust:
		return &TrustVerifier{}, nil
	default:
		return nil, fmt.Errorf("auth.NewVerifier: unknown mode %q", cfg.Mode)
	}
}

// HMACVerifier enforces an HS256 signature and standard claim validation
// (expiry included). This is the production default.
type HMACVerifier struct {
	secret []byte
}

func (v *HMACVerifier) Verify(tokenStr string) (*Claims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("auth.HMACVerifier: %w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("auth.HMACVerifier: %w", domain.ErrUnauthorized)
	}

	return claims.mapped(), nil
}

// TrustVerifier decodes the payload without checking signature or expiry.
// It exists for non-production setups where an upstream gateway has already
// validated the token. The mode must be chosen explicitly and config.Load
// logs a warning when it is.
type TrustVerifier struct{}

func (v *TrustVerifier) Verify(tokenStr string) (*Claims, error) {
	claims := &tokenClaims{}
	parser := jwt.NewParser()
	_, _, err := parser.ParseUnverified(tokenStr, claims)
	if err != nil {
		return nil, fmt.Errorf("auth.TrustVerifier: %w: %v", domain.ErrUnauthorized, err)
	}

	return claims.mapped(), nil
}

func (c *tokenClaims) mapped() *Claims {
	return &Claims{
		TenantID: c.TenantID,
		Subject:  c.Subject,
		Role:     c.Role,
	}
}
