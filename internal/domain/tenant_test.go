package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTenantID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "simple", input: "acme", want: "acme"},
		{name: "case_folded", input: "Acme", want: "acme"},
		{name: "mixed_case_and_digits", input: "Plant42", want: "plant42"},
		{name: "underscores", input: "acme_east", want: "acme_east"},
		{name: "surrounding_whitespace", input: "  acme\t", want: "acme"},
		{name: "max_length", input: strings.Repeat("a", 63), want: strings.Repeat("a", 63)},
		{name: "empty", input: "", wantErr: ErrTenantIDMissing},
		{name: "whitespace_only", input: "   ", wantErr: ErrTenantIDMissing},
		{name: "leading_digit", input: "1acme", wantErr: ErrTenantIDInvalid},
		{name: "leading_underscore", input: "_acme", wantErr: ErrTenantIDInvalid},
		{name: "hyphen", input: "acme-east", wantErr: ErrTenantIDInvalid},
		{name: "sql_injection_attempt", input: `acme";DROP DATABASE x;--`, wantErr: ErrTenantIDInvalid},
		{name: "too_long", input: strings.Repeat("a", 64), wantErr: ErrTenantIDInvalid},
		{name: "unicode", input: "ácme", wantErr: ErrTenantIDInvalid},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeTenantID(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTenantIDIdempotent(t *testing.T) {
	t.Parallel()

	once, err := NormalizeTenantID("AcmeEast")
	require.NoError(t, err)

	twice, err := NormalizeTenantID(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}
