package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenantLogoKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tenant_logos/acme_logo.png", TenantLogoKey("acme", "logo.png"))
	assert.Equal(t, "tenant_logos/acme_my_logo_1.png", TenantLogoKey("acme", "my logo (1).png"))
}

func TestNetworkFlowKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"network_flows/5f1b2a48-9c21-4a8f-bb7e-07f3a9c2d101_flow.json",
		NetworkFlowKey("5f1b2a48-9c21-4a8f-bb7e-07f3a9c2d101", "flow.json"))
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "logo.png", want: "logo.png"},
		{name: "path_traversal", input: "../../etc/passwd", want: "passwd"},
		{name: "windows_path", input: `C:\Users\x\logo.png`, want: "logo.png"},
		{name: "spaces_and_specials", input: "my logo (final).png", want: "my_logo_final_.png"},
		{name: "empty", input: "", want: "file"},
		{name: "dot", input: ".", want: "file"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizeFilename(tt.input))
		})
	}
}
