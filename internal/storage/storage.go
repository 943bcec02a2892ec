package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
)

// ObjectStore stores bytes under a key and returns a public URL for them.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Upload carries one uploaded file through the service layer.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeFilename strips any path components and collapses characters that
// are awkward in object keys.
func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	base = unsafeKeyChars.ReplaceAllString(base, "_")
	if base == "" || base == "." {
		return "file"
	}
	return base
}

// TenantLogoKey derives the object key for a tenant's logo.
func TenantLogoKey(tenantID, filename string) string {
	return fmt.Sprintf("tenant_logos/%s_%s", tenantID, sanitizeFilename(filename))
}

// NetworkFlowKey derives the object key for an uploaded network-flow file,
// namespaced by the uploading user.
func NetworkFlowKey(userID, filename string) string {
	return fmt.Sprintf("network_flows/%s_%s", userID, sanitizeFilename(filename))
}
