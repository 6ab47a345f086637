package docs

import (
	"strings"

	"github.com/NoKnow606/google-workspace-mcp/internal/pkg/office"
)

// escapeDriveQuery escapes a value for interpolation into a Drive search
// query. Drive query strings use single quotes, so embedded quotes and
// backslashes must be escaped.
func escapeDriveQuery(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}

// isOfficeType returns true if the MIME type is a Microsoft Office XML format.
func isOfficeType(mimeType string) bool {
	return office.IsOfficeType(mimeType)
}
