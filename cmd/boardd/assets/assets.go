// Package assets embeds static files served by the daemon.
package assets

import _ "embed"

// OpenApiData is the OpenAPI description served by the Swagger UI.
//
//go:embed openapi.yaml
var OpenApiData []byte
