package docs

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refPattern = regexp.MustCompile(`"\$ref": "#/definitions/([^"]+)"`)

func TestSwaggerDocResolvesEveryRef(t *testing.T) {
	doc := SwaggerInfo.ReadDoc()

	var parsed struct {
		Paths       map[string]any `json:"paths"`
		Definitions map[string]any `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	for _, route := range []string{"/", "/health", "/api/orientacion", "/api/orientaciones/{id}", "/api/ciudades",
		"/api/ciudades/debug", "/api/municipios", "/api/centros", "/api/admin/login", "/api/admin/reload",
		"/api/admin/orientaciones", "/ws/orientacion"} {
		assert.Contains(t, parsed.Paths, route)
	}

	matches := refPattern.FindAllStringSubmatch(doc, -1)
	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.Contains(t, parsed.Definitions, m[1])
	}
}
