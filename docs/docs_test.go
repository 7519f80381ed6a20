package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Info    map[string]any            `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "Pet Health Record API", doc.Info["title"])

	routes := map[string][]string{
		"/pets":                                       {"get", "post"},
		"/pets/{petID}":                               {"get"},
		"/pets/{petID}/vaccines":                      {"get"},
		"/pets/{petID}/vaccines/initial-series":       {"post"},
		"/pets/{petID}/vaccines/initial-series/doses": {"post"},
		"/pets/{petID}/vaccines/regular":              {"post"},
		"/pets/{petID}/vaccines/status":               {"get"},
		"/pets/{petID}/vaccines/transition":           {"post"},
		"/vaccines/catalog/{species}":                 {"get"},
	}
	for path, methods := range routes {
		ops, ok := doc.Paths[path]
		require.True(t, ok, "missing path %s", path)
		for _, m := range methods {
			assert.Contains(t, ops, m, "%s %s", m, path)
		}
	}
}
