package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDoc(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Host  string                    `json:"host"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, SwaggerInfo.Host, parsed.Host)
	assert.Contains(t, parsed.Paths["/register"], "post")
	assert.Contains(t, parsed.Paths["/login"], "post")
	assert.Contains(t, parsed.Paths["/users"], "get")
	assert.Contains(t, parsed.Paths["/users/{id}"], "get")
	assert.Contains(t, parsed.Paths["/users/{id}"], "delete")
}
