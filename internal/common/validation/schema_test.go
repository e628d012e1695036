package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"count": {"type": "number", "minimum": 0}
	}
}`

func TestValidateDocument(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		result, err := ValidateDocument(testSchema, map[string]interface{}{
			"name":  "pants",
			"count": 3,
		})
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.ErrorSummary())
	})

	t.Run("missing required field", func(t *testing.T) {
		result, err := ValidateDocument(testSchema, map[string]interface{}{
			"count": 3,
		})
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Contains(t, result.ErrorSummary(), "name")
	})

	t.Run("wrong type", func(t *testing.T) {
		result, err := ValidateDocument(testSchema, map[string]interface{}{
			"name":  "pants",
			"count": "three",
		})
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Contains(t, result.ErrorSummary(), "count")
	})

	t.Run("broken schema", func(t *testing.T) {
		_, err := ValidateDocument("{not a schema", map[string]interface{}{})
		assert.Error(t, err)
	})
}
