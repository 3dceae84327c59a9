package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "required": ["file", "total_months"],
  "properties": {
    "file": {"type": "string"},
    "total_months": {"type": "integer", "minimum": 0}
  }
}`

func TestValidateJSONBytes(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
	}{
		{"valid", `{"file":"cv.pdf","total_months":3}`, false},
		{"missing field", `{"file":"cv.pdf"}`, true},
		{"wrong type", `{"file":"cv.pdf","total_months":"three"}`, true},
		{"negative", `{"file":"cv.pdf","total_months":-1}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONBytes([]byte(testSchema), []byte(tt.doc))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateJSONBytes_RootField(t *testing.T) {
	err := ValidateJSONBytes([]byte(testSchema), []byte(`{"total_months":0}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateJSONBytes_MalformedDocument(t *testing.T) {
	err := ValidateJSONBytes([]byte(testSchema), []byte(`{ invalid json }`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "(embedded schema)", loadErr.Path)
	assert.NotNil(t, errors.Unwrap(loadErr))
}
