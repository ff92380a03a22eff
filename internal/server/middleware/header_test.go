package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBearerToken(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		token, err := ExtractBearerToken("Bearer abc.def.ghi")
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := ExtractBearerToken("")
		require.Error(t, err)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, err := ExtractBearerToken("Basic dXNlcjpwYXNz")
		require.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := ExtractBearerToken("Bearer ")
		require.Error(t, err)
	})
}
