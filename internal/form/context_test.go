package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimBraces(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "wrapped guid", input: "{6F9619FF-8B86-D011-B42D-00C04FC964FF}", want: "6F9619FF-8B86-D011-B42D-00C04FC964FF"},
		{name: "interior braces untouched", input: "{a{b}c}", want: "a{b}c"},
		{name: "only leading brace", input: "{abc", want: "abc"},
		{name: "only trailing brace", input: "abc}", want: "abc"},
		{name: "unwrapped value", input: "abc-123", want: "abc-123"},
		{name: "double wrapped strips one layer", input: "{{abc}}", want: "{abc}"},
		{name: "empty braces", input: "{}", want: ""},
		{name: "empty string", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimBraces(tt.input))
		})
	}
}

func TestReadIdentifiers(t *testing.T) {
	t.Run("both identifiers trimmed", func(t *testing.T) {
		ids, err := ReadIdentifiers(StaticContext{Entity: "{abc-123}", User: "{user-9}"})
		require.NoError(t, err)
		assert.Equal(t, Identifiers{RecordID: "abc-123", UserID: "user-9"}, ids)
	})

	t.Run("empty record identifier", func(t *testing.T) {
		_, err := ReadIdentifiers(StaticContext{Entity: "{}", User: "{user-9}"})
		assert.ErrorIs(t, err, ErrMissingIdentifier)
	})

	t.Run("empty user identifier is accepted", func(t *testing.T) {
		ids, err := ReadIdentifiers(StaticContext{Entity: "{abc}"})
		require.NoError(t, err)
		assert.Equal(t, "", ids.UserID)
	})

	t.Run("non uuid value accepted as is", func(t *testing.T) {
		ids, err := ReadIdentifiers(StaticContext{Entity: "not a uuid"})
		require.NoError(t, err)
		assert.Equal(t, "not a uuid", ids.RecordID)
	})

	t.Run("nil context", func(t *testing.T) {
		_, err := ReadIdentifiers(nil)
		assert.ErrorIs(t, err, ErrMissingIdentifier)
	})
}
