package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBlobID(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		// echo -n "" | git hash-object --stdin
		{name: "empty content", content: "", expected: "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		// echo "test content" | git hash-object --stdin
		{name: "test content", content: "test content\n", expected: "d670460b4b4aece5915caf5c68d12f560a9fe3e4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeBlobID([]byte(tt.content)).Hex())
		})
	}
}

func TestParseBlobID(t *testing.T) {
	id := ComputeBlobID([]byte("Teh quick fox"))

	parsed, err := ParseBlobID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.False(t, parsed.IsZero())

	_, err = ParseBlobID("abc")
	assert.Error(t, err)

	_, err = ParseBlobID("zzz456789abcdef0123456789abcdef012345678")
	assert.Error(t, err)
}

func TestBlobID_JSON(t *testing.T) {
	id := ComputeBlobID([]byte("alpha\nbeta mistak"))

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+id.Hex()+`"`, string(data))

	var decoded BlobID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	assert.Error(t, json.Unmarshal([]byte(`123`), &decoded))
}
