package codes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec()

	for _, id := range []int{1, 2, 7, 42, 1000, 65535, 1 << 20, (1 << 31) - 1} {
		code := codec.Encode(id)
		require.NotEmpty(t, code)

		decoded, err := codec.Decode(code)
		require.NoError(t, err, "code %q for id %d", code, id)
		assert.Equal(t, id, decoded)
	}
}

func TestCodecCodesAreOpaque(t *testing.T) {
	codec := NewCodec()

	// Соседние идентификаторы не дают соседних кодов.
	assert.NotEqual(t, codec.Encode(1), codec.Encode(2))
	assert.NotEqual(t, codec.Encode(1), "1")
}

func TestCodecDecodeIsCaseInsensitive(t *testing.T) {
	codec := NewCodec()

	code := codec.Encode(42)

	fromUpper, err := codec.Decode("  " + code + " ")
	require.NoError(t, err)

	fromLower, err := codec.Decode(strings.ToLower(code))
	require.NoError(t, err)

	assert.Equal(t, 42, fromUpper)
	assert.Equal(t, 42, fromLower)
}

func TestCodecDecodeRejectsGarbage(t *testing.T) {
	codec := NewCodec()

	for _, code := range []string{"", "!!!", "это не код", "ZZZZZZZZZZZZZZZ"} {
		_, err := codec.Decode(code)
		assert.ErrorIs(t, err, ErrInvalidCode, "code %q", code)
	}
}
