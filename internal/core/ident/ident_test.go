// SPDX-License-Identifier: MIT

package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ascii", "abc", "YWJj"},
		{"url-safe dash alphabet", ">>>", "Pj4-"},
		{"url-safe underscore alphabet", "???", "Pz8_"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Encode(tc.in))
		})
	}
}

func TestEncode_OutputIsURLSafe(t *testing.T) {
	// Inputs chosen to produce '+', '/' and '=' under standard base64.
	urls := []string{
		"http://example.com/live/ch?token=a+b/c&x=1",
		"https://cdn.example.com/வணக்கம்/stream.m3u8",
		"http://host/a",
		"http://host/ab",
	}

	for _, u := range urls {
		id := Encode(u)
		assert.NotContains(t, id, "+", "id must use the URL-safe alphabet")
		assert.NotContains(t, id, "/", "id must use the URL-safe alphabet")
		assert.NotContains(t, id, "=", "id must be unpadded")
	}
}

func TestRoundTrip(t *testing.T) {
	urls := []string{
		"http://example.com/live/stream.m3u8",
		"https://user.host.example/path/to/channel.m3u8?auth=abc123",
		"http://example.com/தமிழ்/live.m3u8",
		"",
	}

	for _, u := range urls {
		decoded, err := Decode(Encode(u))
		require.NoError(t, err)
		assert.Equal(t, u, decoded)
	}
}

func TestDecode_AcceptsPadding(t *testing.T) {
	decoded, err := Decode("YQ==")
	require.NoError(t, err)
	assert.Equal(t, "a", decoded)
}

func TestDecode_Invalid(t *testing.T) {
	for _, id := range []string{"!!!", "%%", "a b c"} {
		_, err := Decode(id)
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", id)
	}
}
