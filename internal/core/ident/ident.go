// SPDX-License-Identifier: MIT

// Package ident implements the reversible channel identifier codec.
//
// A channel id is the URL-safe base64 form of the channel's source URL
// (standard alphabet with '+' -> '-', '/' -> '_', padding stripped).
// Ids are part of the wire contract: clients persist them in their
// libraries, so the encoding must stay byte-for-byte stable.
package ident

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidID reports a channel id that does not decode to a URL.
var ErrInvalidID = errors.New("ident: invalid channel id")

// Encode converts a source URL into a URL-safe opaque id. It never fails.
func Encode(url string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(url))
}

// Decode converts an opaque id back into the source URL it encodes.
// Padded and unpadded tokens are both accepted; callers must treat a
// failed decode as "unknown channel", not as a fault.
func Decode(id string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(id, "="))
	if err != nil {
		return "", ErrInvalidID
	}
	return string(raw), nil
}
