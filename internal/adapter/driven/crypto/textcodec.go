package crypto

import (
	"encoding/base64"
	"fmt"

	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TextCodec = Base64Codec{}

// Base64Codec encodes envelopes with the standard padded base64 alphabet,
// which is safe inside JSON strings. Decode ignores CR and LF so that
// MIME-wrapped tokens (76-column lines, trailing newline) are accepted.
type Base64Codec struct{}

// Encode returns the unwrapped base64 form of data.
func (Base64Codec) Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode reverses Encode.
func (Base64Codec) Decode(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", driven.ErrMalformedEncoding, err)
	}
	return data, nil
}
