package requestid

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/google/uuid"
)

// Encoding names a textual representation of the raw identifier bytes.
type Encoding string

const (
	// EncodingHex is 32 lowercase hex characters, no separators, big-endian.
	EncodingHex Encoding = "hex"
	// EncodingBase64 is the standard RFC 4648 alphabet with padding.
	EncodingBase64 Encoding = "base64"
)

// validateEncoding matches the two recognized names exactly. There is no
// case folding or trimming; " HEX " is as unsupported as "bogus".
func validateEncoding(enc Encoding) error {
	switch enc {
	case EncodingHex, EncodingBase64:
		return nil
	default:
		return &UnsupportedEncodingError{Encoding: string(enc)}
	}
}

func encode(id uuid.UUID, enc Encoding) string {
	switch enc {
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(id[:])
	default:
		return hex.EncodeToString(id[:])
	}
}
