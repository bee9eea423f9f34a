package requestid

import (
	"sync"

	"github.com/google/uuid"
)

// ID is the embedded-field variant of the identity attribute. Declare it as
// a struct field (not a pointer) and read it through the methods:
//
//	type Request struct {
//		ID requestid.ID
//	}
//
// The zero value is ready to use. The identifier is generated on first read
// and never changes afterwards; immutability is enforced by construction,
// since the package exposes no mutator.
type ID struct {
	once sync.Once
	id   uuid.UUID
}

// UUID returns the identifier, generating it on first call.
func (r *ID) UUID() uuid.UUID {
	r.once.Do(func() {
		r.id = uuid.New()
	})
	return r.id
}

// Hex returns the 32-character lowercase hex form.
func (r *ID) Hex() string {
	return encode(r.UUID(), EncodingHex)
}

// Base64 returns the padded standard-alphabet base64 form of the 16 raw bytes.
func (r *ID) Base64() string {
	return encode(r.UUID(), EncodingBase64)
}

// Encoded returns the requested textual form. Unsupported encoding names
// fail before any identifier is generated.
func (r *ID) Encoded(enc Encoding) (string, error) {
	if err := validateEncoding(enc); err != nil {
		return "", err
	}
	return encode(r.UUID(), enc), nil
}

func (r *ID) String() string {
	return r.UUID().String()
}
