package requestid

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-apikit/core"
)

var (
	ErrImmutableAttribute  = errors.New("requestid: attribute is immutable")
	ErrUnsupportedEncoding = errors.New("requestid: unsupported encoding")
)

// ImmutableAttributeError is returned from every attempt to set or delete a
// governed identifier. Op records the rejected operation.
type ImmutableAttributeError struct {
	Op string
}

func (e *ImmutableAttributeError) Error() string {
	if e == nil || e.Op == "" {
		return ErrImmutableAttribute.Error()
	}
	return fmt.Sprintf("%s: %s is not permitted", ErrImmutableAttribute.Error(), e.Op)
}

func (e *ImmutableAttributeError) Unwrap() error {
	return ErrImmutableAttribute
}

func (e *ImmutableAttributeError) ToKitError() *goerrors.Error {
	return goerrors.New(e.Error(), goerrors.CategoryConflict).
		WithCode(http.StatusConflict).
		WithTextCode(core.KitErrorImmutableAttribute)
}

// UnsupportedEncodingError is returned when an encoding name outside the
// recognized set is requested.
type UnsupportedEncodingError struct {
	Encoding string
}

func (e *UnsupportedEncodingError) Error() string {
	if e == nil {
		return ErrUnsupportedEncoding.Error()
	}
	return fmt.Sprintf("%s: %q", ErrUnsupportedEncoding.Error(), e.Encoding)
}

func (e *UnsupportedEncodingError) Unwrap() error {
	return ErrUnsupportedEncoding
}

func (e *UnsupportedEncodingError) ToKitError() *goerrors.Error {
	return goerrors.New(e.Error(), goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.KitErrorUnsupportedEncoding)
}
