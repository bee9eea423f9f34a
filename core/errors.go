package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	KitErrorBadInput            = "KIT_BAD_INPUT"
	KitErrorImmutableAttribute  = "KIT_IMMUTABLE_ATTRIBUTE"
	KitErrorUnsupportedEncoding = "KIT_UNSUPPORTED_ENCODING"
	KitErrorStrategyNotFound    = "KIT_STRATEGY_NOT_FOUND"
	KitErrorAuthFailed          = "KIT_AUTH_FAILED"
	KitErrorRateLimited         = "KIT_RATE_LIMITED"
	KitErrorInternal            = "KIT_INTERNAL_ERROR"
)

// KitErrorConverter is implemented by package errors that know their own
// category and text code; the mapper consults it before any heuristics.
type KitErrorConverter interface {
	ToKitError() *goerrors.Error
}

func MapError(err error) *goerrors.Error {
	return kitErrorMapper(err)
}

func kitErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var converter KitErrorConverter
	if errors.As(err, &converter) {
		return ensureKitErrorEnvelope(converter.ToKitError())
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureKitErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "immutable"):
		return NewKitError(err.Error(), goerrors.CategoryConflict, KitErrorImmutableAttribute)
	case strings.Contains(msg, "unsupported encoding"):
		return NewKitError(err.Error(), goerrors.CategoryBadInput, KitErrorUnsupportedEncoding)
	case strings.Contains(msg, "strategy") && (strings.Contains(msg, "not registered") || strings.Contains(msg, "not found")):
		return NewKitError(err.Error(), goerrors.CategoryNotFound, KitErrorStrategyNotFound)
	case strings.Contains(msg, "token endpoint"), strings.Contains(msg, "token request"):
		return NewKitError(err.Error(), goerrors.CategoryAuth, KitErrorAuthFailed)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "unknown"), strings.Contains(msg, "mismatch"):
		return NewKitError(err.Error(), goerrors.CategoryBadInput, KitErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureKitErrorEnvelope(mapped)
}

func NewKitError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureKitErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureKitErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = kitHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultKitTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultKitTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return KitErrorBadInput
	case goerrors.CategoryNotFound:
		return KitErrorStrategyNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return KitErrorAuthFailed
	case goerrors.CategoryConflict:
		return KitErrorImmutableAttribute
	case goerrors.CategoryRateLimit:
		return KitErrorRateLimited
	default:
		return KitErrorInternal
	}
}

func kitHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
