package api

import (
	"errors"
	"net/http"

	service "github.com/okian/bestxi/internal/app"
)

// ErrRateLimited is returned when the request budget is exhausted.
var ErrRateLimited = errors.New("too many requests")

// Error is an API failure with its wire code and HTTP status.
type Error struct {
	Kind   string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// NewKind creates an Error for kind with an explicit status.
func NewKind(kind string, status int, err error) *Error {
	return &Error{Kind: kind, Status: status, Err: err}
}

// Wrap classifies a service error into an API error.
func Wrap(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	kind := service.Kind(err)
	return NewKind(kind, statusFor(kind), err)
}

// WrapKind wraps err under kind, choosing the status for that kind.
func WrapKind(kind string, err error) *Error {
	return NewKind(kind, statusFor(kind), err)
}

func statusFor(kind string) int {
	switch kind {
	case service.KindInvalidPitchType:
		return http.StatusBadRequest
	case service.KindNoPlayersRemaining, service.KindInsufficientPlayers:
		return http.StatusUnprocessableEntity
	case service.KindDatasetNotFound, service.KindCanceled:
		return http.StatusServiceUnavailable
	case service.KindTimeout:
		return http.StatusGatewayTimeout
	case kindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

const kindRateLimited = "rate_limited"
