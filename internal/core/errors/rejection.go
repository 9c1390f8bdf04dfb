package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-readable reason a request was rejected.
type Kind string

const (
	KindMalformed           Kind = "malformed_input"
	KindNotFound            Kind = "not_found"
	KindNoOccurrence        Kind = "no_occurrence"
	KindNoAvailability      Kind = "no_availability"
	KindOutsideAvailability Kind = "outside_availability"
	KindAvailabilityOverlap Kind = "availability_overlap"
	KindEventConflict       Kind = "event_conflict"
)

// Class sentinels. A *Rejection matches exactly one of them with errors.Is.
var (
	ErrMalformed = errors.New("malformed input")
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("domain conflict")
)

// Rejection is an expected domain outcome: the request was understood and refused.
// Storage and other unexpected failures are never wrapped in a Rejection.
type Rejection struct {
	Kind    Kind
	Message string
	Detail  any
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

// Class returns the sentinel this rejection belongs to.
func (r *Rejection) Class() error {
	switch r.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindNoAvailability, KindOutsideAvailability, KindAvailabilityOverlap, KindEventConflict:
		return ErrConflict
	default:
		return ErrMalformed
	}
}

func (r *Rejection) Is(target error) bool {
	return target == r.Class()
}

// WithDetail attaches structured detail and returns r.
func (r *Rejection) WithDetail(detail any) *Rejection {
	r.Detail = detail
	return r
}

func Malformedf(format string, args ...any) *Rejection {
	return &Rejection{Kind: KindMalformed, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Rejection {
	return &Rejection{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Reject builds a rejection of any kind.
func Reject(kind Kind, format string, args ...any) *Rejection {
	return &Rejection{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsRejection unwraps err into a *Rejection if it carries one.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// HTTPStatus maps an error to its response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Response renders err as a status code and response body. Unexpected errors keep
// their message out of the body.
func Response(err error, fallbackMessage string) (int, ErrorResponse) {
	if r, ok := AsRejection(err); ok {
		return HTTPStatus(r), ErrorResponse{
			ErrorType: string(r.Kind),
			Message:   r.Message,
			Details:   r.Detail,
		}
	}
	return http.StatusInternalServerError, ErrorResponse{
		ErrorType: HttpInternalError,
		Message:   fallbackMessage,
	}
}
