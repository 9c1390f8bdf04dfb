package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRejection_Classes(t *testing.T) {
	tests := []struct {
		kind   Kind
		class  error
		status int
	}{
		{KindMalformed, ErrMalformed, http.StatusBadRequest},
		{KindNoOccurrence, ErrMalformed, http.StatusBadRequest},
		{KindNotFound, ErrNotFound, http.StatusNotFound},
		{KindNoAvailability, ErrConflict, http.StatusConflict},
		{KindOutsideAvailability, ErrConflict, http.StatusConflict},
		{KindAvailabilityOverlap, ErrConflict, http.StatusConflict},
		{KindEventConflict, ErrConflict, http.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			err := fmt.Errorf("placing event: %w", Reject(tc.kind, "boom"))
			require.ErrorIs(t, err, tc.class)
			require.Equal(t, tc.status, HTTPStatus(err))

			r, ok := AsRejection(err)
			require.True(t, ok)
			require.Equal(t, tc.kind, r.Kind)
		})
	}
}

func TestRejection_NotOtherClasses(t *testing.T) {
	err := NotFoundf("space %q not found", "s-1")
	require.False(t, errors.Is(err, ErrMalformed))
	require.False(t, errors.Is(err, ErrConflict))
	require.Equal(t, `not_found: space "s-1" not found`, err.Error())
}

func TestResponse(t *testing.T) {
	status, body := Response(Reject(KindEventConflict, "overlaps").WithDetail(map[string]string{"id": "e-1"}), "failed")
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "event_conflict", body.ErrorType)
	require.Equal(t, "overlaps", body.Message)
	require.Equal(t, map[string]string{"id": "e-1"}, body.Details)

	status, body = Response(Malformedf("end must be after start"), "failed")
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "malformed_input", body.ErrorType)

	status, body = Response(NotFoundf("event %q not found", "e-9"), "failed")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "not_found", body.ErrorType)

	status, body = Response(errors.New("connection reset"), "failed to place event")
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, HttpInternalError, body.ErrorType)
	require.Equal(t, "failed to place event", body.Message)
	require.Nil(t, body.Details)
}
