package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("ban: %w", NewAlreadyInState("user is already banned", nil))

	assert.ErrorIs(t, err, ErrAlreadyInState)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewStorageFailure_Unwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStorageFailure(cause)

	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NewNotFound("user", nil), http.StatusNotFound},
		{NewAlreadyInState("x", nil), http.StatusConflict},
		{NewInvalidRole("Admin"), http.StatusBadRequest},
		{NewMissingVerificationSubmission("Employer"), http.StatusBadRequest},
		{NewEmptyPopulation(), http.StatusBadRequest},
		{NewStorageFailure(nil), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, ToDomainError(tc.err).HTTPStatus, tc.err.Error())
	}
}

func TestToDomainError_DoesNotMutateSentinel(t *testing.T) {
	de := ToDomainError(ErrNotFound)
	require.NotNil(t, de)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Zero(t, ErrNotFound.HTTPStatus)
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, CodeNotFound, FromStatus(http.StatusNotFound, "Cannot GET /x").Code)
	assert.Equal(t, CodeInternal, FromStatus(http.StatusTeapot, "teapot").Code)
	assert.Nil(t, ToDomainError(nil))
}
