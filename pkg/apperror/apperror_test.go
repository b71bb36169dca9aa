package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	err := NotFound("No job: %d", 42)
	assert.EqualError(t, err, "No job: 42")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrBadRequest)

	err = BadRequest("No data")
	assert.ErrorIs(t, err, ErrBadRequest)

	err = Unauthorized("nope")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestWrappedKindSurvives(t *testing.T) {
	err := fmt.Errorf("update job: %w", NotFound("No job: %d", 1))
	assert.ErrorIs(t, err, ErrNotFound)

	var appErr *Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "No job: 1", appErr.Message)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusCode(nil))
	assert.Equal(t, http.StatusBadRequest, StatusCode(BadRequest("x")))
	assert.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("wrap: %w", NotFound("x"))))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(Unauthorized("x")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("connection refused")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "No job: 3", Message(NotFound("No job: %d", 3)))
	assert.Equal(t, "No job: 3", Message(fmt.Errorf("update job 3: %w", NotFound("No job: %d", 3))))
	assert.Equal(t, "connection refused", Message(errors.New("connection refused")))
}
