package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Talibis/jug-classic/internal/pkg/errs"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[errs.Kind]int{
		errs.KindAuthentication: http.StatusUnauthorized,
		errs.KindNotFound:       http.StatusNotFound,
		errs.KindValidation:     http.StatusBadRequest,
		errs.KindConflict:       http.StatusConflict,
		errs.KindInternal:       http.StatusInternalServerError,
	}

	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus(), "kind %s", kind)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, errs.KindConflict, errs.KindOf(errs.Conflict("dup")))
	assert.Equal(t, errs.KindValidation, errs.KindOf(errs.Validation("bad")))
	assert.Equal(t, errs.KindInternal, errs.KindOf(errors.New("plain")))

	// Kinds survive wrapping.
	wrapped := fmt.Errorf("context: %w", errs.NotFound("gone"))
	assert.Equal(t, errs.KindNotFound, errs.KindOf(wrapped))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "dup", errs.MessageOf(errs.Conflict("dup")))

	// Unclassified causes must not leak their details to clients.
	leaky := errors.New("pq: connection refused host=10.0.0.1")
	assert.Equal(t, "Something went wrong. Please try again.", errs.MessageOf(leaky))
}

func TestInternalUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := errs.Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, errs.KindInternal, errs.KindOf(err))
}
