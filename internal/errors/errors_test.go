package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessageAndCause(t *testing.T) {
	cause := stderrors.New("row missing")
	err := Wrap(cause, ErrCodeNotFound, "employee not found")

	assert.Equal(t, "employee not found: row missing", err.Error())
	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, IsNotFound(err))
}

func TestAppErrorWithoutCause(t *testing.T) {
	err := Forbidden("insufficient role")
	assert.Equal(t, "insufficient role", err.Error())
	assert.True(t, IsForbidden(err))
	assert.False(t, IsNotFound(err))
}

func TestCodePredicatesThroughWrapping(t *testing.T) {
	inner := Validation("capacity exceeded")
	wrapped := fmt.Errorf("invite employee: %w", inner)

	assert.True(t, IsValidation(wrapped))
	assert.Equal(t, ErrCodeValidation, GetCode(wrapped))
}

func TestGetCodeOnPlainError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(stderrors.New("plain")))
	assert.Empty(t, GetField(stderrors.New("plain")))
	assert.Nil(t, GetDetails(stderrors.New("plain")))
}

func TestValidationFieldAndDetails(t *testing.T) {
	err := ValidationField("email", "already in use").
		WithDetails(map[string]any{"current": 5, "limit": 5})

	assert.Equal(t, "email", GetField(err))
	require.NotNil(t, GetDetails(err))
	assert.Equal(t, 5, GetDetails(err)["limit"])
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestTaxonomyPredicates(t *testing.T) {
	tests := []struct {
		err  error
		pred func(error) bool
	}{
		{Unauthenticated("no session"), IsUnauthenticated},
		{Forbidden("wrong tenant"), IsForbidden},
		{NotFound("missing"), IsNotFound},
		{Conflict("duplicate"), IsConflict},
		{Validation("bad input"), IsValidation},
		{ForeignKey("in use"), IsForeignKey},
		{Internal("boom"), IsInternal},
		{Upstream("mail api", stderrors.New("503")), IsUpstream},
	}
	for _, tt := range tests {
		assert.True(t, tt.pred(tt.err), "%v", tt.err)
	}
}
