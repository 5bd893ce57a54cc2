// Package errors_test provides unit tests for the AppError type, factory
// functions, and error-chain helpers defined in pkg/errors/errors.go.
package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/LeadScout/pkg/errors"
)

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"run not found", errors.ErrCodeRunNotFound, "run 7f3c not found"},
		{"invalid param", errors.CodeInvalidParam, "rounds must be >= 1"},
		{"oracle unavailable", errors.ErrCodeOracleUnavailable, "oracle unreachable"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
		})
	}
}

func TestError_FormatIncludesCodeAndDetail(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeRunNotFound, "run not found")
	assert.Equal(t, "[RUN_001] run not found", ae.Error())

	withDetail := ae.WithDetail("id=abc")
	assert.Equal(t, "[RUN_001] run not found: id=abc", withDetail.Error())
	// The original is not mutated.
	assert.Empty(t, ae.Detail)
}

func TestWrap_NilErrorReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.Wrap(nil, errors.CodeDBQueryError, "query failed"))
}

func TestWrap_PreservesCodeWhenUnknown(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeRunStateConflict, "already terminal")
	wrapped := errors.Wrap(inner, errors.CodeUnknown, "transition rejected")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.ErrCodeRunStateConflict, wrapped.Code)
	assert.ErrorIs(t, wrapped, inner)
}

func TestIsCode_TraversesChain(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeOracleUnavailable, "oracle down")
	mid := errors.Wrap(inner, errors.CodeInternal, "round 2 failed")
	outer := errors.Wrap(mid, errors.ErrCodeRunAborted, "run aborted")

	assert.True(t, errors.IsCode(outer, errors.ErrCodeOracleUnavailable))
	assert.True(t, errors.IsCode(outer, errors.ErrCodeRunAborted))
	assert.False(t, errors.IsCode(outer, errors.ErrCodeRunNotFound))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsNotFound(errors.NotFound("gone")))
	assert.True(t, errors.IsNotFound(errors.New(errors.ErrCodeRunNotFound, "no run")))
	assert.False(t, errors.IsNotFound(errors.Internal("boom")))
	assert.False(t, errors.IsNotFound(stderrors.New("plain")))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.CodeConflict, errors.GetCode(errors.Conflict("bad transition")))
}

//Personal.AI order the ending
