package stowage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStowageErrorRoundTripsThroughErrorsAs(t *testing.T) {
	base := newErr(CodeConflict, "slot occupied")

	var se *StowageError
	require.True(t, errors.As(error(base), &se))
	assert.Equal(t, CodeConflict, se.Code)
}

func TestWrapErrPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("underlying cause")
	wrapped := wrapErr(CodeCancelled, "query aborted", cause)

	assert.Same(t, cause, errors.Unwrap(wrapped))
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsPredicatesMatchOnlyTheirOwnCode(t *testing.T) {
	cases := []struct {
		code  Code
		check func(error) bool
	}{
		{CodeInvalidArgument, IsInvalidArgument},
		{CodeNotFound, IsNotFound},
		{CodeConflict, IsConflict},
		{CodeNotAccessible, IsNotAccessible},
		{CodeExhausted, IsExhausted},
		{CodeCancelled, IsCancelled},
	}

	for _, tc := range cases {
		err := newErr(tc.code, "x")
		assert.True(t, tc.check(err), "expected %s to satisfy its own predicate", tc.code)

		for _, other := range cases {
			if other.code == tc.code {
				continue
			}
			assert.False(t, other.check(err), "%s error must not satisfy the %s predicate", tc.code, other.code)
		}
	}
}

func TestIsPredicatesReturnFalseForNonStowageErrors(t *testing.T) {
	plain := errors.New("not a stowage error")
	assert.False(t, IsInvalidArgument(plain))
	assert.False(t, Is(plain, CodeConflict))
}

func TestWithDetailIsChainableAndRetrievable(t *testing.T) {
	err := newErr(CodeNotAccessible, "blocked").WithDetail("plan", RetrievalPlan{
		Steps: []RetrievalStep{{Kind: StepRetrieve, ID: "X"}},
	})
	plan, ok := err.Details["plan"].(RetrievalPlan)
	require.True(t, ok)
	assert.Len(t, plan.Steps, 1)
}
