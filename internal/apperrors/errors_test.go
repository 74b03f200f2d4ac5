package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestKind_MatchesConditionAndKind(t *testing.T) {
	errPosted := apperrors.Kind(apperrors.ErrConflict, "entry already posted")
	wrapped := fmt.Errorf("posting entry 7: %w", errPosted)

	assert.ErrorIs(t, wrapped, errPosted)
	assert.ErrorIs(t, wrapped, apperrors.ErrConflict)
	assert.NotErrorIs(t, wrapped, apperrors.ErrValidation)
	assert.Equal(t, "posting entry 7: entry already posted", wrapped.Error())
}

func TestIsRetryable(t *testing.T) {
	stale := fmt.Errorf("update account: %w", apperrors.ErrConcurrentModification)

	assert.True(t, apperrors.IsRetryable(stale))
	assert.ErrorIs(t, stale, apperrors.ErrConsistency)
	assert.False(t, apperrors.IsRetryable(apperrors.ErrConsistency))
	assert.False(t, apperrors.IsRetryable(nil))
}

func TestAppError(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(500, "failed to insert journal entry", cause)

	assert.Equal(t, "failed to insert journal entry: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, fmt.Errorf("post: %w", err), apperrors.ErrInternal)

	bare := apperrors.NewAppError(400, "invalid nextToken", nil)
	assert.Equal(t, "invalid nextToken", bare.Error())
	assert.NotErrorIs(t, bare, apperrors.ErrInternal)
}
