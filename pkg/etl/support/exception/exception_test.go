package exception_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tigerroll/fantasyload/pkg/etl/support/exception"
)

func TestNewValidationError(t *testing.T) {
	err := exception.NewValidationError("loader", "missing required field %q", "game_key")

	assert.True(t, err.IsSkippable())
	assert.False(t, err.IsRetryable())
	assert.True(t, errors.Is(err, exception.ErrValidation))
	assert.Contains(t, err.Error(), `[loader] missing required field "game_key"`)
}

func TestNewBatchOperationErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := exception.NewBatchOperationError("loader", "bulk insert of 100 games rows", cause)

	assert.True(t, err.IsRetryable())
	assert.False(t, err.IsSkippable())
	assert.True(t, errors.Is(err, exception.ErrBatchOperation))
	assert.True(t, errors.Is(err, cause))
}

func TestNewOrchestrationError(t *testing.T) {
	err := exception.NewOrchestrationError("orchestrator", "stage rosters failed", nil)

	assert.False(t, err.IsRetryable())
	assert.False(t, err.IsSkippable())
	assert.True(t, errors.Is(err, exception.ErrOrchestration))
	assert.Equal(t, "orchestrator", err.Module)
}

func TestIsRetryableClassification(t *testing.T) {
	assert.False(t, exception.IsRetryable(nil))
	// Unknown errors default to retryable.
	assert.True(t, exception.IsRetryable(errors.New("io timeout")))
	// Skippable record errors are not retryable.
	assert.False(t, exception.IsRetryable(exception.NewValidationError("loader", "bad record")))
	assert.True(t, exception.IsRetryable(exception.NewBatchOperationError("loader", "tx failed", nil)))
}

func TestIsSkippableClassification(t *testing.T) {
	assert.False(t, exception.IsSkippable(errors.New("io timeout")))
	assert.True(t, exception.IsSkippable(exception.NewDuplicateKeyError("loader", "dup key %s", "428")))
	assert.False(t, exception.IsSkippable(exception.NewBatchOperationError("loader", "tx failed", nil)))
}
