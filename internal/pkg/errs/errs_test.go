package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"hauling/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("jobId", "123")

		assert.Equal(t, "jobId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("jobId", "123", cause)

		assert.Equal(t, "jobId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: jobId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("truckType")

		assert.Equal(t, "truckType", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: truckType", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("truckType", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: truckType (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 150, -90, 90)

		assert.Equal(t, "latitude", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, -90, err.Min)
		assert.Equal(t, 90, err.Max)
		assert.Equal(t, "value is invalid: 150 is latitude, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("ownerId")

		assert.Equal(t, "ownerId", err.ParamName)
		assert.Equal(t, "value is required: ownerId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("jobId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("truckType"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("latitude", 150, -90, 90), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("ownerId"), errs.ErrValueIsRequired)
	})
}

func TestDomainError(t *testing.T) {
	t.Run("carries stable code", func(t *testing.T) {
		assert.Equal(t, "TRUCK_ALREADY_SCHEDULED", errs.ErrTruckAlreadyScheduled.Code)
		assert.Contains(t, errs.ErrTruckAlreadyScheduled.Error(), "TRUCK_ALREADY_SCHEDULED")
	})

	t.Run("wrapped domain errors match sentinels", func(t *testing.T) {
		wrapped := fmt.Errorf("scheduling job: %w", errs.ErrUserAlreadyScheduled)
		require.ErrorIs(t, wrapped, errs.ErrUserAlreadyScheduled)
		assert.NotErrorIs(t, wrapped, errs.ErrTruckAlreadyScheduled)
	})

	t.Run("errors.As separates business rejections from infrastructure failures", func(t *testing.T) {
		var domainErr *errs.DomainError
		require.ErrorAs(t, fmt.Errorf("canceling: %w", errs.ErrJobHasActiveTrucks), &domainErr)
		assert.Equal(t, "JOB_HAS_ACTIVE_TRUCKS", domainErr.Code)

		domainErr = nil
		assert.False(t, errors.As(errors.New("connection reset"), &domainErr))
	})
}
