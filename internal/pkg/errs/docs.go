// Package errs provides standardized error types for the hauling backend.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Two families of errors live here:
//
//   - Generic value errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError) used by value-object and
//     command constructors.
//   - The closed DomainError taxonomy: every business rejection the
//     scheduling core can produce carries a stable machine-readable code
//     (ALREADY_SCHEDULED, TRUCK_ALREADY_SCHEDULED, ...) so callers can
//     distinguish "your request was invalid" from "the system failed".
//
// Each generic error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Unexpected persistence or collaborator failures are never converted into
// DomainError values; they propagate as plain wrapped errors.
package errs
