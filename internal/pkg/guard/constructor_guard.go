// Package guard implements the constructor-guard pattern used by value
// objects, commands, and aggregates to detect zero-value instances that
// bypassed their designated constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by Validate when
// no object-specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it as a
// field and set it via NewConstructorGuard inside the constructor; the zero
// value fails Validate, so structs created with a literal are rejected.
//
// Example:
//
//	type Rate struct {
//	    amount int
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewRate(amount int) (Rate, error) {
//	    if amount < 0 {
//	        return Rate{}, errors.New("amount cannot be negative")
//	    }
//	    return Rate{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (r Rate) Validate() error {
//	    return r.guard.Validate(ErrRateIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as
// constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
