// Package guard provides a defensive-construction helper for domain objects.
// Embedding a ConstructorGuard in a struct makes zero-value instances
// detectable, so entities and value objects can insist on being built through
// their constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having passed through its constructor.
// The zero value represents an unconstructed object and fails validation.
//
// Example:
//
//	type Booking struct {
//	    lrNumber string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewBooking(lrNumber string) (Booking, error) {
//	    if lrNumber == "" {
//	        return Booking{}, errors.New("lr number is required")
//	    }
//	    return Booking{lrNumber: lrNumber, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (b Booking) Validate() error {
//	    return b.guard.Validate(ErrBookingIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking its holder as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed objects. For zero-value objects it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
