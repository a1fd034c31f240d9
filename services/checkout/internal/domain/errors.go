package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrForbidden  = errors.New("forbidden")  // 403
	ErrConflict   = errors.New("conflict")   // 409

	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

var (
	ErrEmptyCart      = fmt.Errorf("%w: cart is empty", ErrNotFound)
	ErrCartLineAbsent = fmt.Errorf("%w: cart item not found", ErrNotFound)
	ErrOrderNotFound  = fmt.Errorf("%w: order not found", ErrNotFound)
	ErrIntentNotFound = fmt.Errorf("%w: checkout intent not found or expired", ErrNotFound)
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrNotFound }

type InsufficientStockError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrConflict }

// InvalidStatusTransitionError is both a transition failure and a validation
// failure, so callers matching either sentinel see it.
type InvalidStatusTransitionError struct {
	From    OrderStatus
	To      OrderStatus
	Allowed []OrderStatus
}

func (e *InvalidStatusTransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		parts := make([]string, len(e.Allowed))
		for i, s := range e.Allowed {
			parts[i] = string(s)
		}
		allowed = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("cannot change order status from %s to %s (allowed: %s)", e.From, e.To, allowed)
}

func (e *InvalidStatusTransitionError) Unwrap() []error {
	return []error{ErrInvalidStatusTransition, ErrValidation}
}
