package domain

import (
	"strings"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusShipping  OrderStatus = "SHIPPING"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

var Statuses = []OrderStatus{StatusPending, StatusShipping, StatusCompleted, StatusCancelled}

var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusShipping, StatusCancelled},
	StatusShipping:  {StatusCompleted},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// AllowedTransitions returns a copy of the targets reachable from s.
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	next := transitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, n := range transitions[s] {
		if n == target {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CheckTransition returns an *InvalidStatusTransitionError when target is not
// reachable from s.
func (s OrderStatus) CheckTransition(target OrderStatus) error {
	if s.CanTransitionTo(target) {
		return nil
	}
	return &InvalidStatusTransitionError{From: s, To: target, Allowed: s.AllowedTransitions()}
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		names := make([]string, len(Statuses))
		for i, st := range Statuses {
			names[i] = string(st)
		}
		return "", Validationf("invalid status %q, must be one of: %s", raw, strings.Join(names, ", "))
	}
	return s, nil
}
