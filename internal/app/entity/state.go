package entity

import "github.com/google/uuid"

// Denominations the engine acts on. The state catalog may define more;
// those pass through the state machine untouched.
const (
	StatePending   = "pending"
	StateInProcess = "in-process"
	StateDelayed   = "delayed"
	StateReady     = "ready"
	StateEnRoute   = "en-route"
	StateDelivered = "delivered"
	StateCancelled = "cancelled"
)

// OrderState is a row of the state catalog.
type OrderState struct {
	ID           uuid.UUID
	Denomination string
}

var validNext = map[string]map[string]bool{
	StatePending:   {StateInProcess: true, StateCancelled: true},
	StateInProcess: {StateReady: true, StateDelayed: true, StateCancelled: true},
	StateDelayed:   {StateReady: true, StateDelayed: true, StateCancelled: true},
	StateReady:     {StateEnRoute: true, StateDelivered: true, StateCancelled: true},
	StateEnRoute:   {StateDelivered: true, StateCancelled: true},
	StateDelivered: {},
	StateCancelled: {},
}

// IsKnownState reports whether the denomination is one the engine acts on.
func IsKnownState(denomination string) bool {
	_, ok := validNext[denomination]
	return ok
}

// IsTerminalState reports whether no transition may leave the denomination.
func IsTerminalState(denomination string) bool {
	next, ok := validNext[denomination]
	return ok && len(next) == 0
}

// CanTransition validates a transition between catalog states. Unknown
// denominations are opaque: they may be entered from and left to any
// non-terminal situation, so only pairs of known states are constrained.
func CanTransition(from, to string) bool {
	if IsTerminalState(from) {
		return false
	}
	if !IsKnownState(from) || !IsKnownState(to) {
		return true
	}

	return validNext[from][to]
}
