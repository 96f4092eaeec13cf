package booking

// State is the lifecycle state of a booking.
type State string

const (
	StatePending  State = "PENDING"
	StateAccepted State = "ACCEPTED"
	StateDeclined State = "DECLINED"
	StatePickedUp State = "PICKED_UP"
	StateReturned State = "RETURNED"
)

// validTransitions lists the legal next states per current state.
// DECLINED and RETURNED are terminal. Self-transitions are not listed and
// are therefore rejected like any other missing edge.
var validTransitions = map[State][]State{
	StatePending:  {StateAccepted, StateDeclined},
	StateAccepted: {StatePickedUp},
	StatePickedUp: {StateReturned},
	StateDeclined: {},
	StateReturned: {},
}

// Valid reports whether s is a known booking state.
func (s State) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo reports whether s -> to is in the transition table.
func (s State) CanTransitionTo(to State) bool {
	for _, next := range validTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Blocks reports whether a booking in this state blocks the car's calendar.
// Pending requests are still competing asks and declined ones are dead, so
// neither holds the dates.
func (s State) Blocks() bool {
	return s == StateAccepted || s == StatePickedUp || s == StateReturned
}
