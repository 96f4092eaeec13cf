package booking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var allStates = []State{StatePending, StateAccepted, StateDeclined, StatePickedUp, StateReturned}

func TestStateTransitionTable(t *testing.T) {
	allowed := map[State][]State{
		StatePending:  {StateAccepted, StateDeclined},
		StateAccepted: {StatePickedUp},
		StatePickedUp: {StateReturned},
		StateDeclined: {},
		StateReturned: {},
	}

	// Every pair not in the table must be rejected, including self-transitions.
	for _, from := range allStates {
		for _, to := range allStates {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			require.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStateSelfTransitionRejected(t *testing.T) {
	for _, s := range allStates {
		require.False(t, s.CanTransitionTo(s), "self-transition %s", s)
	}
}

func TestStateTerminalStates(t *testing.T) {
	for _, terminal := range []State{StateDeclined, StateReturned} {
		for _, to := range allStates {
			require.False(t, terminal.CanTransitionTo(to), "%s -> %s", terminal, to)
		}
	}
}

func TestStateValid(t *testing.T) {
	for _, s := range allStates {
		require.True(t, s.Valid())
	}
	require.False(t, State("CANCELLED").Valid())
	require.False(t, State("").Valid())
}

func TestStateBlocks(t *testing.T) {
	require.False(t, StatePending.Blocks())
	require.False(t, StateDeclined.Blocks())
	require.True(t, StateAccepted.Blocks())
	require.True(t, StatePickedUp.Blocks())
	require.True(t, StateReturned.Blocks())
}
