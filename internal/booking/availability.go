package booking

import "time"

// intervalAvailable reports whether the candidate interval [start, end] is
// free of conflicts with the given bookings. Only bookings in a blocking
// state count. A candidate avoids a booking only by ending strictly before
// it starts or starting strictly after it ends, so intervals that merely
// touch at an endpoint do conflict.
//
// excludeID skips the booking being updated so it cannot collide with
// itself; pass 0 when creating.
func intervalAvailable(existing []*Booking, start, end time.Time, excludeID ID) bool {
	for _, b := range existing {
		if b.ID == excludeID || !b.State.Blocks() {
			continue
		}
		if end.Before(b.StartDate) || start.After(b.EndDate) {
			continue
		}
		return false
	}
	return true
}
