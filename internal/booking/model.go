package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/fleetloop/car-sharing-backend/internal/car"
	"github.com/fleetloop/car-sharing-backend/internal/user"
)

var (
	// ErrDateConflict is returned when a candidate interval overlaps an
	// existing confirmed or completed booking for the same car.
	ErrDateConflict = errors.New("booking dates conflict with an existing booking")
	// ErrInvalidTimeRange is returned when the end date is not strictly
	// after the start date.
	ErrInvalidTimeRange = errors.New("end date must be after start date")
)

// ID identifies a booking.
type ID int64

// NotFoundError is returned when a referenced booking does not exist.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("booking %d not found", e.ID)
}

// InvalidStateChangeError is returned when a requested transition violates
// the state machine or the pickup time window.
type InvalidStateChangeError struct {
	From   State
	To     State
	Reason string
}

func (e *InvalidStateChangeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid booking state change %s -> %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid booking state change %s -> %s", e.From, e.To)
}

// Booking represents a reservation of one car by one renter for a date
// interval. EndDate is always strictly after StartDate.
type Booking struct {
	ID        ID
	CarID     car.ID
	RenterID  user.ID
	StartDate time.Time
	EndDate   time.Time
	State     State
	CreatedAt time.Time
	UpdatedAt time.Time
}
