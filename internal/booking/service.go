package booking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fleetloop/car-sharing-backend/internal/car"
	"github.com/fleetloop/car-sharing-backend/internal/db"
	"github.com/fleetloop/car-sharing-backend/internal/pkg/clock"
	"github.com/fleetloop/car-sharing-backend/internal/user"
)

type CreateRequest struct {
	CarID     car.ID
	RenterID  user.ID
	StartDate time.Time
	EndDate   time.Time
}

// UpdateRequest is a partial patch. Only the state may be changed through
// Update; date edits would bypass the availability rules.
type UpdateRequest struct {
	State *State
}

// Service is the booking lifecycle. Every operation runs inside one
// transaction supplied by the Connection: it either commits as a whole or
// rolls back on the first error.
type Service interface {
	Get(ctx context.Context, id ID) (*Booking, error)
	GetAll(ctx context.Context) ([]*Booking, error)
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Update(ctx context.Context, id ID, req UpdateRequest) (*Booking, error)
}

type service struct {
	repo    Repository
	carRepo car.Repository
	conn    db.Connection
	clock   clock.Clock
}

func NewService(repo Repository, carRepo car.Repository, conn db.Connection, clk clock.Clock) Service {
	return &service{
		repo:    repo,
		carRepo: carRepo,
		conn:    conn,
		clock:   clk,
	}
}

func (s *service) Get(ctx context.Context, id ID) (*Booking, error) {
	return db.InTxResult(ctx, s.conn, func(tx pgx.Tx) (*Booking, error) {
		return s.repo.Get(ctx, tx, id)
	})
}

func (s *service) GetAll(ctx context.Context) ([]*Booking, error) {
	return db.InTxResult(ctx, s.conn, func(tx pgx.Tx) ([]*Booking, error) {
		return s.repo.GetAll(ctx, tx)
	})
}

// Create books a car for the requested interval. The new booking starts out
// PENDING and awaits the owner's decision.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidTimeRange
	}

	return db.InTxResult(ctx, s.conn, func(tx pgx.Tx) (*Booking, error) {
		// The row lock serializes concurrent bookings of the same car: the
		// availability check and the insert below are one critical section.
		c, err := s.carRepo.GetForUpdate(ctx, tx, req.CarID)
		if err != nil {
			return nil, err
		}

		existing, err := s.repo.GetCarBookings(ctx, tx, c.ID)
		if err != nil {
			return nil, err
		}
		if !intervalAvailable(existing, req.StartDate, req.EndDate, 0) {
			return nil, ErrDateConflict
		}

		b := &Booking{
			CarID:     c.ID,
			RenterID:  req.RenterID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			State:     StatePending,
		}
		if err := s.repo.Create(ctx, tx, b); err != nil {
			return nil, err
		}
		return b, nil
	})
}

// Update applies a state transition to a booking. The patch is merged onto
// the loaded record; identity always comes from the existing booking.
func (s *service) Update(ctx context.Context, id ID, req UpdateRequest) (*Booking, error) {
	return db.InTxResult(ctx, s.conn, func(tx pgx.Tx) (*Booking, error) {
		b, err := s.repo.Get(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if req.State == nil {
			return b, nil
		}

		to := *req.State
		if !to.Valid() {
			return nil, &InvalidStateChangeError{From: b.State, To: to, Reason: "unknown state"}
		}
		if !b.State.CanTransitionTo(to) {
			return nil, &InvalidStateChangeError{From: b.State, To: to}
		}

		// Pickup is only legal while the booked period covers the current
		// time; the table alone would allow it at any point.
		if to == StatePickedUp {
			now := s.clock.Now()
			if now.Before(b.StartDate) || now.After(b.EndDate) {
				return nil, &InvalidStateChangeError{
					From:   b.State,
					To:     to,
					Reason: "pickup is only possible during the booked period",
				}
			}
		}

		// Pending requests do not block each other, so accepting is the
		// point where overlaps must be caught: lock the car row and
		// re-validate the interval against confirmed bookings.
		if to == StateAccepted {
			if _, err := s.carRepo.GetForUpdate(ctx, tx, b.CarID); err != nil {
				return nil, err
			}
			existing, err := s.repo.GetCarBookings(ctx, tx, b.CarID)
			if err != nil {
				return nil, err
			}
			if !intervalAvailable(existing, b.StartDate, b.EndDate, b.ID) {
				return nil, ErrDateConflict
			}
		}

		b.State = to
		if err := s.repo.Update(ctx, tx, b); err != nil {
			return nil, err
		}
		return b, nil
	})
}
