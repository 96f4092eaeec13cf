package car

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fleetloop/car-sharing-backend/internal/cartype"
	"github.com/fleetloop/car-sharing-backend/internal/db"
	"github.com/fleetloop/car-sharing-backend/internal/pkg/clock"
	"github.com/fleetloop/car-sharing-backend/internal/user"
)

// RentalLookup answers whether a user currently holds a car under a
// picked-up booking. Satisfied by the booking store.
type RentalLookup interface {
	HasActivePickedUpBooking(ctx context.Context, tx pgx.Tx, carID ID, renterID user.ID, at time.Time) (bool, error)
}

type CreateRequest struct {
	CarTypeID    cartype.ID
	Name         string
	FuelType     FuelType
	Horsepower   int
	LicensePlate *string
	Info         *string
}

// UpdateRequest is a partial patch; nil fields are left untouched.
type UpdateRequest struct {
	CarTypeID    *cartype.ID
	Name         *string
	State        *State
	FuelType     *FuelType
	Horsepower   *int
	LicensePlate *string
	Info         *string
}

// touchesOwnerOnlyFields reports whether the patch goes beyond what an
// active renter may change. Renters may only flip the car state (lock/unlock).
func (r UpdateRequest) touchesOwnerOnlyFields() bool {
	return r.CarTypeID != nil ||
		r.Name != nil ||
		r.FuelType != nil ||
		r.Horsepower != nil ||
		r.LicensePlate != nil ||
		r.Info != nil
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, ownerID user.ID) (*Car, error)
	Get(ctx context.Context, id ID) (*Car, error)
	GetAll(ctx context.Context) ([]*Car, error)
	Update(ctx context.Context, id ID, req UpdateRequest, currentUserID user.ID) (*Car, error)
}

type service struct {
	repo           Repository
	conn           db.Connection
	carTypeService cartype.Service
	rentals        RentalLookup
	clock          clock.Clock
}

func NewService(
	repo Repository,
	conn db.Connection,
	carTypeService cartype.Service,
	rentals RentalLookup,
	clk clock.Clock,
) Service {
	return &service{
		repo:           repo,
		conn:           conn,
		carTypeService: carTypeService,
		rentals:        rentals,
		clock:          clk,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, ownerID user.ID) (*Car, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Horsepower <= 0 {
		return nil, ErrInvalidHorsepower
	}
	if !req.FuelType.Valid() {
		return nil, ErrInvalidFuelType
	}
	if req.LicensePlate != nil && strings.TrimSpace(*req.LicensePlate) == "" {
		return nil, ErrEmptyLicensePlate
	}

	return db.InTxResult(ctx, s.conn, func(tx pgx.Tx) (*Car, error) {
		// The lookup keeps its own not-found error, which propagates
		// unchanged to the caller.
		if _, err := s.carTypeService.Get(ctx, req.CarTypeID); err != nil {
			return nil, err
		}

		if req.LicensePlate != nil {
			other, err := s.repo.FindByLicensePlate(ctx, tx, *req.LicensePlate)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, &DuplicateLicensePlateError{LicensePlate: *req.LicensePlate}
			}
		}

		c := &Car{
			CarTypeID:    req.CarTypeID,
			OwnerID:      ownerID,
			Name:         req.Name,
			State:        StateLocked, // new cars start locked
			FuelType:     req.FuelType,
			Horsepower:   req.Horsepower,
			LicensePlate: req.LicensePlate,
			Info:         req.Info,
		}
		if err := s.repo.Insert(ctx, tx, c); err != nil {
			return nil, err
		}
		return c, nil
	})
}

func (s *service) Get(ctx context.Context, id ID) (*Car, error) {
	return db.InTxResult(ctx, s.conn, func(tx pgx.Tx) (*Car, error) {
		return s.repo.Get(ctx, tx, id)
	})
}

func (s *service) GetAll(ctx context.Context) ([]*Car, error) {
	return db.InTxResult(ctx, s.conn, func(tx pgx.Tx) ([]*Car, error) {
		return s.repo.GetAll(ctx, tx)
	})
}

// Update applies a partial patch to a car.
//
// The owner may change any mutable field. A non-owner may only flip the car
// state, and only while holding the car under a picked-up booking whose date
// range covers the current time. A non-owner patch that reaches for
// owner-only fields is denied outright; a state-only patch without a
// qualifying booking fails with ErrNoActiveRental instead, so the caller can
// distinguish the two causes.
func (s *service) Update(ctx context.Context, id ID, req UpdateRequest, currentUserID user.ID) (*Car, error) {
	return db.InTxResult(ctx, s.conn, func(tx pgx.Tx) (*Car, error) {
		c, err := s.repo.Get(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		if c.OwnerID != currentUserID {
			if req.touchesOwnerOnlyFields() {
				return nil, &AccessDeniedError{ID: c.ID}
			}
			ok, err := s.rentals.HasActivePickedUpBooking(ctx, tx, c.ID, currentUserID, s.clock.Now())
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrNoActiveRental
			}
		}

		if req.CarTypeID != nil && *req.CarTypeID != c.CarTypeID {
			if _, err := s.carTypeService.Get(ctx, *req.CarTypeID); err != nil {
				return nil, err
			}
			c.CarTypeID = *req.CarTypeID
		}

		if req.LicensePlate != nil {
			plate := strings.TrimSpace(*req.LicensePlate)
			if plate == "" {
				return nil, ErrEmptyLicensePlate
			}
			if c.LicensePlate == nil || plate != *c.LicensePlate {
				other, err := s.repo.FindByLicensePlate(ctx, tx, plate)
				if err != nil {
					return nil, err
				}
				// The car being updated does not collide with itself.
				if other != nil && other.ID != c.ID {
					return nil, &DuplicateLicensePlateError{LicensePlate: plate}
				}
			}
			c.LicensePlate = &plate
		}

		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return nil, ErrEmptyName
			}
			c.Name = *req.Name
		}
		if req.State != nil {
			if !req.State.Valid() {
				return nil, ErrInvalidState
			}
			c.State = *req.State
		}
		if req.FuelType != nil {
			if !req.FuelType.Valid() {
				return nil, ErrInvalidFuelType
			}
			c.FuelType = *req.FuelType
		}
		if req.Horsepower != nil {
			if *req.Horsepower <= 0 {
				return nil, ErrInvalidHorsepower
			}
			c.Horsepower = *req.Horsepower
		}
		if req.Info != nil {
			c.Info = req.Info
		}

		if err := s.repo.Update(ctx, tx, c); err != nil {
			return nil, err
		}
		return c, nil
	})
}
