package car

import (
	"errors"
	"fmt"
	"time"

	"github.com/fleetloop/car-sharing-backend/internal/cartype"
	"github.com/fleetloop/car-sharing-backend/internal/user"
)

var (
	ErrEmptyName          = errors.New("car name cannot be empty")
	ErrInvalidHorsepower  = errors.New("horsepower must be a positive integer")
	ErrInvalidState       = errors.New("invalid car state")
	ErrInvalidFuelType    = errors.New("invalid fuel type")
	ErrEmptyLicensePlate  = errors.New("license plate cannot be empty")
	// ErrNoActiveRental signals that a non-owner tried to update a car
	// without currently holding it under a picked-up booking. Distinct from
	// AccessDeniedError so callers can tell the two failure causes apart.
	ErrNoActiveRental = errors.New("no active picked-up booking for this car and user")
)

// ID identifies a car.
type ID int64

// NotFoundError is returned when a referenced car does not exist.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("car %d not found", e.ID)
}

// AccessDeniedError is returned when a user lacks the rights to mutate a car.
type AccessDeniedError struct {
	ID ID
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access to car with id %d was denied", e.ID)
}

// DuplicateLicensePlateError is returned when a license plate is already
// registered on another car.
type DuplicateLicensePlateError struct {
	LicensePlate string
}

func (e *DuplicateLicensePlateError) Error() string {
	return "a car with this license plate already exists"
}

// State governs physical availability of the car, distinct from the booking
// lifecycle state.
type State string

const (
	StateLocked   State = "LOCKED"
	StateUnlocked State = "UNLOCKED"
)

func (s State) Valid() bool {
	return s == StateLocked || s == StateUnlocked
}

type FuelType string

const (
	FuelPetrol   FuelType = "PETROL"
	FuelDiesel   FuelType = "DIESEL"
	FuelElectric FuelType = "ELECTRIC"
)

func (f FuelType) Valid() bool {
	return f == FuelPetrol || f == FuelDiesel || f == FuelElectric
}

// Car represents a shareable vehicle.
type Car struct {
	ID           ID
	CarTypeID    cartype.ID
	OwnerID      user.ID
	Name         string
	State        State
	FuelType     FuelType
	Horsepower   int
	LicensePlate *string
	Info         *string
	CreatedAt    time.Time
}
