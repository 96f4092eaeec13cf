package booking

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/fleetloop/car-sharing-backend/internal/car"
	"github.com/fleetloop/car-sharing-backend/internal/user"
)

// stubConn runs the transactional closure directly; the fakes below never
// touch the tx argument.
type stubConn struct{}

func (stubConn) InTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fakeRepo struct {
	bookings map[ID]*Booking
	nextID   ID
}

func newFakeRepo(bookings ...*Booking) *fakeRepo {
	r := &fakeRepo{bookings: make(map[ID]*Booking), nextID: 1}
	for _, b := range bookings {
		r.bookings[b.ID] = b
		if b.ID >= r.nextID {
			r.nextID = b.ID + 1
		}
	}
	return r
}

func (r *fakeRepo) Get(_ context.Context, _ pgx.Tx, id ID) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) GetAll(_ context.Context, _ pgx.Tx) ([]*Booking, error) {
	out := make([]*Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeRepo) GetCarBookings(_ context.Context, _ pgx.Tx, carID car.ID) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.CarID == carID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) Create(_ context.Context, _ pgx.Tx, b *Booking) error {
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, _ pgx.Tx, b *Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return &NotFoundError{ID: b.ID}
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) HasActivePickedUpBooking(_ context.Context, _ pgx.Tx, carID car.ID, renterID user.ID, at time.Time) (bool, error) {
	for _, b := range r.bookings {
		if b.CarID == carID && b.RenterID == renterID && b.State == StatePickedUp &&
			!at.Before(b.StartDate) && !at.After(b.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

type fakeCarRepo struct {
	cars map[car.ID]*car.Car
}

func newFakeCarRepo(cars ...*car.Car) *fakeCarRepo {
	r := &fakeCarRepo{cars: make(map[car.ID]*car.Car)}
	for _, c := range cars {
		r.cars[c.ID] = c
	}
	return r
}

func (r *fakeCarRepo) Get(_ context.Context, _ pgx.Tx, id car.ID) (*car.Car, error) {
	c, ok := r.cars[id]
	if !ok {
		return nil, &car.NotFoundError{ID: id}
	}
	return c, nil
}

func (r *fakeCarRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id car.ID) (*car.Car, error) {
	return r.Get(ctx, tx, id)
}

func (r *fakeCarRepo) GetAll(_ context.Context, _ pgx.Tx) ([]*car.Car, error) {
	out := make([]*car.Car, 0, len(r.cars))
	for _, c := range r.cars {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCarRepo) FindByLicensePlate(_ context.Context, _ pgx.Tx, plate string) (*car.Car, error) {
	for _, c := range r.cars {
		if c.LicensePlate != nil && *c.LicensePlate == plate {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCarRepo) Insert(_ context.Context, _ pgx.Tx, c *car.Car) error {
	c.ID = car.ID(len(r.cars) + 1)
	r.cars[c.ID] = c
	return nil
}

func (r *fakeCarRepo) Update(_ context.Context, _ pgx.Tx, c *car.Car) error {
	r.cars[c.ID] = c
	return nil
}

func newTestService(repo *fakeRepo, carRepo *fakeCarRepo, now time.Time) Service {
	return NewService(repo, carRepo, stubConn{}, fixedClock{now: now})
}

func testCar() *car.Car {
	return &car.Car{
		ID:       1,
		OwnerID:  1,
		Name:     "Audi A3",
		State:    car.StateLocked,
		FuelType: car.FuelPetrol,
	}
}

func TestServiceGet(t *testing.T) {
	repo := newFakeRepo(&Booking{
		ID: 3, CarID: 1, RenterID: 2,
		StartDate: date(1), EndDate: date(10), State: StatePending,
	})
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(1))

	b, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, ID(3), b.ID)
	require.Equal(t, StatePending, b.State)
}

func TestServiceGetNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeCarRepo(testCar()), date(1))

	_, err := svc.Get(context.Background(), 42)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, ID(42), notFound.ID)
}

func TestServiceCreate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(1))

	b, err := svc.Create(context.Background(), CreateRequest{
		CarID:     1,
		RenterID:  2,
		StartDate: date(1),
		EndDate:   date(10),
	})
	require.NoError(t, err)
	require.NotZero(t, b.ID)
	require.Equal(t, StatePending, b.State)
	require.Equal(t, car.ID(1), b.CarID)
	require.Equal(t, user.ID(2), b.RenterID)
	require.Len(t, repo.bookings, 1)
}

func TestServiceCreateCarNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeCarRepo(), date(1))

	_, err := svc.Create(context.Background(), CreateRequest{
		CarID:     9,
		RenterID:  2,
		StartDate: date(1),
		EndDate:   date(10),
	})
	var notFound *car.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Empty(t, repo.bookings)
}

func TestServiceCreateInvalidRange(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeCarRepo(testCar()), date(1))

	_, err := svc.Create(context.Background(), CreateRequest{
		CarID:     1,
		RenterID:  2,
		StartDate: date(10),
		EndDate:   date(10),
	})
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestServiceCreateDateConflict(t *testing.T) {
	repo := newFakeRepo(&Booking{
		ID: 1, CarID: 1, RenterID: 3,
		StartDate: date(1), EndDate: date(10), State: StateAccepted,
	})
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(1))

	_, err := svc.Create(context.Background(), CreateRequest{
		CarID:     1,
		RenterID:  2,
		StartDate: date(5),
		EndDate:   date(15),
	})
	require.ErrorIs(t, err, ErrDateConflict)
	require.Len(t, repo.bookings, 1)
}

func TestServiceCreateIgnoresPendingOverlap(t *testing.T) {
	repo := newFakeRepo(&Booking{
		ID: 1, CarID: 1, RenterID: 3,
		StartDate: date(1), EndDate: date(10), State: StatePending,
	})
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(1))

	b, err := svc.Create(context.Background(), CreateRequest{
		CarID:     1,
		RenterID:  2,
		StartDate: date(5),
		EndDate:   date(15),
	})
	require.NoError(t, err)
	require.Equal(t, StatePending, b.State)
	require.Len(t, repo.bookings, 2)
}

func statePtr(s State) *State { return &s }

func TestServiceUpdateAccept(t *testing.T) {
	repo := newFakeRepo(&Booking{
		ID: 1, CarID: 1, RenterID: 2,
		StartDate: date(1), EndDate: date(10), State: StatePending,
	})
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(1))

	b, err := svc.Update(context.Background(), 1, UpdateRequest{State: statePtr(StateAccepted)})
	require.NoError(t, err)
	require.Equal(t, ID(1), b.ID)
	require.Equal(t, StateAccepted, b.State)
	require.Equal(t, StateAccepted, repo.bookings[1].State)
}

func TestServiceUpdateAcceptConflict(t *testing.T) {
	// Two pending requests overlap; once one is accepted, accepting the other
	// must fail the availability re-check.
	repo := newFakeRepo(
		&Booking{
			ID: 1, CarID: 1, RenterID: 2,
			StartDate: date(1), EndDate: date(10), State: StateAccepted,
		},
		&Booking{
			ID: 2, CarID: 1, RenterID: 3,
			StartDate: date(5), EndDate: date(15), State: StatePending,
		},
	)
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(1))

	_, err := svc.Update(context.Background(), 2, UpdateRequest{State: statePtr(StateAccepted)})
	require.ErrorIs(t, err, ErrDateConflict)
	require.Equal(t, StatePending, repo.bookings[2].State)
}

func TestServiceUpdateIllegalTransition(t *testing.T) {
	repo := newFakeRepo(&Booking{
		ID: 1, CarID: 1, RenterID: 2,
		StartDate: date(1), EndDate: date(10), State: StatePending,
	})
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(1))

	_, err := svc.Update(context.Background(), 1, UpdateRequest{State: statePtr(StateReturned)})
	var invalid *InvalidStateChangeError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, StatePending, invalid.From)
	require.Equal(t, StateReturned, invalid.To)
	require.Equal(t, StatePending, repo.bookings[1].State)
}

func TestServiceUpdateUnknownState(t *testing.T) {
	repo := newFakeRepo(&Booking{
		ID: 1, CarID: 1, RenterID: 2,
		StartDate: date(1), EndDate: date(10), State: StatePending,
	})
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(1))

	_, err := svc.Update(context.Background(), 1, UpdateRequest{State: statePtr(State("BROKEN"))})
	var invalid *InvalidStateChangeError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "unknown state", invalid.Reason)
}

func TestServiceUpdatePickupInsideWindow(t *testing.T) {
	repo := newFakeRepo(&Booking{
		ID: 1, CarID: 1, RenterID: 2,
		StartDate: date(1), EndDate: date(10), State: StateAccepted,
	})
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(5))

	b, err := svc.Update(context.Background(), 1, UpdateRequest{State: statePtr(StatePickedUp)})
	require.NoError(t, err)
	require.Equal(t, StatePickedUp, b.State)
}

func TestServiceUpdatePickupOutsideWindow(t *testing.T) {
	repo := newFakeRepo(&Booking{
		ID: 1, CarID: 1, RenterID: 2,
		StartDate: date(1), EndDate: date(10), State: StateAccepted,
	})
	// Clock sits past the booked period.
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(11))

	_, err := svc.Update(context.Background(), 1, UpdateRequest{State: statePtr(StatePickedUp)})
	var invalid *InvalidStateChangeError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, StateAccepted, repo.bookings[1].State)
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeCarRepo(testCar()), date(1))

	_, err := svc.Update(context.Background(), 99, UpdateRequest{State: statePtr(StateAccepted)})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, ID(99), notFound.ID)
}

func TestServiceUpdateNilStateIsNoop(t *testing.T) {
	repo := newFakeRepo(&Booking{
		ID: 1, CarID: 1, RenterID: 2,
		StartDate: date(1), EndDate: date(10), State: StatePending,
	})
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(1))

	b, err := svc.Update(context.Background(), 1, UpdateRequest{})
	require.NoError(t, err)
	require.Equal(t, StatePending, b.State)
}

func TestServiceUpdateFullLifecycle(t *testing.T) {
	repo := newFakeRepo(&Booking{
		ID: 1, CarID: 1, RenterID: 2,
		StartDate: date(1), EndDate: date(10), State: StatePending,
	})
	svc := newTestService(repo, newFakeCarRepo(testCar()), date(5))

	for _, next := range []State{StateAccepted, StatePickedUp, StateReturned} {
		b, err := svc.Update(context.Background(), 1, UpdateRequest{State: statePtr(next)})
		require.NoError(t, err)
		require.Equal(t, next, b.State)
	}

	// Terminal: nothing follows RETURNED.
	_, err := svc.Update(context.Background(), 1, UpdateRequest{State: statePtr(StatePickedUp)})
	var invalid *InvalidStateChangeError
	require.ErrorAs(t, err, &invalid)
}
