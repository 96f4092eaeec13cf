package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/fleetloop/car-sharing-backend/internal/car"
	"github.com/fleetloop/car-sharing-backend/internal/user"
)

// Repository persists bookings. All methods run against the provided
// transaction; the service decides the transaction boundary.
type Repository interface {
	// Get loads a booking, failing with *NotFoundError when absent.
	Get(ctx context.Context, tx pgx.Tx, id ID) (*Booking, error)
	GetAll(ctx context.Context, tx pgx.Tx) ([]*Booking, error)
	// GetCarBookings returns every booking for the car, regardless of state.
	GetCarBookings(ctx context.Context, tx pgx.Tx, carID car.ID) ([]*Booking, error)
	Create(ctx context.Context, tx pgx.Tx, b *Booking) error
	Update(ctx context.Context, tx pgx.Tx, b *Booking) error

	// HasActivePickedUpBooking reports whether the renter holds the car
	// under a PICKED_UP booking whose date range covers the given time.
	// Satisfies car.RentalLookup.
	HasActivePickedUpBooking(ctx context.Context, tx pgx.Tx, carID car.ID, renterID user.ID, at time.Time) (bool, error)
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const bookingColumns = "id, car_id, renter_id, start_date, end_date, state, created_at, updated_at"

type pgxRepository struct{}

func NewPgxRepository() Repository {
	return &pgxRepository{}
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.CarID, &b.RenterID, &b.StartDate, &b.EndDate,
		&b.State, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Get(ctx context.Context, tx pgx.Tx, id ID) (*Booking, error) {
	query := "SELECT " + bookingColumns + " FROM public.bookings WHERE id = $1"
	b, err := scanBooking(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) GetAll(ctx context.Context, tx pgx.Tx) ([]*Booking, error) {
	query := "SELECT " + bookingColumns + " FROM public.bookings ORDER BY id"
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *pgxRepository) GetCarBookings(ctx context.Context, tx pgx.Tx, carID car.ID) ([]*Booking, error) {
	query, args, err := psql.Select(
		"id", "car_id", "renter_id", "start_date", "end_date", "state", "created_at", "updated_at",
	).
		From("public.bookings").
		Where(squirrel.Eq{"car_id": carID}).
		OrderBy("start_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build car bookings query failed: %w", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list car bookings failed: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]*Booking, error) {
	var result []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *pgxRepository) Create(ctx context.Context, tx pgx.Tx, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("car_id", "renter_id", "start_date", "end_date", "state").
		Values(b.CarID, b.RenterID, b.StartDate, b.EndDate, b.State).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, tx pgx.Tx, b *Booking) error {
	query, args, err := psql.Update("public.bookings").
		Set("start_date", b.StartDate).
		Set("end_date", b.EndDate).
		Set("state", b.State).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{ID: b.ID}
	}
	return nil
}

func (r *pgxRepository) HasActivePickedUpBooking(ctx context.Context, tx pgx.Tx, carID car.ID, renterID user.ID, at time.Time) (bool, error) {
	sub := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"car_id": carID}).
		Where(squirrel.Eq{"renter_id": renterID}).
		Where(squirrel.Eq{"state": StatePickedUp}).
		Where(squirrel.LtOrEq{"start_date": at}).
		Where(squirrel.GtOrEq{"end_date": at})

	sql, args, err := sub.ToSql()
	if err != nil {
		return false, fmt.Errorf("build active rental query failed: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active rental failed: %w", err)
	}
	return exists, nil
}
