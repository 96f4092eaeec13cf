package car

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository persists cars. All methods run against the provided transaction
// so that a service operation stays atomic.
type Repository interface {
	// Get loads a car, failing with *NotFoundError when absent.
	Get(ctx context.Context, tx pgx.Tx, id ID) (*Car, error)
	// GetForUpdate loads a car with a row-level lock, serializing concurrent
	// booking attempts for the same car until the transaction resolves.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id ID) (*Car, error)
	GetAll(ctx context.Context, tx pgx.Tx) ([]*Car, error)
	// FindByLicensePlate returns (nil, nil) when no car carries the plate.
	FindByLicensePlate(ctx context.Context, tx pgx.Tx, plate string) (*Car, error)
	Insert(ctx context.Context, tx pgx.Tx, c *Car) error
	Update(ctx context.Context, tx pgx.Tx, c *Car) error
}

const carColumns = "id, car_type_id, owner_id, name, state, fuel_type, horsepower, license_plate, info, created_at"

type pgxRepository struct{}

func NewPgxRepository() Repository {
	return &pgxRepository{}
}

func scanCar(row pgx.Row) (*Car, error) {
	var c Car
	err := row.Scan(
		&c.ID, &c.CarTypeID, &c.OwnerID, &c.Name, &c.State,
		&c.FuelType, &c.Horsepower, &c.LicensePlate, &c.Info, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgxRepository) Get(ctx context.Context, tx pgx.Tx, id ID) (*Car, error) {
	query := "SELECT " + carColumns + " FROM public.cars WHERE id = $1"
	c, err := scanCar(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("get car failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id ID) (*Car, error) {
	query := "SELECT " + carColumns + " FROM public.cars WHERE id = $1 FOR UPDATE"
	c, err := scanCar(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("lock car row failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) GetAll(ctx context.Context, tx pgx.Tx) ([]*Car, error) {
	query := "SELECT " + carColumns + " FROM public.cars ORDER BY id"
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cars failed: %w", err)
	}
	defer rows.Close()

	var result []*Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan car failed: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *pgxRepository) FindByLicensePlate(ctx context.Context, tx pgx.Tx, plate string) (*Car, error) {
	query := "SELECT " + carColumns + " FROM public.cars WHERE license_plate = $1"
	c, err := scanCar(tx.QueryRow(ctx, query, plate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find car by license plate failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) Insert(ctx context.Context, tx pgx.Tx, c *Car) error {
	const query = `
		INSERT INTO public.cars (car_type_id, owner_id, name, state, fuel_type, horsepower, license_plate, info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := tx.QueryRow(ctx, query,
		c.CarTypeID, c.OwnerID, c.Name, c.State, c.FuelType, c.Horsepower, c.LicensePlate, c.Info,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniquePlateViolation(err) {
			return &DuplicateLicensePlateError{LicensePlate: derefPlate(c.LicensePlate)}
		}
		return fmt.Errorf("insert car failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, tx pgx.Tx, c *Car) error {
	const query = `
		UPDATE public.cars
		SET car_type_id = $1, name = $2, state = $3, fuel_type = $4, horsepower = $5, license_plate = $6, info = $7
		WHERE id = $8
	`
	tag, err := tx.Exec(ctx, query,
		c.CarTypeID, c.Name, c.State, c.FuelType, c.Horsepower, c.LicensePlate, c.Info, c.ID,
	)
	if err != nil {
		if isUniquePlateViolation(err) {
			return &DuplicateLicensePlateError{LicensePlate: derefPlate(c.LicensePlate)}
		}
		return fmt.Errorf("update car failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{ID: c.ID}
	}
	return nil
}

// isUniquePlateViolation detects the unique index on license_plate firing.
// The pre-insert FindByLicensePlate check is advisory; this is the backstop
// under concurrency.
func isUniquePlateViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func derefPlate(plate *string) string {
	if plate == nil {
		return ""
	}
	return *plate
}
