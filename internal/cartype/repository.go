package cartype

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, ct *CarType) error
	GetByID(ctx context.Context, id ID) (*CarType, error)
	GetAll(ctx context.Context) ([]*CarType, error)
	Update(ctx context.Context, ct *CarType) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, ct *CarType) error {
	const query = `
		INSERT INTO public.car_types (name, image_url)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query, ct.Name, ct.ImageURL).
		Scan(&ct.ID, &ct.CreatedAt); err != nil {
		return fmt.Errorf("create car type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id ID) (*CarType, error) {
	const query = `
		SELECT id, name, image_url, created_at
		FROM public.car_types
		WHERE id = $1
	`
	var ct CarType
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&ct.ID, &ct.Name, &ct.ImageURL, &ct.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("get car type failed: %w", err)
	}
	return &ct, nil
}

func (r *pgxRepository) GetAll(ctx context.Context) ([]*CarType, error) {
	const query = `
		SELECT id, name, image_url, created_at
		FROM public.car_types
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list car types failed: %w", err)
	}
	defer rows.Close()

	var result []*CarType
	for rows.Next() {
		var ct CarType
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.ImageURL, &ct.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan car type failed: %w", err)
		}
		result = append(result, &ct)
	}
	return result, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, ct *CarType) error {
	const query = `
		UPDATE public.car_types
		SET name = $1, image_url = $2
		WHERE id = $3
	`
	tag, err := r.pool.Exec(ctx, query, ct.Name, ct.ImageURL, ct.ID)
	if err != nil {
		return fmt.Errorf("update car type failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{ID: ct.ID}
	}
	return nil
}
