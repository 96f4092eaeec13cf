package http

import (
	"time"

	"github.com/fleetloop/car-sharing-backend/internal/car"
	"github.com/fleetloop/car-sharing-backend/internal/cartype"
)

type CreateCarRequest struct {
	CarTypeID    int64   `json:"car_type_id" binding:"required,min=1"`
	Name         string  `json:"name" binding:"required"`
	FuelType     string  `json:"fuel_type" binding:"required,oneof=PETROL DIESEL ELECTRIC"`
	Horsepower   int     `json:"horsepower" binding:"required,gt=0"`
	LicensePlate *string `json:"license_plate"`
	Info         *string `json:"info"`
}

type PatchCarRequest struct {
	CarTypeID    *int64  `json:"car_type_id" binding:"omitempty,min=1"`
	Name         *string `json:"name"`
	State        *string `json:"state" binding:"omitempty,oneof=LOCKED UNLOCKED"`
	FuelType     *string `json:"fuel_type" binding:"omitempty,oneof=PETROL DIESEL ELECTRIC"`
	Horsepower   *int    `json:"horsepower" binding:"omitempty,gt=0"`
	LicensePlate *string `json:"license_plate"`
	Info         *string `json:"info"`
}

// ToUpdateRequest converts the JSON patch into the service-level patch.
func (r *PatchCarRequest) ToUpdateRequest() car.UpdateRequest {
	req := car.UpdateRequest{
		Name:         r.Name,
		Horsepower:   r.Horsepower,
		LicensePlate: r.LicensePlate,
		Info:         r.Info,
	}
	if r.CarTypeID != nil {
		id := cartype.ID(*r.CarTypeID)
		req.CarTypeID = &id
	}
	if r.State != nil {
		s := car.State(*r.State)
		req.State = &s
	}
	if r.FuelType != nil {
		f := car.FuelType(*r.FuelType)
		req.FuelType = &f
	}
	return req
}

type CarResponse struct {
	ID           int64     `json:"id"`
	CarTypeID    int64     `json:"car_type_id"`
	OwnerID      int64     `json:"owner_id"`
	Name         string    `json:"name"`
	State        string    `json:"state"`
	FuelType     string    `json:"fuel_type"`
	Horsepower   int       `json:"horsepower"`
	LicensePlate *string   `json:"license_plate"`
	Info         *string   `json:"info"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewCarResponse(c *car.Car) CarResponse {
	return CarResponse{
		ID:           int64(c.ID),
		CarTypeID:    int64(c.CarTypeID),
		OwnerID:      int64(c.OwnerID),
		Name:         c.Name,
		State:        string(c.State),
		FuelType:     string(c.FuelType),
		Horsepower:   c.Horsepower,
		LicensePlate: c.LicensePlate,
		Info:         c.Info,
		CreatedAt:    c.CreatedAt,
	}
}
