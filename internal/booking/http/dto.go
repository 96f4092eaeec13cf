package http

import (
	"time"

	"github.com/fleetloop/car-sharing-backend/internal/booking"
)

type CreateBookingRequest struct {
	CarID     int64     `json:"car_id" binding:"required,min=1"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.EndDate.After(r.StartDate) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

type UpdateBookingRequest struct {
	State string `json:"state" binding:"required,oneof=PENDING ACCEPTED DECLINED PICKED_UP RETURNED"`
}

type BookingResponse struct {
	ID        int64     `json:"id"`
	CarID     int64     `json:"car_id"`
	RenterID  int64     `json:"renter_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        int64(b.ID),
		CarID:     int64(b.CarID),
		RenterID:  int64(b.RenterID),
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		State:     string(b.State),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
