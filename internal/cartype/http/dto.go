package http

import (
	"time"

	"github.com/fleetloop/car-sharing-backend/internal/cartype"
)

type CreateCarTypeRequest struct {
	Name     string  `json:"name" binding:"required"`
	ImageURL *string `json:"image_url" binding:"omitempty,url"`
}

type PatchCarTypeRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"image_url" binding:"omitempty,url"`
}

type CarTypeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCarTypeResponse(ct *cartype.CarType) CarTypeResponse {
	return CarTypeResponse{
		ID:        int64(ct.ID),
		Name:      ct.Name,
		ImageURL:  ct.ImageURL,
		CreatedAt: ct.CreatedAt,
	}
}
