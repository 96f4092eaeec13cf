package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetloop/car-sharing-backend/internal/auth"
	"github.com/fleetloop/car-sharing-backend/internal/booking"
	"github.com/fleetloop/car-sharing-backend/internal/car"
	"github.com/fleetloop/car-sharing-backend/internal/pkg/request"
	"github.com/fleetloop/car-sharing-backend/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	bookings, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.Get(c.Request.Context(), booking.ID(req.ID))
	if err != nil {
		var notFound *booking.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get booking"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	renterID := auth.GetUserID(c)
	if renterID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		CarID:     car.ID(body.CarID),
		RenterID:  user.ID(renterID),
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
	})
	if err != nil {
		var carNotFound *car.NotFoundError
		switch {
		case errors.As(err, &carNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrDateConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrInvalidTimeRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	state := booking.State(body.State)
	b, err := h.service.Update(c.Request.Context(), booking.ID(req.ID), booking.UpdateRequest{
		State: &state,
	})
	if err != nil {
		var notFound *booking.NotFoundError
		var invalidChange *booking.InvalidStateChangeError
		switch {
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &invalidChange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrDateConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
