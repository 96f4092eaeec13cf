package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetloop/car-sharing-backend/internal/auth"
	"github.com/fleetloop/car-sharing-backend/internal/car"
	"github.com/fleetloop/car-sharing-backend/internal/cartype"
	"github.com/fleetloop/car-sharing-backend/internal/pkg/request"
	"github.com/fleetloop/car-sharing-backend/internal/user"
)

type Handler struct {
	service car.Service
}

func NewHandler(service car.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	cars, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cars"})
		return
	}

	items := make([]CarResponse, len(cars))
	for i, item := range cars {
		items[i] = NewCarResponse(item)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
		return
	}

	result, err := h.service.Get(c.Request.Context(), car.ID(req.ID))
	if err != nil {
		var notFound *car.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get car"})
		return
	}

	c.JSON(http.StatusOK, NewCarResponse(result))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCarRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ownerID := auth.GetUserID(c)
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), car.CreateRequest{
		CarTypeID:    cartype.ID(body.CarTypeID),
		Name:         body.Name,
		FuelType:     car.FuelType(body.FuelType),
		Horsepower:   body.Horsepower,
		LicensePlate: body.LicensePlate,
		Info:         body.Info,
	}, user.ID(ownerID))
	if err != nil {
		var carTypeNotFound *cartype.NotFoundError
		var duplicatePlate *car.DuplicateLicensePlateError
		switch {
		case errors.As(err, &carTypeNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &duplicatePlate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, car.ErrEmptyName),
			errors.Is(err, car.ErrInvalidHorsepower),
			errors.Is(err, car.ErrInvalidFuelType),
			errors.Is(err, car.ErrEmptyLicensePlate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create car"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewCarResponse(created))
}

func (h *Handler) Update(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
		return
	}

	var body PatchCarRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	updated, err := h.service.Update(
		c.Request.Context(),
		car.ID(req.ID),
		body.ToUpdateRequest(),
		user.ID(userID),
	)
	if err != nil {
		var notFound *car.NotFoundError
		var accessDenied *car.AccessDeniedError
		var carTypeNotFound *cartype.NotFoundError
		var duplicatePlate *car.DuplicateLicensePlateError
		switch {
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &accessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, car.ErrNoActiveRental):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.As(err, &carTypeNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &duplicatePlate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, car.ErrEmptyName),
			errors.Is(err, car.ErrInvalidHorsepower),
			errors.Is(err, car.ErrInvalidFuelType),
			errors.Is(err, car.ErrInvalidState),
			errors.Is(err, car.ErrEmptyLicensePlate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update car"})
		}
		return
	}

	c.JSON(http.StatusOK, NewCarResponse(updated))
}
