package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetloop/car-sharing-backend/internal/cartype"
	"github.com/fleetloop/car-sharing-backend/internal/pkg/request"
)

type Handler struct {
	service cartype.Service
}

func NewHandler(service cartype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	carTypes, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list car types"})
		return
	}

	items := make([]CarTypeResponse, len(carTypes))
	for i, ct := range carTypes {
		items[i] = NewCarTypeResponse(ct)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car type id"})
		return
	}

	ct, err := h.service.Get(c.Request.Context(), cartype.ID(req.ID))
	if err != nil {
		var notFound *cartype.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get car type"})
		return
	}

	c.JSON(http.StatusOK, NewCarTypeResponse(ct))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCarTypeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ct, err := h.service.Create(c.Request.Context(), cartype.CreateRequest{
		Name:     body.Name,
		ImageURL: body.ImageURL,
	})
	if err != nil {
		if errors.Is(err, cartype.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create car type"})
		return
	}

	c.JSON(http.StatusCreated, NewCarTypeResponse(ct))
}

func (h *Handler) Update(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car type id"})
		return
	}

	var body PatchCarTypeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ct, err := h.service.Update(c.Request.Context(), cartype.ID(req.ID), cartype.UpdateRequest{
		Name:     body.Name,
		ImageURL: body.ImageURL,
	})
	if err != nil {
		var notFound *cartype.NotFoundError
		switch {
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, cartype.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update car type"})
		}
		return
	}

	c.JSON(http.StatusOK, NewCarTypeResponse(ct))
}
