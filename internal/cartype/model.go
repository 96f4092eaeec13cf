package cartype

import (
	"errors"
	"fmt"
	"time"
)

var ErrNameRequired = errors.New("car type name is required")

// ID identifies a car type.
type ID int64

// NotFoundError is returned when a referenced car type does not exist.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("car type %d not found", e.ID)
}

// CarType represents a category of cars (e.g. "Compact", "Van").
type CarType struct {
	ID        ID
	Name      string
	ImageURL  *string
	CreatedAt time.Time
}
