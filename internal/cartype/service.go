package cartype

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name     string
	ImageURL *string
}

type UpdateRequest struct {
	Name     *string
	ImageURL *string
}

// Service defines car-type business operations. Get is the lookup other
// modules (cars) delegate to when validating a car type reference.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CarType, error)
	Get(ctx context.Context, id ID) (*CarType, error)
	GetAll(ctx context.Context) ([]*CarType, error)
	Update(ctx context.Context, id ID, req UpdateRequest) (*CarType, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*CarType, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	ct := &CarType{
		Name:     req.Name,
		ImageURL: req.ImageURL,
	}

	if err := s.repo.Create(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *service) Get(ctx context.Context, id ID) (*CarType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetAll(ctx context.Context) ([]*CarType, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Update(ctx context.Context, id ID, req UpdateRequest) (*CarType, error) {
	ct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		ct.Name = *req.Name
	}
	if req.ImageURL != nil {
		ct.ImageURL = req.ImageURL
	}

	if err := s.repo.Update(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}
