package region

import (
	"context"
	"errors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Region, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Region, error) {
	existing, err := s.repo.GetByName(ctx, in.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	reg := &Region{
		Name:            in.Name,
		Description:     in.Description,
		AvailableLunch:  in.AvailableLunch,
		AvailableDinner: in.AvailableDinner,
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *Service) Update(ctx context.Context, id int, in CreateInput) (*Region, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, in.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != reg.ID {
		return nil, ErrDuplicateName
	}

	reg.Name = in.Name
	reg.Description = in.Description
	reg.AvailableLunch = in.AvailableLunch
	reg.AvailableDinner = in.AvailableDinner

	if err := s.repo.Update(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
