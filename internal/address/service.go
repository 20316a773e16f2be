package address

import (
	"context"
	"errors"
)

const maxAddressesPerUser = 3

var ErrLimitReached = errors.New("maximum 3 addresses allowed")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string) ([]*Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*Address, error) {
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= maxAddressesPerUser {
		return nil, ErrLimitReached
	}

	// A new default unsets every other default first.
	if in.IsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	addr := &Address{
		UserID:     userID,
		Label:      in.Label,
		Line1:      in.Line1,
		Line2:      in.Line2,
		City:       in.City,
		PostalCode: in.PostalCode,
		RegionID:   in.RegionID,
		Notes:      in.Notes,
		IsDefault:  in.IsDefault,
	}
	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *Service) Update(ctx context.Context, userID string, id int, in CreateInput) (*Address, error) {
	addr, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.IsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	addr.Label = in.Label
	addr.Line1 = in.Line1
	addr.Line2 = in.Line2
	addr.City = in.City
	addr.PostalCode = in.PostalCode
	addr.RegionID = in.RegionID
	addr.Notes = in.Notes
	addr.IsDefault = in.IsDefault

	if err := s.repo.Update(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int) error {
	return s.repo.Delete(ctx, id, userID)
}

// BelongsTo reports whether the address exists and is owned by userID.
// The booking manager uses this for its ownership check.
func (s *Service) BelongsTo(ctx context.Context, id int, userID string) (bool, error) {
	_, err := s.repo.GetByID(ctx, id, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FormatForExport builds the human-readable address string used by CSV
// exports: "line1, line2, postal city".
func FormatForExport(a *Address) string {
	if a == nil {
		return ""
	}
	out := a.Line1
	if a.Line2 != nil && *a.Line2 != "" {
		out += ", " + *a.Line2
	}
	return out + ", " + a.PostalCode + " " + a.City
}
