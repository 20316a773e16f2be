package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tanjilh136/mealprep/internal/calendar"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Admin: create or replace a rotation day
// --------------------------------------------------
func (s *Service) UpsertDay(ctx context.Context, in UpsertInput) (*MenuDay, error) {
	if in.DayNumber < 1 || in.DayNumber > 14 {
		return nil, errors.New("day_number must be between 1 and 14")
	}
	if in.DishA == "" || in.DishB == "" {
		return nil, errors.New("dish_a and dish_b are required")
	}

	day := &MenuDay{
		DayNumber: in.DayNumber,
		DishA:     in.DishA,
		DishB:     in.DishB,
		CaloriesA: in.CaloriesA,
		CaloriesB: in.CaloriesB,
	}
	if err := s.repo.Upsert(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

func (s *Service) GetDay(ctx context.Context, dayNumber int) (*MenuDay, error) {
	return s.repo.GetByDayNumber(ctx, dayNumber)
}

func (s *Service) ListRotation(ctx context.Context) ([]*MenuDay, error) {
	return s.repo.List(ctx)
}

// --------------------------------------------------
// Rotation lookups
// --------------------------------------------------

// DayFor returns the rotation day serving the given calendar date, or
// ErrNotFound when that rotation slot is not configured yet.
func (s *Service) DayFor(ctx context.Context, date time.Time) (*MenuDay, error) {
	return s.repo.GetByDayNumber(ctx, calendar.RotationDayNumber(date))
}

// PublicWeek returns the Wed-Tue menu for the service week containing
// weekFor. Unconfigured rotation days come back with nil dish names.
func (s *Service) PublicWeek(ctx context.Context, weekFor time.Time) ([]PublicDay, error) {
	weekStart := calendar.ServiceWeekStart(weekFor)

	out := make([]PublicDay, 0, 7)
	for i := 0; i < 7; i++ {
		current := weekStart.AddDate(0, 0, i)

		day := PublicDay{
			Date:    current,
			Weekday: current.Weekday().String(),
		}

		m, err := s.repo.GetByDayNumber(ctx, calendar.RotationDayNumber(current))
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if m != nil {
			dishA, dishB := m.DishA, m.DishB
			day.DishA = PublicDish{Name: &dishA, Calories: m.CaloriesA}
			day.DishB = PublicDish{Name: &dishB, Calories: m.CaloriesB}
		}

		out = append(out, day)
	}
	return out, nil
}

// --------------------------------------------------
// Dish name resolution (kitchen + exports)
// --------------------------------------------------

// ResolveDishName maps a booking's (date, meals, choice) to human-readable
// dish text via the rotation. Falls back to the raw choice code when the
// rotation day is not configured.
func (s *Service) ResolveDishName(ctx context.Context, deliveryDate time.Time, meals int, dishChoice string) string {
	m, err := s.DayFor(ctx, deliveryDate)
	if err != nil || m == nil {
		return dishChoice
	}

	if meals == 2 {
		// 2 meals always means A + B.
		return fmt.Sprintf("%s + %s", m.DishA, m.DishB)
	}

	switch dishChoice {
	case "A":
		return m.DishA
	case "B":
		return m.DishB
	}
	return ""
}
