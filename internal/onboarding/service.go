package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tanjilh136/mealprep/internal/booking"
	"github.com/tanjilh136/mealprep/internal/calendar"
	"github.com/tanjilh136/mealprep/internal/dishtype"
	"github.com/tanjilh136/mealprep/internal/menu"
)

var (
	ErrNotWednesday      = errors.New("week_start must be a Wednesday (service week start)")
	ErrDayCount          = errors.New("exactly 7 day selections are required")
	ErrClientTypeInvalid = errors.New("client_type must be 'weekly' or 'subscriber'")
	ErrClientTypeNotSet  = errors.New("client type has not been chosen yet")
	ErrIBANSubscriber    = errors.New("IBAN can only be set for subscriber drafts")
	ErrInvalidIBAN       = errors.New("invalid IBAN")
)

// MenuReader is the slice of the menu service the engine needs.
type MenuReader interface {
	DayFor(ctx context.Context, date time.Time) (*menu.MenuDay, error)
}

// Booker is the slice of the booking manager used by week synthesis.
// Going through it keeps slot, cutoff and capacity rules in force for
// generated bookings too.
type Booker interface {
	Create(ctx context.Context, userID string, in booking.Input) (*booking.Booking, error)
	HasActiveOnDate(ctx context.Context, userID string, date time.Time) (bool, error)
}

type Service struct {
	repo  Repository
	menus MenuReader
}

func NewService(repo Repository, menus MenuReader) *Service {
	return &Service{repo: repo, menus: menus}
}

// menuDishes returns the A/B dish names serving a date, empty when the
// rotation day is unconfigured (which classifies as meat downstream).
func (s *Service) menuDishes(ctx context.Context, date time.Time) (string, string, error) {
	m, err := s.menus.DayFor(ctx, date)
	if errors.Is(err, menu.ErrNotFound) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	return m.DishA, m.DishB, nil
}

// behaviourForDay derives the (meal1, meal2) preference pair:
// meals=0 -> blank/blank; meals=2 -> classify dishA/dishB (implicit A+B);
// meals=1 -> classify the chosen dish, second slot blank.
func (s *Service) behaviourForDay(ctx context.Context, date time.Time, meals int, dishChoice string, dayIndex int) (DayPrefs, error) {
	if meals <= 0 {
		return DayPrefs{Meal1: dishtype.Blank, Meal2: dishtype.Blank}, nil
	}

	dishA, dishB, err := s.menuDishes(ctx, date)
	if err != nil {
		return DayPrefs{}, err
	}

	if meals == 2 {
		return DayPrefs{Meal1: dishtype.Infer(dishA), Meal2: dishtype.Infer(dishB)}, nil
	}

	if dishChoice != booking.DishA && dishChoice != booking.DishB {
		return DayPrefs{}, fmt.Errorf(
			"days[%d]: dish_choice must be 'A' or 'B' when meals=1 (got %q)",
			dayIndex, dishChoice,
		)
	}

	chosen := dishA
	if dishChoice == booking.DishB {
		chosen = dishB
	}
	return DayPrefs{Meal1: dishtype.Infer(chosen), Meal2: dishtype.Blank}, nil
}

// --------------------------------------------------
// First-week submission
// --------------------------------------------------

// SubmitFirstWeek validates the Wed..Tue selections, derives the behaviour
// grid and persists draft + cells + selections atomically.
func (s *Service) SubmitFirstWeek(ctx context.Context, in FirstWeekInput) (*FirstWeekResult, error) {
	weekStart, err := time.ParseInLocation("2006-01-02", in.WeekStart, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("week_start must be YYYY-MM-DD")
	}
	if weekStart.Weekday() != time.Wednesday {
		return nil, ErrNotWednesday
	}
	if len(in.Days) != 7 {
		return nil, ErrDayCount
	}

	draftID := uuid.New().String()

	grid := make(map[string]DayPrefs, 7)
	cells := make([]BehaviorCell, 0, 14)
	selections := make([]FirstWeekSelection, 0, 7)

	for i, day := range in.Days {
		selDate, err := time.ParseInLocation("2006-01-02", day.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("days[%d].date must be YYYY-MM-DD", i)
		}

		expected := weekStart.AddDate(0, 0, i)
		if !selDate.Equal(expected) {
			return nil, fmt.Errorf(
				"days[%d].date must be %s (got %s)",
				i, expected.Format("2006-01-02"), selDate.Format("2006-01-02"),
			)
		}

		prefs, err := s.behaviourForDay(ctx, selDate, day.Meals, day.DishChoice, i)
		if err != nil {
			return nil, err
		}

		grid[ServiceDays[i]] = prefs
		cells = append(cells,
			BehaviorCell{DraftID: draftID, WeekdayIndex: i, Slot: 1, Pref: prefs.Meal1},
			BehaviorCell{DraftID: draftID, WeekdayIndex: i, Slot: 2, Pref: prefs.Meal2},
		)
		selections = append(selections, FirstWeekSelection{
			DraftID:      draftID,
			WeekdayIndex: i,
			DeliveryDate: selDate,
			Meals:        day.Meals,
			DishChoice:   day.DishChoice,
			TimeBlock:    day.TimeBlock,
			AddressID:    day.AddressID,
		})
	}

	draft := &Draft{ID: draftID, WeekStart: weekStart}
	if err := s.repo.CreateDraft(ctx, draft, cells, selections); err != nil {
		return nil, err
	}

	return &FirstWeekResult{DraftID: draftID, WeekStart: weekStart, Grid: grid}, nil
}

// --------------------------------------------------
// Client type + explanation
// --------------------------------------------------

// SetClientType stores weekly or subscriber on an existing draft.
// Idempotent: repeating the same choice is not an error.
func (s *Service) SetClientType(ctx context.Context, draftID, clientType string) error {
	if clientType != ClientTypeWeekly && clientType != ClientTypeSubscriber {
		return ErrClientTypeInvalid
	}
	if _, err := s.repo.GetDraft(ctx, draftID); err != nil {
		return err
	}
	return s.repo.SetClientType(ctx, draftID, clientType)
}

// Explain returns the static rules payload for the draft's client type.
func (s *Service) Explain(ctx context.Context, draftID string) (*Explanation, error) {
	draft, err := s.repo.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.ClientType == "" {
		return nil, ErrClientTypeNotSet
	}

	if draft.ClientType == ClientTypeSubscriber {
		return &Explanation{
			ClientType: ClientTypeSubscriber,
			Title:      "How your subscription works",
			Sections: []ExplainSection{
				{Type: "summary", Content: "Your first-week choices become your weekly pattern. Every new service week is booked for you automatically."},
				{Type: "rules", Items: []string{
					"The service week runs Wednesday to Tuesday.",
					"Changes close Monday 23:59 before each week starts.",
					"Between 3 and 14 meals per week.",
					"You can adjust any generated booking until its week's cutoff.",
				}},
				{Type: "payment_notice", Content: "Your weekly total is collected by direct debit after each cutoff."},
				{Type: "iban_required", Content: "We need your IBAN to set up the direct debit."},
			},
		}, nil
	}

	return &Explanation{
		ClientType: ClientTypeWeekly,
		Title:      "How weekly booking works",
		Sections: []ExplainSection{
			{Type: "summary", Content: "You book each service week yourself. Nothing is booked automatically."},
			{Type: "rules", Items: []string{
				"The service week runs Wednesday to Tuesday.",
				"Changes close Monday 23:59 before each week starts.",
				"Between 3 and 14 meals per week.",
			}},
			{Type: "payment_notice", Content: "You pay per week when you confirm your bookings."},
		},
	}, nil
}

// --------------------------------------------------
// IBAN
// --------------------------------------------------

// normalizeIBAN strips spaces and uppercases.
func normalizeIBAN(iban string) string {
	out := make([]byte, 0, len(iban))
	for i := 0; i < len(iban); i++ {
		c := iban[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// validIBANShape is a structural check only: length 15-34, two letters,
// two alphanumerics. No mod-97 checksum.
func validIBANShape(iban string) bool {
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	for i := 0; i < 2; i++ {
		if iban[i] < 'A' || iban[i] > 'Z' {
			return false
		}
	}
	for i := 2; i < 4; i++ {
		c := iban[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	for i := 4; i < len(iban); i++ {
		c := iban[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// SetIBAN stores a normalized IBAN on a subscriber draft.
func (s *Service) SetIBAN(ctx context.Context, draftID, iban string) (string, error) {
	draft, err := s.repo.GetDraft(ctx, draftID)
	if err != nil {
		return "", err
	}
	if draft.ClientType != ClientTypeSubscriber {
		return "", ErrIBANSubscriber
	}

	normalized := normalizeIBAN(iban)
	if !validIBANShape(normalized) {
		return "", ErrInvalidIBAN
	}

	if err := s.repo.SetIBAN(ctx, draftID, normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// --------------------------------------------------
// Subscriber week synthesis
// --------------------------------------------------

// EnsureWeek replays the draft's first-week template onto the service week
// starting at weekStart, creating any bookings that do not exist yet.
// Safe to call repeatedly: days with an existing active booking are
// skipped. The stored preference captures intent (meat/fish); the concrete
// dish is re-derived from whatever the rotation serves that date.
// Returns the number of bookings created.
func (s *Service) EnsureWeek(ctx context.Context, booker Booker, userID, draftID string, weekStart time.Time) (int, error) {
	if weekStart.Weekday() != time.Wednesday {
		return 0, ErrNotWednesday
	}

	draft, err := s.repo.GetDraft(ctx, draftID)
	if err != nil {
		return 0, err
	}
	if draft.ClientType != ClientTypeSubscriber {
		return 0, fmt.Errorf("week synthesis is only available for subscriber drafts")
	}

	selections, err := s.repo.ListSelections(ctx, draftID)
	if err != nil {
		return 0, err
	}
	cells, err := s.repo.ListCells(ctx, draftID)
	if err != nil {
		return 0, err
	}

	prefFor := func(weekdayIndex, slot int) string {
		for _, c := range cells {
			if c.WeekdayIndex == weekdayIndex && c.Slot == slot {
				return c.Pref
			}
		}
		return dishtype.Blank
	}

	weekStart = calendar.Date(weekStart)
	created := 0

	for _, sel := range selections {
		if sel.Meals <= 0 {
			continue
		}
		// Without a time block and address there is nothing bookable in
		// the template.
		if sel.TimeBlock == "" || sel.AddressID == nil {
			continue
		}

		target := weekStart.AddDate(0, 0, sel.WeekdayIndex)

		exists, err := booker.HasActiveOnDate(ctx, userID, target)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		var choice string
		switch sel.Meals {
		case 2:
			choice = booking.DishBoth
		case 1:
			pref := prefFor(sel.WeekdayIndex, 1)
			if pref == dishtype.Blank {
				continue
			}

			dishA, dishB, err := s.menuDishes(ctx, target)
			if err != nil {
				return created, err
			}

			// Pick the side matching the stored intent; side A when
			// neither matches.
			switch pref {
			case dishtype.Infer(dishA):
				choice = booking.DishA
			case dishtype.Infer(dishB):
				choice = booking.DishB
			default:
				choice = booking.DishA
			}
		}

		_, err = booker.Create(ctx, userID, booking.Input{
			AddressID:    *sel.AddressID,
			DeliveryDate: target.Format("2006-01-02"),
			TimeBlock:    sel.TimeBlock,
			Meals:        sel.Meals,
			DishChoice:   choice,
		})
		if err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}
