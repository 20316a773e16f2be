package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tanjilh136/mealprep/internal/calendar"
	"github.com/tanjilh136/mealprep/internal/config"
	"github.com/tanjilh136/mealprep/internal/pricing"
)

var (
	ErrInvalidDate       = errors.New("delivery_date must be YYYY-MM-DD")
	ErrInvalidTimeBlock  = errors.New("invalid time block")
	ErrInvalidMeals      = errors.New("each booking must be 1 or 2 meals")
	ErrInvalidAddress    = errors.New("invalid address")
	ErrInvalidDishChoice = errors.New("invalid dish choice")
	ErrCutoffPassed      = errors.New("cutoff passed for this service week")
	ErrQuotaExceeded     = errors.New("weekly meal limit exceeded")
	ErrNotActive         = errors.New("booking is not active")
)

// AddressChecker is the slice of the address service the booking manager
// needs: the ownership check.
type AddressChecker interface {
	BelongsTo(ctx context.Context, addressID int, userID string) (bool, error)
}

// userLocks serializes mutations per user so two concurrent calls for the
// same user cannot both pass the weekly capacity check before either
// commits.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (u *userLocks) lock(userID string) func() {
	u.mu.Lock()
	if u.locks == nil {
		u.locks = make(map[string]*sync.Mutex)
	}
	l, ok := u.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		u.locks[userID] = l
	}
	u.mu.Unlock()

	l.Lock()
	return l.Unlock
}

type Service struct {
	repo      Repository
	addresses AddressChecker
	slots     *calendar.SlotCatalog

	locks userLocks

	// now is swapped out by tests to pin the cutoff clock.
	now func() time.Time
}

func NewService(repo Repository, addresses AddressChecker, slots *calendar.SlotCatalog) *Service {
	return &Service{
		repo:      repo,
		addresses: addresses,
		slots:     slots,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetNow overrides the service clock. Tests use it to pin the cutoff check.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// Slots returns the delivery time-block catalog.
func (s *Service) Slots() []string {
	return s.slots.Labels()
}

// --------------------------------------------------
// Validation helpers
// --------------------------------------------------

func (s *Service) validateInput(ctx context.Context, userID string, in *Input) (time.Time, error) {
	deliveryDate, err := time.ParseInLocation("2006-01-02", in.DeliveryDate, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	if !s.slots.Contains(in.TimeBlock) {
		return time.Time{}, ErrInvalidTimeBlock
	}
	if in.Meals != 1 && in.Meals != 2 {
		return time.Time{}, ErrInvalidMeals
	}

	switch in.Meals {
	case 1:
		if in.DishChoice != DishA && in.DishChoice != DishB {
			return time.Time{}, fmt.Errorf("%w: 1 meal requires dish choice A or B", ErrInvalidDishChoice)
		}
	case 2:
		// Two meals always means one of each dish.
		if in.DishChoice != "" && in.DishChoice != DishBoth {
			return time.Time{}, fmt.Errorf("%w: 2 meals means A+B", ErrInvalidDishChoice)
		}
		in.DishChoice = DishBoth
	}

	ok, err := s.addresses.BelongsTo(ctx, in.AddressID, userID)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, ErrInvalidAddress
	}

	return calendar.Date(deliveryDate), nil
}

func (s *Service) checkCutoff(weekStart time.Time) error {
	if s.now().After(calendar.CutoffInstant(weekStart)) {
		return ErrCutoffPassed
	}
	return nil
}

func (s *Service) checkCapacity(ctx context.Context, userID string, weekStart time.Time, meals, excludeID int) error {
	existing, err := s.repo.ListActiveInWeek(ctx, userID, weekStart, calendar.WeekEnd(weekStart), excludeID)
	if err != nil {
		return err
	}

	currentMeals := 0
	for _, b := range existing {
		currentMeals += b.Meals
	}

	if currentMeals+meals > config.MaxMealsPerWeek {
		return fmt.Errorf(
			"%w: you already have %d meals; max is %d",
			ErrQuotaExceeded, currentMeals, config.MaxMealsPerWeek,
		)
	}
	return nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, userID string, in Input) (*Booking, error) {
	deliveryDate, err := s.validateInput(ctx, userID, &in)
	if err != nil {
		return nil, err
	}

	weekStart := calendar.ServiceWeekStart(deliveryDate)

	if err := s.checkCutoff(weekStart); err != nil {
		return nil, err
	}

	// Capacity check and insert run under the user's lock: one mutating
	// call, no check-then-act gap between concurrent requests.
	unlock := s.locks.lock(userID)
	defer unlock()

	if err := s.checkCapacity(ctx, userID, weekStart, in.Meals, 0); err != nil {
		return nil, err
	}

	b := &Booking{
		UserID:       userID,
		AddressID:    in.AddressID,
		DeliveryDate: deliveryDate,
		TimeBlock:    in.TimeBlock,
		Meals:        in.Meals,
		DishChoice:   in.DishChoice,
		Status:       StatusActive,
	}
	if err := s.repo.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// --------------------------------------------------
// Update (in place; cutoff follows the NEW delivery date's week)
// --------------------------------------------------
func (s *Service) Update(ctx context.Context, userID string, id int, in Input) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotFound
	}
	if b.Status != StatusActive {
		return nil, ErrNotActive
	}

	deliveryDate, err := s.validateInput(ctx, userID, &in)
	if err != nil {
		return nil, err
	}

	// Moving a booking into another week re-evaluates that week's cutoff
	// and quota, not the original week's.
	weekStart := calendar.ServiceWeekStart(deliveryDate)

	if err := s.checkCutoff(weekStart); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	if err := s.checkCapacity(ctx, userID, weekStart, in.Meals, b.ID); err != nil {
		return nil, err
	}

	b.AddressID = in.AddressID
	b.DeliveryDate = deliveryDate
	b.TimeBlock = in.TimeBlock
	b.Meals = in.Meals
	b.DishChoice = in.DishChoice

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// --------------------------------------------------
// Cancel (terminal; cutoff follows the booking's current week)
// --------------------------------------------------
func (s *Service) Cancel(ctx context.Context, userID string, id int) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrNotFound
	}
	if b.Status != StatusActive {
		return ErrNotActive
	}

	weekStart := calendar.ServiceWeekStart(b.DeliveryDate)
	if err := s.checkCutoff(weekStart); err != nil {
		return err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	return s.repo.UpdateStatus(ctx, b.ID, StatusCancelled)
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (s *Service) ListMine(ctx context.Context, userID string) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

// WeekQuote prices the caller's active bookings in the service week
// containing weekFor.
func (s *Service) WeekQuote(ctx context.Context, userID string, weekFor time.Time) (pricing.Quote, error) {
	weekStart := calendar.ServiceWeekStart(weekFor)

	bookings, err := s.repo.ListActiveInWeek(ctx, userID, weekStart, calendar.WeekEnd(weekStart), 0)
	if err != nil {
		return pricing.Quote{}, err
	}

	mealCounts := make([]int, 0, len(bookings))
	for _, b := range bookings {
		mealCounts = append(mealCounts, b.Meals)
	}

	return pricing.ComputeWeekPricing(weekStart, mealCounts)
}

// HasActiveOnDate is used by the onboarding week synthesis to stay
// idempotent.
func (s *Service) HasActiveOnDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	return s.repo.HasActiveOnDate(ctx, userID, calendar.Date(date))
}
