package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tanjilh136/mealprep/internal/address"
	"github.com/tanjilh136/mealprep/internal/booking"
	"github.com/tanjilh136/mealprep/internal/calendar"
	"github.com/tanjilh136/mealprep/internal/dishtype"
	"github.com/tanjilh136/mealprep/internal/menu"
)

const subscriberUser = "user-sub"

// First week under test: Wednesday 2026-01-07 .. Tuesday 2026-01-13,
// rotation days 7..13. Two weeks later (2026-01-21) has the same rotation
// alignment.
var firstWeekStart = time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC)

type obFixture struct {
	service     *Service
	menuService *menu.Service
	booker      *booking.Service
	bookingRepo *booking.InMemoryRepository
	addressID   int
}

func newObFixture(t *testing.T) *obFixture {
	t.Helper()
	ctx := context.Background()

	menuRepo := menu.NewInMemoryRepository()
	menuService := menu.NewService(menuRepo)

	// Rotation days 7..13: dish A is meat, dish B is fish on every day.
	dishes := []struct{ a, b string }{
		{"Frango Assado", "Bacalhau à Brás"},
		{"Bitoque de Vaca", "Salmão Grelhado"},
		{"Lombo de Porco", "Polvo à Lagareiro"},
		{"Costeletas", "Atum Braseado"},
		{"Arroz de Pato", "Lulas Grelhadas"},
		{"Feijoada", "Pescada Cozida"},
		{"Strogonoff", "Arroz de Marisco"},
	}
	for i, d := range dishes {
		_, err := menuService.UpsertDay(ctx, menu.UpsertInput{
			DayNumber: 7 + i,
			DishA:     d.a,
			DishB:     d.b,
		})
		require.NoError(t, err)
	}

	addrRepo := address.NewInMemoryRepository()
	addrService := address.NewService(addrRepo)
	addr, err := addrService.Create(ctx, subscriberUser, address.CreateInput{
		Label:      "Home",
		Line1:      "Av. da Liberdade 10",
		City:       "Lisboa",
		PostalCode: "1250-096",
	})
	require.NoError(t, err)

	bookingRepo := booking.NewInMemoryRepository()
	booker := booking.NewService(bookingRepo, addrService, calendar.NewSlotCatalog())
	booker.SetNow(func() time.Time {
		return time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	})

	return &obFixture{
		service:     NewService(NewInMemoryRepository(), menuService),
		menuService: menuService,
		booker:      booker,
		bookingRepo: bookingRepo,
		addressID:   addr.ID,
	}
}

func (f *obFixture) fullWeekInput(meals int, choice string) FirstWeekInput {
	days := make([]DaySelection, 7)
	for i := range days {
		days[i] = DaySelection{
			Date:       firstWeekStart.AddDate(0, 0, i).Format("2006-01-02"),
			Meals:      meals,
			DishChoice: choice,
			TimeBlock:  "12:00-12:15",
			AddressID:  &f.addressID,
		}
	}
	return FirstWeekInput{WeekStart: firstWeekStart.Format("2006-01-02"), Days: days}
}

func TestSubmitFirstWeekValidation(t *testing.T) {
	f := newObFixture(t)
	ctx := context.Background()

	in := f.fullWeekInput(2, "")
	in.WeekStart = "2026-01-08" // Thursday
	for i := range in.Days {
		in.Days[i].Date = time.Date(2026, time.January, 8+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}
	_, err := f.service.SubmitFirstWeek(ctx, in)
	require.ErrorIs(t, err, ErrNotWednesday)

	in = f.fullWeekInput(2, "")
	in.Days = in.Days[:6]
	_, err = f.service.SubmitFirstWeek(ctx, in)
	require.ErrorIs(t, err, ErrDayCount)

	// Index-to-date integrity: day 3 carries day 4's date.
	in = f.fullWeekInput(2, "")
	in.Days[3].Date = in.Days[4].Date
	_, err = f.service.SubmitFirstWeek(ctx, in)
	require.Error(t, err)
	require.Contains(t, err.Error(), "days[3]")

	// meals=1 without a dish choice names the offending day.
	in = f.fullWeekInput(1, "A")
	in.Days[5].DishChoice = ""
	_, err = f.service.SubmitFirstWeek(ctx, in)
	require.Error(t, err)
	require.Contains(t, err.Error(), "days[5]")
}

func TestSubmitFirstWeekGridReflectsRotation(t *testing.T) {
	f := newObFixture(t)
	ctx := context.Background()

	result, err := f.service.SubmitFirstWeek(ctx, f.fullWeekInput(2, ""))
	require.NoError(t, err)
	require.NotEmpty(t, result.DraftID)
	require.Len(t, result.Grid, 7)

	// Dish A is meat and dish B is fish on every seeded day, so every
	// 2-meal day classifies slot1=meat, slot2=fish.
	for _, dayName := range ServiceDays {
		prefs := result.Grid[dayName]
		require.Equal(t, dishtype.Meat, prefs.Meal1, dayName)
		require.Equal(t, dishtype.Fish, prefs.Meal2, dayName)
	}

	cells, err := f.service.repo.ListCells(ctx, result.DraftID)
	require.NoError(t, err)
	require.Len(t, cells, 14)

	selections, err := f.service.repo.ListSelections(ctx, result.DraftID)
	require.NoError(t, err)
	require.Len(t, selections, 7)
}

func TestSubmitFirstWeekBlankDays(t *testing.T) {
	f := newObFixture(t)

	in := f.fullWeekInput(2, "")
	in.Days[0].Meals = 0
	in.Days[0].TimeBlock = ""
	in.Days[0].AddressID = nil

	result, err := f.service.SubmitFirstWeek(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, DayPrefs{Meal1: dishtype.Blank, Meal2: dishtype.Blank}, result.Grid["Wednesday"])
}

func TestClientTypeAndExplain(t *testing.T) {
	f := newObFixture(t)
	ctx := context.Background()

	result, err := f.service.SubmitFirstWeek(ctx, f.fullWeekInput(2, ""))
	require.NoError(t, err)

	_, err = f.service.Explain(ctx, result.DraftID)
	require.ErrorIs(t, err, ErrClientTypeNotSet)

	require.ErrorIs(t, f.service.SetClientType(ctx, result.DraftID, "monthly"), ErrClientTypeInvalid)
	require.ErrorIs(t, f.service.SetClientType(ctx, "no-such-draft", ClientTypeWeekly), ErrNotFound)

	require.NoError(t, f.service.SetClientType(ctx, result.DraftID, ClientTypeSubscriber))
	// Idempotent.
	require.NoError(t, f.service.SetClientType(ctx, result.DraftID, ClientTypeSubscriber))

	explanation, err := f.service.Explain(ctx, result.DraftID)
	require.NoError(t, err)
	require.Equal(t, ClientTypeSubscriber, explanation.ClientType)

	types := make([]string, 0, len(explanation.Sections))
	for _, s := range explanation.Sections {
		types = append(types, s.Type)
	}
	require.Contains(t, types, "iban_required")

	require.NoError(t, f.service.SetClientType(ctx, result.DraftID, ClientTypeWeekly))
	explanation, err = f.service.Explain(ctx, result.DraftID)
	require.NoError(t, err)
	for _, s := range explanation.Sections {
		require.NotEqual(t, "iban_required", s.Type)
	}
}

func TestSetIBAN(t *testing.T) {
	f := newObFixture(t)
	ctx := context.Background()

	result, err := f.service.SubmitFirstWeek(ctx, f.fullWeekInput(2, ""))
	require.NoError(t, err)

	require.NoError(t, f.service.SetClientType(ctx, result.DraftID, ClientTypeWeekly))
	_, err = f.service.SetIBAN(ctx, result.DraftID, "PT50000201231234567890154")
	require.ErrorIs(t, err, ErrIBANSubscriber)

	require.NoError(t, f.service.SetClientType(ctx, result.DraftID, ClientTypeSubscriber))

	normalized, err := f.service.SetIBAN(ctx, result.DraftID, "pt50 0002 0123 1234 5678 9015 4")
	require.NoError(t, err)
	require.Equal(t, "PT50000201231234567890154", normalized)

	_, err = f.service.SetIBAN(ctx, result.DraftID, "PT50")
	require.ErrorIs(t, err, ErrInvalidIBAN)
	_, err = f.service.SetIBAN(ctx, result.DraftID, "1T50000201231234567890154")
	require.ErrorIs(t, err, ErrInvalidIBAN)

	draft, err := f.service.repo.GetDraft(ctx, result.DraftID)
	require.NoError(t, err)
	require.Equal(t, "PT50000201231234567890154", draft.IBAN)
}

func TestEnsureWeekIdempotent(t *testing.T) {
	f := newObFixture(t)
	ctx := context.Background()

	result, err := f.service.SubmitFirstWeek(ctx, f.fullWeekInput(2, ""))
	require.NoError(t, err)
	require.NoError(t, f.service.SetClientType(ctx, result.DraftID, ClientTypeSubscriber))

	// Same rotation alignment, two cycles later.
	targetWeek := firstWeekStart.AddDate(0, 0, 14)

	created, err := f.service.EnsureWeek(ctx, f.booker, subscriberUser, result.DraftID, targetWeek)
	require.NoError(t, err)
	require.Equal(t, 7, created)

	created, err = f.service.EnsureWeek(ctx, f.booker, subscriberUser, result.DraftID, targetWeek)
	require.NoError(t, err)
	require.Equal(t, 0, created)

	bookings, err := f.booker.ListMine(ctx, subscriberUser)
	require.NoError(t, err)
	require.Len(t, bookings, 7)
	for _, b := range bookings {
		require.Equal(t, 2, b.Meals)
		require.Equal(t, booking.DishBoth, b.DishChoice)
		require.Equal(t, "12:00-12:15", b.TimeBlock)
	}
}

func TestEnsureWeekSingleMealFollowsPreference(t *testing.T) {
	f := newObFixture(t)
	ctx := context.Background()

	// Choice B on every day: dish B is fish, so the stored preference for
	// slot 1 is fish everywhere.
	result, err := f.service.SubmitFirstWeek(ctx, f.fullWeekInput(1, "B"))
	require.NoError(t, err)
	require.NoError(t, f.service.SetClientType(ctx, result.DraftID, ClientTypeSubscriber))

	targetWeek := firstWeekStart.AddDate(0, 0, 14)
	created, err := f.service.EnsureWeek(ctx, f.booker, subscriberUser, result.DraftID, targetWeek)
	require.NoError(t, err)
	require.Equal(t, 7, created)

	bookings, err := f.booker.ListMine(ctx, subscriberUser)
	require.NoError(t, err)
	for _, b := range bookings {
		require.Equal(t, 1, b.Meals)
		// The fish intent re-derives to side B, where the fish still is.
		require.Equal(t, booking.DishB, b.DishChoice)
	}
}

func TestEnsureWeekFallsBackToSideA(t *testing.T) {
	f := newObFixture(t)
	ctx := context.Background()

	result, err := f.service.SubmitFirstWeek(ctx, f.fullWeekInput(1, "B"))
	require.NoError(t, err)
	require.NoError(t, f.service.SetClientType(ctx, result.DraftID, ClientTypeSubscriber))

	// The menu admin swaps the whole rotation to meat-only before the next
	// cycle: the stored fish intent matches neither side, so side A wins.
	for dayNo := 7; dayNo <= 13; dayNo++ {
		_, err := f.menuService.UpsertDay(ctx, menu.UpsertInput{
			DayNumber: dayNo,
			DishA:     "Frango no Churrasco",
			DishB:     "Leitão Assado",
		})
		require.NoError(t, err)
	}

	targetWeek := firstWeekStart.AddDate(0, 0, 14)
	created, err := f.service.EnsureWeek(ctx, f.booker, subscriberUser, result.DraftID, targetWeek)
	require.NoError(t, err)
	require.Equal(t, 7, created)

	bookings, err := f.booker.ListMine(ctx, subscriberUser)
	require.NoError(t, err)
	for _, b := range bookings {
		require.Equal(t, booking.DishA, b.DishChoice)
	}
}

func TestEnsureWeekSkipsBlankAndEmptyDays(t *testing.T) {
	f := newObFixture(t)
	ctx := context.Background()

	in := f.fullWeekInput(2, "")
	in.Days[0].Meals = 0
	in.Days[0].TimeBlock = ""
	in.Days[0].AddressID = nil
	in.Days[1].Meals = 0

	result, err := f.service.SubmitFirstWeek(ctx, in)
	require.NoError(t, err)
	require.NoError(t, f.service.SetClientType(ctx, result.DraftID, ClientTypeSubscriber))

	created, err := f.service.EnsureWeek(ctx, f.booker, subscriberUser, result.DraftID, firstWeekStart.AddDate(0, 0, 14))
	require.NoError(t, err)
	require.Equal(t, 5, created)
}

func TestEnsureWeekRejectsNonSubscriber(t *testing.T) {
	f := newObFixture(t)
	ctx := context.Background()

	result, err := f.service.SubmitFirstWeek(ctx, f.fullWeekInput(2, ""))
	require.NoError(t, err)
	require.NoError(t, f.service.SetClientType(ctx, result.DraftID, ClientTypeWeekly))

	_, err = f.service.EnsureWeek(ctx, f.booker, subscriberUser, result.DraftID, firstWeekStart.AddDate(0, 0, 14))
	require.Error(t, err)

	_, err = f.service.EnsureWeek(ctx, f.booker, subscriberUser, result.DraftID, firstWeekStart.AddDate(0, 0, 15))
	require.ErrorIs(t, err, ErrNotWednesday)
}
