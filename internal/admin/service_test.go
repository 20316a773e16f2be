package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tanjilh136/mealprep/internal/auth"
	"github.com/tanjilh136/mealprep/internal/booking"
	"github.com/tanjilh136/mealprep/internal/menu"
)

// Service week 2026-01-07 (Wed) .. 2026-01-13 (Tue).
var weekStart = time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*Service, *booking.InMemoryRepository, []string) {
	t.Helper()
	ctx := context.Background()

	users := auth.NewInMemoryUserRepository()
	var ids []string
	for _, name := range []string{"Ana", "Bruno"} {
		u := &auth.User{Name: name, Email: name + "@example.com", Role: auth.RoleClient, IsActive: true}
		require.NoError(t, users.Save(ctx, u))
		ids = append(ids, u.ID)
	}

	menus := menu.NewService(menu.NewInMemoryRepository())
	bookings := booking.NewInMemoryRepository()
	return NewService(bookings, users, menus), bookings, ids
}

func TestWeekSummary(t *testing.T) {
	service, bookings, ids := newFixture(t)
	ctx := context.Background()
	ana, bruno := ids[0], ids[1]

	for _, b := range []*booking.Booking{
		{UserID: ana, AddressID: 1, DeliveryDate: weekStart, TimeBlock: "12:00-12:15", Meals: 2, DishChoice: booking.DishBoth, Status: booking.StatusActive},
		{UserID: ana, AddressID: 1, DeliveryDate: weekStart.AddDate(0, 0, 2), TimeBlock: "12:00-12:15", Meals: 1, DishChoice: booking.DishA, Status: booking.StatusActive},
		{UserID: bruno, AddressID: 2, DeliveryDate: weekStart.AddDate(0, 0, 1), TimeBlock: "18:00-18:15", Meals: 2, DishChoice: booking.DishBoth, Status: booking.StatusActive},
		// Outside the week, must not count.
		{UserID: bruno, AddressID: 2, DeliveryDate: weekStart.AddDate(0, 0, 7), TimeBlock: "12:00-12:15", Meals: 2, DishChoice: booking.DishBoth, Status: booking.StatusActive},
		// Cancelled, must not count.
		{UserID: ana, AddressID: 1, DeliveryDate: weekStart, TimeBlock: "18:00-18:15", Meals: 2, DishChoice: booking.DishBoth, Status: booking.StatusCancelled},
	} {
		require.NoError(t, bookings.Insert(ctx, b))
	}

	// Any date inside the week resolves to the same summary.
	summary, err := service.WeekSummary(ctx, weekStart.AddDate(0, 0, 4))
	require.NoError(t, err)

	require.Equal(t, "2026-01-07", summary.WeekStart)
	require.Equal(t, "2026-01-13", summary.WeekEnd)
	require.Equal(t, 5, summary.TotalMeals)
	require.Len(t, summary.Clients, 2)

	// Ana books first in the week, so her block comes first.
	require.Equal(t, "Ana", summary.Clients[0].ClientName)
	require.Equal(t, 3, summary.Clients[0].TotalMeals)
	require.Len(t, summary.Clients[0].Bookings, 2)

	require.Equal(t, "Bruno", summary.Clients[1].ClientName)
	require.Equal(t, 2, summary.Clients[1].TotalMeals)
}

func TestWeekSummaryEmpty(t *testing.T) {
	service, _, _ := newFixture(t)

	_, err := service.WeekSummary(context.Background(), weekStart)
	require.ErrorIs(t, err, ErrEmptyWeek)
}

func TestListBookings(t *testing.T) {
	service, bookings, ids := newFixture(t)
	ctx := context.Background()

	for _, b := range []*booking.Booking{
		{UserID: ids[0], AddressID: 1, DeliveryDate: weekStart.AddDate(0, 0, 3), TimeBlock: "12:00-12:15", Meals: 1, DishChoice: booking.DishA, Status: booking.StatusActive},
		{UserID: ids[1], AddressID: 2, DeliveryDate: weekStart, TimeBlock: "12:00-12:15", Meals: 2, DishChoice: booking.DishBoth, Status: booking.StatusCancelled},
	} {
		require.NoError(t, bookings.Insert(ctx, b))
	}

	list, err := service.ListBookings(ctx)
	require.NoError(t, err)
	// All statuses, ordered by date.
	require.Len(t, list, 2)
	require.Equal(t, booking.StatusCancelled, list[0].Status)
}
