package kitchen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tanjilh136/mealprep/internal/address"
	"github.com/tanjilh136/mealprep/internal/auth"
	"github.com/tanjilh136/mealprep/internal/booking"
	"github.com/tanjilh136/mealprep/internal/menu"
)

var testDay = time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC) // rotation day 7

func newFixture(t *testing.T) (*Service, *booking.InMemoryRepository, string, int) {
	t.Helper()
	ctx := context.Background()

	users := auth.NewInMemoryUserRepository()
	user := &auth.User{Name: "Maria Silva", Email: "maria@example.com", Phone: "912345678", Role: auth.RoleClient, IsActive: true}
	require.NoError(t, users.Save(ctx, user))

	addrs := address.NewInMemoryRepository()
	addr := &address.Address{UserID: user.ID, Label: "Home", Line1: "Rua Um 1", City: "Lisboa", PostalCode: "1000-001"}
	require.NoError(t, addrs.Create(ctx, addr))

	menus := menu.NewService(menu.NewInMemoryRepository())
	_, err := menus.UpsertDay(ctx, menu.UpsertInput{DayNumber: 7, DishA: "Frango", DishB: "Bacalhau"})
	require.NoError(t, err)

	bookings := booking.NewInMemoryRepository()
	return NewService(bookings, users, addrs, menus), bookings, user.ID, addr.ID
}

func TestDayView(t *testing.T) {
	service, bookings, userID, addrID := newFixture(t)
	ctx := context.Background()

	for _, b := range []*booking.Booking{
		{UserID: userID, AddressID: addrID, DeliveryDate: testDay, TimeBlock: "18:00-18:15", Meals: 2, DishChoice: booking.DishBoth, Status: booking.StatusActive},
		{UserID: userID, AddressID: addrID, DeliveryDate: testDay, TimeBlock: "12:00-12:15", Meals: 1, DishChoice: booking.DishB, Status: booking.StatusActive},
		// Cancelled bookings never reach the kitchen.
		{UserID: userID, AddressID: addrID, DeliveryDate: testDay, TimeBlock: "12:15-12:30", Meals: 1, DishChoice: booking.DishA, Status: booking.StatusCancelled},
	} {
		require.NoError(t, bookings.Insert(ctx, b))
	}

	lines, err := service.DayView(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// Ordered by time block.
	require.Equal(t, "12:00-12:15", lines[0].TimeBlock)
	require.Equal(t, "18:00-18:15", lines[1].TimeBlock)

	first := lines[0]
	require.Equal(t, "Maria Silva", first.ClientName)
	require.Equal(t, "912345678", first.ClientPhone)
	require.Equal(t, "Home", first.AddressLabel)
	require.Equal(t, "Rua Um 1, 1000-001 Lisboa", first.Address)
	require.Equal(t, "Bacalhau", first.DishName)

	require.Equal(t, "Frango + Bacalhau", lines[1].DishName)
}

func TestDayViewEmpty(t *testing.T) {
	service, _, _, _ := newFixture(t)

	_, err := service.DayView(context.Background(), testDay)
	require.ErrorIs(t, err, ErrNoBookings)
}
