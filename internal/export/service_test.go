package export

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tanjilh136/mealprep/internal/address"
	"github.com/tanjilh136/mealprep/internal/auth"
	"github.com/tanjilh136/mealprep/internal/booking"
	"github.com/tanjilh136/mealprep/internal/menu"
)

var day = time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC) // Wednesday, rotation day 7

type fakeUploader struct {
	keys []string
}

func (f *fakeUploader) UploadBytes(_ context.Context, key, _ string, _ []byte) (string, error) {
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func newFixture(t *testing.T, uploader Uploader) (*Service, *booking.InMemoryRepository) {
	t.Helper()
	ctx := context.Background()

	users := auth.NewInMemoryUserRepository()
	user := &auth.User{ID: "u-1", Name: "Maria Silva", Email: "maria@example.com", Phone: "912345678", Role: auth.RoleClient, IsActive: true}
	require.NoError(t, users.Save(ctx, user))

	addrs := address.NewInMemoryRepository()
	addr := &address.Address{UserID: "u-1", Label: "Home", Line1: "Rua Um 1", City: "Lisboa", PostalCode: "1000-001"}
	require.NoError(t, addrs.Create(ctx, addr))

	menus := menu.NewService(menu.NewInMemoryRepository())
	_, err := menus.UpsertDay(ctx, menu.UpsertInput{DayNumber: 7, DishA: "Frango", DishB: "Bacalhau"})
	require.NoError(t, err)

	bookings := booking.NewInMemoryRepository()
	require.NoError(t, bookings.Insert(ctx, &booking.Booking{
		UserID: "u-1", AddressID: addr.ID, DeliveryDate: day,
		TimeBlock: "12:00-12:15", Meals: 2, DishChoice: booking.DishBoth,
		Status: booking.StatusActive,
	}))

	return NewService(bookings, users, addrs, menus, uploader), bookings
}

func TestTodayCSV(t *testing.T) {
	uploader := &fakeUploader{}
	service, _ := newFixture(t, uploader)

	file, err := service.Today(context.Background(), day)
	require.NoError(t, err)
	require.Equal(t, "deliveries_2026-01-07.csv", file.Name)

	records, err := csv.NewReader(strings.NewReader(string(file.Content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, csvHeader, records[0])
	require.Equal(t, []string{
		"2026-01-07", "12:00-12:15", "Maria Silva", "912345678",
		"Home", "Rua Um 1, 1000-001 Lisboa", "2", "Frango + Bacalhau",
	}, records[1])

	require.Equal(t, []string{"exports/deliveries_2026-01-07.csv"}, uploader.keys)
}

func TestWeekCSV(t *testing.T) {
	service, bookings := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, bookings.Insert(ctx, &booking.Booking{
		UserID: "u-1", AddressID: 1, DeliveryDate: day.AddDate(0, 0, 3),
		TimeBlock: "18:00-18:15", Meals: 1, DishChoice: booking.DishA,
		Status: booking.StatusActive,
	}))

	// Mid-week date resolves to the week starting Wednesday.
	file, err := service.Week(ctx, day.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.Equal(t, "week_2026-01-07.csv", file.Name)

	records, err := csv.NewReader(strings.NewReader(string(file.Content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "2026-01-07", records[1][0])
	require.Equal(t, "2026-01-10", records[2][0])
}

func TestExportEmpty(t *testing.T) {
	service, _ := newFixture(t, nil)

	// A date with no bookings.
	_, err := service.Today(context.Background(), day.AddDate(0, 0, 1))
	require.ErrorIs(t, err, ErrNothingToExport)
}
