package routeplan

import (
	"context"

	"github.com/tanjilh136/mealprep/internal/booking"
)

// Assignment pairs a booking with the driver that will carry it.
type Assignment struct {
	BookingID int `json:"booking_id"`
	DriverID  int `json:"driver_id"`
}

// Plan assigns a day's deliveries to drivers. Placeholder: everything goes
// to driver 1 until real route optimization lands.
func Plan(_ context.Context, bookings []*booking.Booking) []Assignment {
	out := make([]Assignment, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, Assignment{BookingID: b.ID, DriverID: 1})
	}
	return out
}
