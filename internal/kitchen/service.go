package kitchen

import (
	"context"
	"errors"
	"time"

	"github.com/tanjilh136/mealprep/internal/address"
	"github.com/tanjilh136/mealprep/internal/auth"
	"github.com/tanjilh136/mealprep/internal/booking"
	"github.com/tanjilh136/mealprep/internal/menu"
)

var ErrNoBookings = errors.New("no active bookings for this date")

// DayLine is one delivery the kitchen has to prepare.
type DayLine struct {
	BookingID    int    `json:"booking_id"`
	TimeBlock    string `json:"time_block"`
	ClientName   string `json:"client_name"`
	ClientPhone  string `json:"client_phone"`
	AddressLabel string `json:"address_label"`
	Address      string `json:"address"`
	Meals        int    `json:"meals"`
	DishName     string `json:"dish_name"`
}

type Service struct {
	bookings  booking.Repository
	users     auth.UserRepository
	addresses address.Repository
	menus     *menu.Service
}

func NewService(
	bookings booking.Repository,
	users auth.UserRepository,
	addresses address.Repository,
	menus *menu.Service,
) *Service {
	return &Service{bookings: bookings, users: users, addresses: addresses, menus: menus}
}

// DayView lists the active bookings for one delivery date, ordered by
// (time_block, id), with client and address details resolved.
func (s *Service) DayView(ctx context.Context, date time.Time) ([]DayLine, error) {
	list, err := s.bookings.ListActiveByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoBookings
	}

	out := make([]DayLine, 0, len(list))
	for _, b := range list {
		line := DayLine{
			BookingID: b.ID,
			TimeBlock: b.TimeBlock,
			Meals:     b.Meals,
			DishName:  s.menus.ResolveDishName(ctx, b.DeliveryDate, b.Meals, b.DishChoice),
		}

		if user, err := s.users.FindByID(ctx, b.UserID); err == nil {
			line.ClientName = user.Name
			line.ClientPhone = user.Phone
		}

		if addr, err := s.addresses.GetByID(ctx, b.AddressID, b.UserID); err == nil {
			line.AddressLabel = addr.Label
			line.Address = address.FormatForExport(addr)
		}

		out = append(out, line)
	}
	return out, nil
}
