package admin

import (
	"context"
	"errors"
	"time"

	"github.com/tanjilh136/mealprep/internal/auth"
	"github.com/tanjilh136/mealprep/internal/booking"
	"github.com/tanjilh136/mealprep/internal/calendar"
	"github.com/tanjilh136/mealprep/internal/menu"
)

var ErrEmptyWeek = errors.New("no active bookings in this week")

// SummaryLine is one booking inside a client block of the weekly summary.
type SummaryLine struct {
	BookingID    int    `json:"booking_id"`
	DeliveryDate string `json:"delivery_date"`
	TimeBlock    string `json:"time_block"`
	Meals        int    `json:"meals"`
	DishName     string `json:"dish_name"`
}

// ClientSummary groups one client's bookings for the week.
type ClientSummary struct {
	UserID     string        `json:"user_id"`
	ClientName string        `json:"client_name"`
	TotalMeals int           `json:"total_meals"`
	Bookings   []SummaryLine `json:"bookings"`
}

// WeekSummary is the admin view of one service week.
type WeekSummary struct {
	WeekStart  string          `json:"week_start"`
	WeekEnd    string          `json:"week_end"`
	TotalMeals int             `json:"total_meals"`
	Clients    []ClientSummary `json:"clients"`
}

type Service struct {
	bookings booking.Repository
	users    auth.UserRepository
	menus    *menu.Service
}

func NewService(bookings booking.Repository, users auth.UserRepository, menus *menu.Service) *Service {
	return &Service{bookings: bookings, users: users, menus: menus}
}

// ListBookings returns every booking, all clients, ordered by
// (delivery_date, time_block).
func (s *Service) ListBookings(ctx context.Context) ([]*booking.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// WeekSummary aggregates the service week containing weekFor into per-client
// blocks. Bookings stay in delivery order inside each block; clients appear
// in order of their first booking.
func (s *Service) WeekSummary(ctx context.Context, weekFor time.Time) (*WeekSummary, error) {
	weekStart := calendar.ServiceWeekStart(weekFor)
	weekEnd := calendar.WeekEnd(weekStart)

	list, err := s.bookings.ListActiveBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrEmptyWeek
	}

	summary := &WeekSummary{
		WeekStart: weekStart.Format("2006-01-02"),
		WeekEnd:   weekEnd.Format("2006-01-02"),
	}

	byUser := make(map[string]int) // user id -> index into summary.Clients
	for _, b := range list {
		idx, ok := byUser[b.UserID]
		if !ok {
			client := ClientSummary{UserID: b.UserID}
			if user, err := s.users.FindByID(ctx, b.UserID); err == nil {
				client.ClientName = user.Name
			}
			summary.Clients = append(summary.Clients, client)
			idx = len(summary.Clients) - 1
			byUser[b.UserID] = idx
		}

		summary.Clients[idx].Bookings = append(summary.Clients[idx].Bookings, SummaryLine{
			BookingID:    b.ID,
			DeliveryDate: b.DeliveryDate.Format("2006-01-02"),
			TimeBlock:    b.TimeBlock,
			Meals:        b.Meals,
			DishName:     s.menus.ResolveDishName(ctx, b.DeliveryDate, b.Meals, b.DishChoice),
		})
		summary.Clients[idx].TotalMeals += b.Meals
		summary.TotalMeals += b.Meals
	}

	return summary, nil
}
