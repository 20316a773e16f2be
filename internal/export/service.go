package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/tanjilh136/mealprep/internal/address"
	"github.com/tanjilh136/mealprep/internal/auth"
	"github.com/tanjilh136/mealprep/internal/booking"
	"github.com/tanjilh136/mealprep/internal/calendar"
	"github.com/tanjilh136/mealprep/internal/menu"
)

var ErrNothingToExport = errors.New("no active bookings to export")

var csvHeader = []string{
	"Date", "Time Block", "Client Name", "Phone", "Label", "Address", "Meals", "Dish Choice",
}

// Uploader archives a generated export. storage.R2Client satisfies it.
type Uploader interface {
	UploadBytes(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Service struct {
	bookings  booking.Repository
	users     auth.UserRepository
	addresses address.Repository
	menus     *menu.Service

	// uploader is nil when object storage is not configured.
	uploader Uploader
}

func NewService(
	bookings booking.Repository,
	users auth.UserRepository,
	addresses address.Repository,
	menus *menu.Service,
	uploader Uploader,
) *Service {
	return &Service{
		bookings:  bookings,
		users:     users,
		addresses: addresses,
		menus:     menus,
		uploader:  uploader,
	}
}

// File is a rendered CSV ready to stream.
type File struct {
	Name    string
	Content []byte
}

func (s *Service) render(ctx context.Context, list []*booking.Booking, name string) (*File, error) {
	if len(list) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, b := range list {
		clientName, phone := "", ""
		if user, err := s.users.FindByID(ctx, b.UserID); err == nil {
			clientName = user.Name
			phone = user.Phone
		}

		label, addrText := "", ""
		if addr, err := s.addresses.GetByID(ctx, b.AddressID, b.UserID); err == nil {
			label = addr.Label
			addrText = address.FormatForExport(addr)
		}

		record := []string{
			b.DeliveryDate.Format("2006-01-02"),
			b.TimeBlock,
			clientName,
			phone,
			label,
			addrText,
			strconv.Itoa(b.Meals),
			s.menus.ResolveDishName(ctx, b.DeliveryDate, b.Meals, b.DishChoice),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	file := &File{Name: name, Content: buf.Bytes()}
	s.archive(ctx, file)
	return file, nil
}

// archive keeps a copy in object storage. Failures are logged, never
// surfaced: the download must not depend on the bucket.
func (s *Service) archive(ctx context.Context, file *File) {
	if s.uploader == nil {
		return
	}
	url, err := s.uploader.UploadBytes(ctx, "exports/"+file.Name, "text/csv", file.Content)
	if err != nil {
		log.Printf("export archive failed for %s: %v", file.Name, err)
		return
	}
	log.Printf("export archived: %s", url)
}

// Today renders the kitchen CSV for one delivery day.
func (s *Service) Today(ctx context.Context, day time.Time) (*File, error) {
	day = calendar.Date(day)

	list, err := s.bookings.ListActiveByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("deliveries_%s.csv", day.Format("2006-01-02"))
	return s.render(ctx, list, name)
}

// Week renders the admin CSV for the service week containing weekFor.
func (s *Service) Week(ctx context.Context, weekFor time.Time) (*File, error) {
	weekStart := calendar.ServiceWeekStart(weekFor)
	weekEnd := calendar.WeekEnd(weekStart)

	list, err := s.bookings.ListActiveBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("week_%s.csv", weekStart.Format("2006-01-02"))
	return s.render(ctx, list, name)
}
