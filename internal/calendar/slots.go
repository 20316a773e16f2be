package calendar

import (
	"fmt"

	"github.com/tanjilh136/mealprep/internal/config"
)

// SlotCatalog is the immutable list of bookable delivery time blocks,
// generated once at startup and shared by injection.
type SlotCatalog struct {
	labels []string
	index  map[string]struct{}
}

// NewSlotCatalog builds the catalog from the configured lunch and dinner
// windows: contiguous SlotMinutes-wide blocks labeled "HH:MM-HH:MM",
// lunch first, then dinner.
func NewSlotCatalog() *SlotCatalog {
	var labels []string

	emit := func(startH, startM, endH, endM int) {
		current := startH*60 + startM
		finish := endH*60 + endM
		for current < finish {
			next := current + config.SlotMinutes
			labels = append(labels, fmt.Sprintf(
				"%02d:%02d-%02d:%02d",
				current/60, current%60, next/60, next%60,
			))
			current = next
		}
	}

	emit(config.LunchStartHour, config.LunchStartMinute, config.LunchEndHour, config.LunchEndMinute)
	emit(config.DinnerStartHour, config.DinnerStartMinute, config.DinnerEndHour, config.DinnerEndMinute)

	index := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		index[l] = struct{}{}
	}

	return &SlotCatalog{labels: labels, index: index}
}

// Contains reports whether label is a valid delivery time block.
func (s *SlotCatalog) Contains(label string) bool {
	_, ok := s.index[label]
	return ok
}

// Labels returns the time blocks in lunch-then-dinner order. The returned
// slice is a copy; the catalog itself never changes.
func (s *SlotCatalog) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}
