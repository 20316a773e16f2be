package config

import (
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// Business rules
// ---------------------------------------------------------------------------

const (
	MinMealsPerWeek = 3
	MaxMealsPerWeek = 14
)

// ---------------------------------------------------------------------------
// Delivery windows
// ---------------------------------------------------------------------------

const (
	LunchStartHour   = 11
	LunchStartMinute = 30
	LunchEndHour     = 14
	LunchEndMinute   = 0

	DinnerStartHour   = 18
	DinnerStartMinute = 0
	DinnerEndHour     = 21
	DinnerEndMinute   = 0

	SlotMinutes = 15
)

// ---------------------------------------------------------------------------
// Menu rotation (14-day system)
// MenuRotationStartDate corresponds to day_number = 1. All business dates
// run in UTC; changing the anchor re-aligns the whole rotation.
// ---------------------------------------------------------------------------

var MenuRotationStartDate = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// Launch promo: 50% discount, inclusive on both ends
// ---------------------------------------------------------------------------

var (
	LaunchPromoStart = time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC)  // Wednesday
	LaunchPromoEnd   = time.Date(2026, time.January, 13, 0, 0, 0, 0, time.UTC) // Tuesday
)

// ---------------------------------------------------------------------------
// Pricing tiers (per meal, in EUR)
// ---------------------------------------------------------------------------

type PricingTier struct {
	MinMeals  int
	MaxMeals  int
	UnitPrice float64
}

var PricingTiers = []PricingTier{
	{MinMeals: 3, MaxMeals: 5, UnitPrice: 10.50},
	{MinMeals: 6, MaxMeals: 9, UnitPrice: 9.99},
	{MinMeals: 10, MaxMeals: 14, UnitPrice: 9.45},
}

// Validate checks that the tier table covers [MinMealsPerWeek, MaxMealsPerWeek]
// contiguously. Run at startup so a tier miss at pricing time is unreachable.
func Validate() error {
	if len(PricingTiers) == 0 {
		return fmt.Errorf("config: pricing tier table is empty")
	}

	if PricingTiers[0].MinMeals != MinMealsPerWeek {
		return fmt.Errorf(
			"config: first pricing tier starts at %d, want %d",
			PricingTiers[0].MinMeals, MinMealsPerWeek,
		)
	}

	for i, t := range PricingTiers {
		if t.MinMeals > t.MaxMeals {
			return fmt.Errorf("config: pricing tier %d has min %d > max %d", i, t.MinMeals, t.MaxMeals)
		}
		if i > 0 && t.MinMeals != PricingTiers[i-1].MaxMeals+1 {
			return fmt.Errorf(
				"config: pricing tier %d starts at %d, leaving a gap after %d",
				i, t.MinMeals, PricingTiers[i-1].MaxMeals,
			)
		}
	}

	last := PricingTiers[len(PricingTiers)-1]
	if last.MaxMeals != MaxMealsPerWeek {
		return fmt.Errorf(
			"config: last pricing tier ends at %d, want %d",
			last.MaxMeals, MaxMealsPerWeek,
		)
	}

	return nil
}
