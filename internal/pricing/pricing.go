// Package pricing computes weekly totals from the tier table and the
// launch promo window.
package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/tanjilh136/mealprep/internal/config"
)

// ErrNoTier means the tier table and MaxMealsPerWeek drifted apart.
// config.Validate makes this unreachable at a correctly booted process.
var ErrNoTier = fmt.Errorf("pricing: no tier covers the requested meal count")

// Quote is the result of pricing one client's service week.
// When OK is false, Reason explains the business failure and the price
// fields are zero.
type Quote struct {
	OK           bool      `json:"ok"`
	Reason       string    `json:"reason,omitempty"`
	TotalMeals   int       `json:"total_meals"`
	UnitPrice    float64   `json:"unit_price,omitempty"`
	BaseTotal    float64   `json:"base_total,omitempty"`
	PromoApplied bool      `json:"promo_applied"`
	FinalTotal   float64   `json:"final_total,omitempty"`
	WeekStart    time.Time `json:"week_start"`
}

// round2 rounds half-up to 2 decimal places. Totals here are always
// positive, so math.Round's half-away-from-zero is half-up.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func unitPriceFor(totalMeals int) (float64, error) {
	for _, t := range config.PricingTiers {
		if totalMeals >= t.MinMeals && totalMeals <= t.MaxMeals {
			return t.UnitPrice, nil
		}
	}
	return 0, fmt.Errorf("%w: %d meals", ErrNoTier, totalMeals)
}

// ComputeWeekPricing prices a single client's active bookings in the
// service week starting at weekStart. mealCounts holds the per-booking
// meal counts. Falling short of the weekly minimum is a business outcome
// (OK=false, nil error); a tier miss is an internal error.
func ComputeWeekPricing(weekStart time.Time, mealCounts []int) (Quote, error) {
	totalMeals := 0
	for _, m := range mealCounts {
		totalMeals += m
	}

	if totalMeals < config.MinMealsPerWeek {
		return Quote{
			OK:         false,
			Reason:     fmt.Sprintf("Minimum %d meals per week required.", config.MinMealsPerWeek),
			TotalMeals: totalMeals,
			WeekStart:  weekStart,
		}, nil
	}

	unitPrice, err := unitPriceFor(totalMeals)
	if err != nil {
		return Quote{}, err
	}

	baseTotal := round2(float64(totalMeals) * unitPrice)

	promoApplied := false
	finalTotal := baseTotal
	if !weekStart.Before(config.LaunchPromoStart) && !weekStart.After(config.LaunchPromoEnd) {
		promoApplied = true
		finalTotal = round2(baseTotal * 0.5)
	}

	return Quote{
		OK:           true,
		TotalMeals:   totalMeals,
		UnitPrice:    unitPrice,
		BaseTotal:    baseTotal,
		PromoApplied: promoApplied,
		FinalTotal:   finalTotal,
		WeekStart:    weekStart,
	}, nil
}
