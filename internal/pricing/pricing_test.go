package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tanjilh136/mealprep/internal/config"
)

var outsidePromo = time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC) // Wednesday

func TestBelowMinimumIsBusinessOutcome(t *testing.T) {
	q, err := ComputeWeekPricing(outsidePromo, nil)
	require.NoError(t, err)
	require.False(t, q.OK)
	require.Contains(t, q.Reason, "Minimum 3 meals")
	require.Equal(t, 0, q.TotalMeals)
	require.Zero(t, q.UnitPrice)
	require.Zero(t, q.FinalTotal)

	q, err = ComputeWeekPricing(outsidePromo, []int{2})
	require.NoError(t, err)
	require.False(t, q.OK)
	require.Equal(t, 2, q.TotalMeals)
}

func TestTierPricing(t *testing.T) {
	cases := []struct {
		meals     []int
		unitPrice float64
		baseTotal float64
	}{
		{[]int{2, 2, 1}, 10.50, 52.50},             // 5 meals
		{[]int{2, 2, 2}, 9.99, 59.94},              // 6 meals
		{[]int{2, 2, 2, 2, 1}, 9.99, 89.91},        // 9 meals
		{[]int{2, 2, 2, 2, 2}, 9.45, 94.50},        // 10 meals
		{[]int{2, 2, 2, 2, 2, 2, 2}, 9.45, 132.30}, // 14 meals
	}

	for _, c := range cases {
		q, err := ComputeWeekPricing(outsidePromo, c.meals)
		require.NoError(t, err)
		require.True(t, q.OK)
		require.Equal(t, c.unitPrice, q.UnitPrice, "meals=%v", c.meals)
		require.Equal(t, c.baseTotal, q.BaseTotal, "meals=%v", c.meals)
		require.False(t, q.PromoApplied)
		require.Equal(t, c.baseTotal, q.FinalTotal)
	}
}

func TestLaunchPromoHalvesTotal(t *testing.T) {
	q, err := ComputeWeekPricing(config.LaunchPromoStart, []int{2, 2, 1})
	require.NoError(t, err)
	require.True(t, q.OK)
	require.True(t, q.PromoApplied)
	require.Equal(t, 52.50, q.BaseTotal)
	require.Equal(t, 26.25, q.FinalTotal)

	// Inclusive on the closing end too.
	q, err = ComputeWeekPricing(config.LaunchPromoEnd, []int{2, 2, 1})
	require.NoError(t, err)
	require.True(t, q.PromoApplied)

	// One day past the window: no promo.
	q, err = ComputeWeekPricing(config.LaunchPromoEnd.AddDate(0, 0, 1), []int{2, 2, 1})
	require.NoError(t, err)
	require.False(t, q.PromoApplied)
	require.Equal(t, 52.50, q.FinalTotal)
}

func TestTierMissIsInternalError(t *testing.T) {
	// 15 meals is above MaxMealsPerWeek; the booking manager prevents this,
	// so reaching it means the tables drifted and must fail loudly.
	_, err := ComputeWeekPricing(outsidePromo, []int{2, 2, 2, 2, 2, 2, 2, 1})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoTier))
}

func TestConfigTiersCoverQuotaRange(t *testing.T) {
	require.NoError(t, config.Validate())
}
