package menu

import "time"

// MenuDay is one day of the 14-day rotation.
type MenuDay struct {
	ID        int    `json:"id"`
	DayNumber int    `json:"day_number"` // 1-14, unique
	DishA     string `json:"dish_a"`
	DishB     string `json:"dish_b"`

	CaloriesA *int `json:"calories_a,omitempty"`
	CaloriesB *int `json:"calories_b,omitempty"`
}

// PublicDish is one side of a day in the public week view. Name is nil when
// the rotation is not configured for that day yet.
type PublicDish struct {
	Name     *string `json:"name"`
	Calories *int    `json:"calories"`
}

// PublicDay is one calendar day in the public week menu.
type PublicDay struct {
	Date    time.Time  `json:"date"`
	Weekday string     `json:"weekday"`
	DishA   PublicDish `json:"dish_a"`
	DishB   PublicDish `json:"dish_b"`
}

// UpsertInput creates or replaces a rotation day.
type UpsertInput struct {
	DayNumber int    `json:"day_number" binding:"required"`
	DishA     string `json:"dish_a" binding:"required"`
	DishB     string `json:"dish_b" binding:"required"`
	CaloriesA *int   `json:"calories_a"`
	CaloriesB *int   `json:"calories_b"`
}
