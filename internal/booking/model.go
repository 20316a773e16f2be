package booking

import "time"

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

const (
	DishA    = "A"
	DishB    = "B"
	DishBoth = "A+B"
)

// Booking is one delivery reservation. Cancelled bookings stay on record;
// they are never hard-deleted or reactivated.
type Booking struct {
	ID     int    `json:"id"`
	UserID string `json:"user_id"`

	AddressID    int       `json:"address_id"`
	DeliveryDate time.Time `json:"delivery_date"`
	TimeBlock    string    `json:"time_block"` // e.g. "11:30-11:45"
	Meals        int       `json:"meals"`      // 1 or 2
	DishChoice   string    `json:"dish_choice"`
	Status       string    `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the client-supplied fields for create and update.
// DeliveryDate travels as "YYYY-MM-DD".
type Input struct {
	AddressID    int    `json:"address_id" binding:"required"`
	DeliveryDate string `json:"delivery_date" binding:"required"`
	TimeBlock    string `json:"time_block" binding:"required"`
	Meals        int    `json:"meals" binding:"required"`
	DishChoice   string `json:"dish_choice"`
}
