package onboarding

import "time"

const (
	ClientTypeWeekly     = "weekly"
	ClientTypeSubscriber = "subscriber"
)

// ServiceDays names the week positions in service-week order (Wed..Tue).
var ServiceDays = [7]string{
	"Wednesday", "Thursday", "Friday", "Saturday", "Sunday", "Monday", "Tuesday",
}

// Draft is the pre-registration onboarding state. It exists before the user
// account does and is linked once at registration.
type Draft struct {
	ID         string    `json:"id"` // server-generated UUID
	WeekStart  time.Time `json:"week_start"`
	ClientType string    `json:"client_type,omitempty"` // weekly | subscriber, empty until chosen
	IBAN       string    `json:"iban,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// BehaviorCell is one cell of the behaviour table (Wed..Tue x slot 1/2).
// Pref only ever holds meat | fish | blank, never dish names.
type BehaviorCell struct {
	DraftID      string `json:"draft_id"`
	WeekdayIndex int    `json:"weekday_index"` // 0..6 for Wed..Tue
	Slot         int    `json:"slot"`          // 1 or 2
	Pref         string `json:"pref"`
}

// FirstWeekSelection is the literal choice the client made for one day of
// the first service week. It doubles as the template for synthesizing
// later subscriber weeks.
type FirstWeekSelection struct {
	DraftID      string    `json:"draft_id"`
	WeekdayIndex int       `json:"weekday_index"`
	DeliveryDate time.Time `json:"delivery_date"`
	Meals        int       `json:"meals"` // 0, 1 or 2
	DishChoice   string    `json:"dish_choice,omitempty"`
	TimeBlock    string    `json:"time_block,omitempty"`
	AddressID    *int      `json:"address_id,omitempty"`
}

// --------------------------------------------------
// Inputs / results
// --------------------------------------------------

// DaySelection is one day of the first-week submission. Date travels as
// "YYYY-MM-DD" and must line up with week_start + index.
type DaySelection struct {
	Date       string `json:"date" binding:"required"`
	Meals      int    `json:"meals"`
	DishChoice string `json:"dish_choice"`
	TimeBlock  string `json:"time_block"`
	AddressID  *int   `json:"address_id"`
}

type FirstWeekInput struct {
	WeekStart string         `json:"week_start" binding:"required"`
	Days      []DaySelection `json:"days" binding:"required"`
}

// DayPrefs is the derived (meal1, meal2) preference pair for one day.
type DayPrefs struct {
	Meal1 string `json:"meal1"`
	Meal2 string `json:"meal2"`
}

// FirstWeekResult reports the stored draft and its behaviour grid, keyed by
// service-day name.
type FirstWeekResult struct {
	DraftID   string              `json:"draft_id"`
	WeekStart time.Time           `json:"week_start"`
	Grid      map[string]DayPrefs `json:"grid"`
}

// ExplainSection is one block of the client-type explanation payload.
type ExplainSection struct {
	Type    string   `json:"type"` // summary | rules | payment_notice | iban_required
	Content string   `json:"content,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// Explanation is the read-only payload behind the onboarding rules screen.
type Explanation struct {
	ClientType string           `json:"client_type"`
	Title      string           `json:"title"`
	Sections   []ExplainSection `json:"sections"`
}
