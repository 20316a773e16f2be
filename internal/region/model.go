package region

// Region is an admin-defined delivery area.
type Region struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	AvailableLunch  bool `json:"available_lunch"`  // 11:30-14:00
	AvailableDinner bool `json:"available_dinner"` // 18:00-21:00
}

type CreateInput struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	AvailableLunch  bool    `json:"available_lunch"`
	AvailableDinner bool    `json:"available_dinner"`
}
