package auth

const (
	RoleClient  = "client"
	RoleAdmin   = "admin"
	RoleKitchen = "kitchen"
)

// User is the domain entity.
type User struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	Password          string
	Role              string
	ClientType        string
	OnboardingDraftID string
	IBAN              string
	IsFounder         bool
	IsActive          bool
}
