package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/tanjilh136/mealprep/internal/onboarding"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
	ErrDraftNotFound      = errors.New("onboarding draft not found")
	ErrInvalidRole        = errors.New("role must be 'client', 'admin' or 'kitchen'")
)

// DraftReader loads onboarding drafts so registration can adopt one.
// onboarding.Repository satisfies it.
type DraftReader interface {
	GetDraft(ctx context.Context, draftID string) (*onboarding.Draft, error)
}

type Service struct {
	repo   UserRepository
	drafts DraftReader
}

func NewService(repo UserRepository, drafts DraftReader) *Service {
	return &Service{repo: repo, drafts: drafts}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	DraftID  string `json:"draft_id"`
}

// Register creates a client account. When a draft id is given, the draft's
// client type and IBAN are adopted onto the new user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, errors.New("missing required fields")
	}

	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	user := &User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Role:     RoleClient,
		IsActive: true,
	}

	if in.DraftID != "" {
		draft, err := s.drafts.GetDraft(ctx, in.DraftID)
		if errors.Is(err, onboarding.ErrNotFound) {
			return nil, ErrDraftNotFound
		}
		if err != nil {
			return nil, err
		}
		user.OnboardingDraftID = draft.ID
		user.ClientType = draft.ClientType
		user.IBAN = draft.IBAN
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(in.Password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashedPassword)

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ResetPassword matches the account by email (and phone when the account
// has one on file) and replaces the hash. No email loop.
func (s *Service) ResetPassword(ctx context.Context, email, phone, newPassword string) error {
	if newPassword == "" {
		return errors.New("new password is required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}
	if user.Phone != "" && user.Phone != phone {
		return ErrUserNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, user.ID, string(hashed))
}

func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// ListUsers backs the admin user listing.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// SetRole changes a user's role. Admin only at the route layer.
func (s *Service) SetRole(ctx context.Context, userID, role string) error {
	if role != RoleClient && role != RoleAdmin && role != RoleKitchen {
		return ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, userID, role)
}
