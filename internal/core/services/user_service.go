package services

import (
	"context"
	"errors"
	"strings"

	"civicfix/internal/adapters/persistence/models"
	"civicfix/internal/adapters/persistence/repositories"
	"civicfix/internal/core/domain"

	"gorm.io/gorm"
)

// UserService handles profile operations. Profiles are self-scoped: the
// acting principal's own id is always the subject.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfileInput represents profile update input. Empty fields are
// left unchanged.
type UpdateProfileInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Language string `json:"language"`
}

// GetProfile returns the principal's own profile
func (s *UserService) GetProfile(ctx context.Context, p domain.Principal) (*models.UserResponse, error) {
	user, ok := p.(domain.UserPrincipal)
	if !ok {
		return nil, domain.ErrForbidden
	}

	record, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return record.ToResponse(), nil
}

// UpdateProfile updates the principal's own profile
func (s *UserService) UpdateProfile(ctx context.Context, p domain.Principal, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, ok := p.(domain.UserPrincipal)
	if !ok {
		return nil, domain.ErrForbidden
	}

	record, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		record.Name = input.Name
	}
	if input.Email != "" {
		email := strings.TrimSpace(input.Email)
		record.Email = &email
	}
	if input.Mobile != "" {
		mobile := strings.TrimSpace(input.Mobile)
		record.Mobile = &mobile
	}
	if input.Language != "" {
		record.Language = input.Language
	}

	if err := s.userRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record.ToResponse(), nil
}
