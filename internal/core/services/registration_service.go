package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

const minPasswordLength = 6

// RegistrationService creates accounts. Hashing the secret is an explicit
// step of this write path: the repository only ever sees the hash.
type RegistrationService struct {
	accounts ports.AccountRepository
}

var _ ports.RegistrationService = (*RegistrationService)(nil)

func NewRegistrationService(accounts ports.AccountRepository) *RegistrationService {
	return &RegistrationService{accounts: accounts}
}

func (s *RegistrationService) Register(ctx context.Context, in ports.RegistrationInput) (*domain.Account, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	// Uniqueness is per role store: the same username may exist under a
	// different role.
	if _, err := s.accounts.FindByUsername(ctx, in.Role, in.Username); err == nil {
		return nil, fmt.Errorf("%w: username already exists", domain.ErrValidation)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	image := in.Image
	if image == "" {
		image = domain.DefaultProfileImage
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		Image:        image,
		Department:   in.Department,
		Hostel:       in.Hostel,
		CreatedAt:    time.Now(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func validateRegistration(in ports.RegistrationInput) error {
	if !in.Role.Valid() {
		return fmt.Errorf("%w: type is required", domain.ErrValidation)
	}
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.Username == "" {
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if in.Password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	if in.Password != in.PasswordConfirm {
		return fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}

	// Role-conditional affiliation: department for students and heads,
	// hostel for students and wardens.
	if (in.Role == domain.RoleStudent || in.Role == domain.RoleDepartmentHead) && in.Department == "" {
		return fmt.Errorf("%w: department is required", domain.ErrValidation)
	}
	if (in.Role == domain.RoleStudent || in.Role == domain.RoleWarden) && in.Hostel == "" {
		return fmt.Errorf("%w: hostel is required", domain.ErrValidation)
	}
	return nil
}
