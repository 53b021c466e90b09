package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

// AuthService verifies credentials against a single role's store. Each role
// is authenticated independently; there is no cross-role fallback.
type AuthService struct {
	accounts ports.AccountRepository
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(accounts ports.AccountRepository) *AuthService {
	return &AuthService{accounts: accounts}
}

func (s *AuthService) Authenticate(ctx context.Context, role domain.Role, username, password string) (*domain.Account, error) {
	account, err := s.accounts.FindByUsername(ctx, role, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredential
	}

	return account, nil
}
