package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

// AccountService serves profile views and edits for all three roles.
type AccountService struct {
	accounts ports.AccountRepository
}

var _ ports.AccountService = (*AccountService)(nil)

func NewAccountService(accounts ports.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

func (s *AccountService) Get(ctx context.Context, role domain.Role, id string) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, role, id)
}

func (s *AccountService) UpdateProfile(ctx context.Context, role domain.Role, id string, upd ports.ProfileUpdate) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, role, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != "" {
		account.Name = upd.Name
	}
	if upd.Image != "" {
		account.Image = upd.Image
	}
	if upd.Password != "" {
		if len(upd.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = string(hash)
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
