package mocks

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campuskit/leave-service/internal/core/domain"
)

func timeNow() time.Time { return time.Now() }

// HashPassword hashes a plaintext secret the way the registration write path
// does, for seeding accounts in tests.
func HashPassword(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

// Student builds a student account for test setup.
func Student(id, username, department, hostel, password string) *domain.Account {
	return &domain.Account{
		ID:           id,
		Name:         "Test " + username,
		Username:     username,
		PasswordHash: HashPassword(password),
		Role:         domain.RoleStudent,
		Image:        domain.DefaultProfileImage,
		Department:   department,
		Hostel:       hostel,
		CreatedAt:    time.Now(),
	}
}

// DepartmentHead builds a department head account for test setup.
func DepartmentHead(id, username, department, password string) *domain.Account {
	return &domain.Account{
		ID:           id,
		Name:         "Test " + username,
		Username:     username,
		PasswordHash: HashPassword(password),
		Role:         domain.RoleDepartmentHead,
		Image:        domain.DefaultProfileImage,
		Department:   department,
		CreatedAt:    time.Now(),
	}
}

// Warden builds a warden account for test setup.
func Warden(id, username, hostel, password string) *domain.Account {
	return &domain.Account{
		ID:           id,
		Name:         "Test " + username,
		Username:     username,
		PasswordHash: HashPassword(password),
		Role:         domain.RoleWarden,
		Image:        domain.DefaultProfileImage,
		Hostel:       hostel,
		CreatedAt:    time.Now(),
	}
}
