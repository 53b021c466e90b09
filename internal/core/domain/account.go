package domain

import "time"

type Role string

const (
	RoleStudent        Role = "student"
	RoleDepartmentHead Role = "hod"
	RoleWarden         Role = "warden"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleDepartmentHead || r == RoleWarden
}

// LoginPath returns the login entry point for the role. Unauthenticated
// requests to a role-gated route are redirected here.
func (r Role) LoginPath() string {
	switch r {
	case RoleDepartmentHead:
		return "/hod/login"
	case RoleWarden:
		return "/warden/login"
	default:
		return "/student/login"
	}
}

// HomePath returns the landing page for the role.
func (r Role) HomePath() string {
	switch r {
	case RoleDepartmentHead:
		return "/hod/home"
	case RoleWarden:
		return "/warden/home"
	default:
		return "/student/home"
	}
}

const DefaultProfileImage = "/images/default-profile.jpg"

// Account is the tagged union over the three account variants. Role selects
// the variant: Department is set for students and department heads, Hostel
// for students and wardens. Usernames are unique within a role's collection
// only, not across roles.
type Account struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password" json:"-"`
	Role         Role      `bson:"type" json:"type"`
	Image        string    `bson:"image" json:"image"`
	Department   string    `bson:"department,omitempty" json:"department,omitempty"`
	Hostel       string    `bson:"hostel,omitempty" json:"hostel,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
