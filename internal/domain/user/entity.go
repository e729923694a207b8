package user

import "time"

type Role string

const (
	RolePending    Role = "pending"     // Applied, not yet approved
	RoleVolunteer  Role = "volunteer"   // Approved volunteer
	RoleAdmin      Role = "admin"       // Organisation staff - full access
	RoleGroupAdmin Role = "group_admin" // Volunteer who also manages a group
)

func ValidRoles() []string {
	return []string{string(RolePending), string(RoleVolunteer), string(RoleAdmin), string(RoleGroupAdmin)}
}

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	FirstName       string
	LastName        string
	Role            Role
	Active          bool
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if the user is organisation staff
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsVolunteer checks if the user may sign up for shifts
func (u *User) IsVolunteer() bool {
	return u.Role == RoleVolunteer || u.Role == RoleGroupAdmin
}

// IsPending checks if the user is still awaiting application approval
func (u *User) IsPending() bool {
	return u.Role == RolePending
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
