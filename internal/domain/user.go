package domain

// Role identifies what a signed-in identity may do.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a citizen or administrator. Records are seeded at start and never mutated.
type User struct {
	ID              string
	Name            string
	Email           string
	Role            Role
	SubmittedIssues int
	ResolvedIssues  int
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
