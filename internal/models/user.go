package models

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleGrader     UserRole = "grader"
	RoleAdmin      UserRole = "admin"
)

// ValidRoles lists every role a user account may carry.
var ValidRoles = []UserRole{RoleStudent, RoleInstructor, RoleGrader, RoleAdmin}

func (r UserRole) Valid() bool {
	for _, role := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is an account record. Email is the uniqueness key; the id is a
// sequential integer assigned by the store.
type User struct {
	ID           int      `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	Role         UserRole `json:"role"`
}

// Public returns a copy safe to embed in API responses.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
