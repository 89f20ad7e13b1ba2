package domain

// Built-in role names used by the route allowlists.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// SelfRegistration is the creator stamp for accounts created through
// POST /auth/register.
const SelfRegistration = "self-registration"

// User is an account in the credential store. Username is unique and
// compared case-sensitively.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email,omitempty"`
	RoleID       string `json:"roleId"`
	Active       bool   `json:"active"`
	Audit
}

// HasLocalPassword reports whether a local password hash is stored for the
// account. Accounts without one are authenticated by the external service
// alone.
func (u *User) HasLocalPassword() bool {
	return u.PasswordHash != ""
}

// Role is referenced by User.RoleID. Roles are never created implicitly.
type Role struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Audit
}
