package model

// Roles and account statuses used by the upstream /users collection.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DefaultAdminAvatar is shown when an admin record has no avatar.
const DefaultAdminAvatar = "👨‍💼"

// User represents an account record in the upstream `/users` collection.
// The upstream stores the password alongside the profile; it may be a
// bcrypt hash or, for legacy records, plain text.
//
// Fields:
//  ID        – upstream identifier (user_<short id> for new rows).
//  FullName  – display name.
//  Email     – login email.
//  Phone     – contact phone.
//  Password  – bcrypt hash or legacy plain text.
//  Role      – admin or user.
//  Status    – active or inactive.
//  Avatar    – emoji or image URL.
//  CreatedAt – ISO-8601 creation timestamp.
type User struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Active reports whether the account may sign in.  Records without a status
// predate the field and count as active.
func (u User) Active() bool {
	return u.Status == "" || u.Status == StatusActive
}

// ToggledStatus returns the opposite account status.
func (u User) ToggledStatus() string {
	if u.Active() {
		return StatusInactive
	}
	return StatusActive
}

// Principal is the authenticated admin held by a session.  It is the record
// persisted under the session storage key.
type Principal struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// PrincipalFromUser copies the public profile fields of u, filling the
// default avatar when missing.
func PrincipalFromUser(u User) Principal {
	avatar := u.Avatar
	if avatar == "" {
		avatar = DefaultAdminAvatar
	}
	return Principal{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		Avatar:   avatar,
	}
}
