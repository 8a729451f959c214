package domain

// Role gates which operations a user may perform.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User represents an account. The JSON keys match the legacy users_db.json file.
type User struct {
	ID           int64  `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"hashed_password"`
	Role         Role   `json:"role"`
	Disabled     bool   `json:"disabled"`
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID   int64
	Username string
	Role     Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanActFor reports whether the principal may operate on data owned by userID.
// Admins may act on behalf of anyone.
func (p Principal) CanActFor(userID int64) bool {
	return p.IsAdmin() || p.UserID == userID
}
