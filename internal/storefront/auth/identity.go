package auth

// Identity is who is signed in. It is persisted as JSON under kv.KeyUser.
type Identity struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// RoleOf derives the role from identity alone. Roles are never stored.
func RoleOf(identity *Identity) Role {
	switch {
	case identity == nil:
		return RoleGuest
	case identity.IsAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}
