package directory

import "time"

// Role classifies what a user may access.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleBasic Role = "basic"
)

// User is a single directory record. Password and Secret never appear in
// JSON responses.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	Secret    string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the record carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Directory is a read-only set of user records provisioned once at startup.
// All lookups are exact-match and case-sensitive; a miss is reported with a
// false boolean, not an error. The record slice is copied on construction so
// callers cannot mutate it afterwards.
type Directory struct {
	users []User
}

// New builds a directory over a private copy of the given records.
func New(users []User) *Directory {
	copied := make([]User, len(users))
	copy(copied, users)
	return &Directory{users: copied}
}

// Fixed returns the demo directory: two well-known accounts with plaintext
// passwords and static bearer secrets. This is teaching data, not a vault.
func Fixed() *Directory {
	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return New([]User{
		{
			ID:        1,
			Username:  "admin",
			Password:  "admin123",
			Role:      RoleAdmin,
			Secret:    "admin-secret-123",
			CreatedAt: created,
		},
		{
			ID:        2,
			Username:  "user",
			Password:  "user123",
			Role:      RoleBasic,
			Secret:    "user-secret-456",
			CreatedAt: created,
		},
	})
}

// FindByID looks up a record by its numeric identifier.
func (d *Directory) FindByID(id int64) (User, bool) {
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FindByUsername looks up a record by exact username.
func (d *Directory) FindByUsername(username string) (User, bool) {
	for _, u := range d.users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}

// FindBySecret looks up a record by its static bearer secret.
func (d *Directory) FindBySecret(secret string) (User, bool) {
	if secret == "" {
		return User{}, false
	}
	for _, u := range d.users {
		if u.Secret == secret {
			return u, true
		}
	}
	return User{}, false
}
