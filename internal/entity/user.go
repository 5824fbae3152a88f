package entity

import "time"

const (
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"
	RoleMember    = "member"
)

type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Password       string     `json:"-"`
	Role           string     `json:"role"` // admin, librarian, member
	MobileNo       string     `json:"mobile_no,omitempty"`
	MembershipDate *time.Time `json:"membership_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Identity is the caller of an operation as resolved from the request.
// A zero Role means the request carried no valid credentials.
type Identity struct {
	ID   string
	Role string
}

func (i Identity) Authenticated() bool {
	return i.Role != ""
}
