package domain

import "time"

const (
	RoleEmployee = "employee"
	RoleClient   = "client"
	RoleCompany  = "company"
)

// User is a login able to obtain an API token. Subject is the client login or
// the company account id the token acts for.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Subject      string    `json:"subject,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
