package user

import (
	"time"

	"github.com/google/uuid"
)

// Roles known to the back office. Customers get RoleCustomer on registration;
// staff roles are assigned out of band.
const (
	RoleCustomer    = "customer"
	RoleAdmin       = "admin"
	RoleCashier     = "cashier"
	RoleStorekeeper = "storekeeper"
)

// User represents an account in the system.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
