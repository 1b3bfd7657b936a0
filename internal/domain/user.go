package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	UserRoleAdmin  = "admin"
	UserRoleMember = "member"
)

type Claims struct {
	UserID    string
	TenantID  string
	UserName  string
	UserEmail string
	UserRole  string
	jwt.RegisteredClaims
}

// IsAdmin indica se o usuário autenticado possui papel de administrador
func (c *Claims) IsAdmin() bool {
	return c != nil && c.UserRole == UserRoleAdmin
}
