package user

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gangosri/his/internal/platform/auth"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrSelfDeactivation = errors.New("you cannot deactivate your own account")
)

// User maps to the users table. The password hash never leaves the API.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	FullName       string    `db:"full_name" json:"full_name"`
	Role           auth.Role `db:"role" json:"role"`
	EmployeeID     *string   `db:"employee_id" json:"employee_id,omitempty"`
	Specialization *string   `db:"specialization" json:"specialization,omitempty"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Active         bool      `db:"is_active" json:"is_active"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Principal converts the stored user to the request principal attached to
// authenticated requests.
func (u *User) Principal() *auth.Principal {
	return &auth.Principal{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		Active:   u.Active,
	}
}

// RegisterInput is the payload for creating a staff account.
type RegisterInput struct {
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	FullName       string  `json:"full_name"`
	Role           string  `json:"role"`
	EmployeeID     *string `json:"employee_id,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	Phone          *string `json:"phone,omitempty"`
}

// LoginInput is the payload for password authentication.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}
