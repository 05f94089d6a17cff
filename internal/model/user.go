package model

import "time"

// Role is the access level carried in a user's token.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered shopper. The cart is embedded in the user
// record and owned by it exclusively.
type User struct {
	ID           string    `json:"_id" db:"id" bson:"_id"`
	Name         string    `json:"name" db:"name" bson:"name"`
	Email        string    `json:"email" db:"email" bson:"email"`
	PasswordHash string    `json:"-" db:"password_hash" bson:"password"`
	Role         Role      `json:"role" db:"role" bson:"role"`
	Cart         Cart      `json:"cartTwo" db:"cart" bson:"cartTwo"`
	CreatedAt    time.Time `json:"date" db:"created_at" bson:"date"`
}

// Profile returns the public view of the user.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// UserProfile is the user as shown in admin order listings.
type UserProfile struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"date"`
}

// SignupRequest represents the request payload for POST /signup.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// LoginRequest represents the request payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Role    Role   `json:"role"`
}
