package dto

import "time"

type CreateUserRequest struct {
	Username string   `json:"username" example:"bob"`
	Password string   `json:"password" example:"x"`
	Roles    []string `json:"roles" example:"Employee"`
}

// UpdateUserRequest uses a pointer for Active so that a missing flag can be told
// apart from false. An empty Password keeps the stored hash.
type UpdateUserRequest struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
	Active   *bool    `json:"active"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
