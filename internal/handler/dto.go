package handler

import (
	"github.com/msomdec/fitcoach/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash never
// leaves the server.
type UserDTO struct {
	ID       int64       `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	Disabled bool        `json:"disabled"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Disabled: u.Disabled,
	}
}

func toUserDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	return dtos
}

// credentialsRequest is the body of signup and login.
type credentialsRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	UserID      int64       `json:"user_id"`
	Role        domain.Role `json:"role"`
}

// userUpdateRequest replaces an account's fields. An empty password and an
// omitted role or disabled flag keep the current values.
type userUpdateRequest struct {
	Username string       `json:"username"`
	Password string       `json:"password"`
	Role     *domain.Role `json:"role"`
	Disabled *bool        `json:"disabled"`
}

// registrationRequest signs a user up for a class. UserID defaults to the
// caller.
type registrationRequest struct {
	UserID  int64 `json:"user_id"`
	ClassID int64 `json:"class_id"`
}
