package dto

import "github.com/Johnnypham7496/users-api/internal/model"

// UserDTO represents a data transfer object (DTO) for a user.
type UserDTO struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// NewUserDTO converts a persisted user into its outward representation.
func NewUserDTO(user *model.User) *UserDTO {
	return &UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

// UserCreateDTO represents a data transfer object (DTO) for a create user request.
type UserCreateDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UserUpdateDTO represents a data transfer object (DTO) for an update user request.
// A nil field was either omitted from the payload or sent as null.
type UserUpdateDTO struct {
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// IsEmpty reports whether neither field was supplied.
func (u *UserUpdateDTO) IsEmpty() bool {
	return u.Email == nil && u.Role == nil
}
