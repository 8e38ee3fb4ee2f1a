package service

import (
	"context"
	"errors"

	"github.com/Johnnypham7496/users-api/internal/dto"
	"github.com/Johnnypham7496/users-api/internal/repository"
	"github.com/Johnnypham7496/users-api/pkg/validation"
)

var (
	// ErrUsernameEmpty is returned when a create request carries a blank username.
	ErrUsernameEmpty = errors.New("username field cannot be empty. Please check your payload and try again")
	// ErrEmailEmpty is returned when a create request carries a blank email.
	ErrEmailEmpty = errors.New("email field cannot be empty. Please check your payload and try again")
	// ErrRoleEmpty is returned when a create request carries a blank role.
	ErrRoleEmpty = errors.New("role field cannot be empty. Please check your payload and try again")
	// ErrRequestBodyEmpty is returned when an update request supplies neither email nor role.
	ErrRequestBodyEmpty = errors.New("request body cannot be empty. Please check your payload and try again")
	// ErrRequestFieldsEmpty is returned when every supplied update field is blank.
	ErrRequestFieldsEmpty = errors.New("request body fields cannot be empty. Please check your payload and try again")
	// ErrUserNotFound is returned when a lookup finds no user with the given username.
	ErrUserNotFound = errors.New("username not found. Please check your parameter and try again")
	// ErrUserNotFoundForUpdate is returned when an update targets an unknown username.
	ErrUserNotFoundForUpdate = errors.New("username not found. Please use Post to create a user record")
	// ErrUserAlreadyExists is returned when the username or email is already taken.
	ErrUserAlreadyExists = errors.New("username or email already exists. Please check your payload and try again")
)

// UserService defines the interface for user-related operations.
type UserService interface {
	// GetUsers returns every user.
	GetUsers(context.Context) ([]*dto.UserDTO, error)

	// GetUser returns the user with the given username.
	GetUser(context.Context, string) (*dto.UserDTO, error)

	// CreateUser validates and stores a new user.
	CreateUser(context.Context, *dto.UserCreateDTO) (*dto.UserDTO, error)

	// UpdateUser applies a partial update to an existing user.
	UpdateUser(context.Context, string, *dto.UserUpdateDTO) error

	// DeleteUser removes the user with the given username if it exists.
	DeleteUser(context.Context, string) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userRepository repository.UserRepository
}

// NewUserService creates a new UserServiceImpl instance with the provided userRepository.
func NewUserService(userRepository repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{
		userRepository: userRepository,
	}
}

func (us *UserServiceImpl) GetUsers(ctx context.Context) ([]*dto.UserDTO, error) {
	users, err := us.userRepository.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	userDTOs := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		userDTOs = append(userDTOs, dto.NewUserDTO(user))
	}

	return userDTOs, nil
}

func (us *UserServiceImpl) GetUser(ctx context.Context, username string) (*dto.UserDTO, error) {
	user, err := us.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return dto.NewUserDTO(user), nil
}

func (us *UserServiceImpl) CreateUser(ctx context.Context, userCreate *dto.UserCreateDTO) (*dto.UserDTO, error) {
	username := validation.Normalize(userCreate.Username)
	email := validation.Normalize(userCreate.Email)
	role := validation.Normalize(userCreate.Role)

	switch {
	case validation.IsBlank(username):
		return nil, ErrUsernameEmpty
	case validation.IsBlank(email):
		return nil, ErrEmailEmpty
	case validation.IsBlank(role):
		return nil, ErrRoleEmpty
	}

	user, err := us.userRepository.AddUser(ctx, username, email, role)
	if err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	return dto.NewUserDTO(user), nil
}

func (us *UserServiceImpl) UpdateUser(ctx context.Context, username string, userUpdate *dto.UserUpdateDTO) error {
	if userUpdate.IsEmpty() {
		return ErrRequestBodyEmpty
	}

	user, err := us.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFoundForUpdate
	}

	email := validation.NormalizeOptional(userUpdate.Email)
	role := validation.NormalizeOptional(userUpdate.Role)
	if validation.IsBlank(email) && validation.IsBlank(role) {
		return ErrRequestFieldsEmpty
	}

	if err := us.userRepository.UpdateUser(ctx, username, email, role); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return ErrUserAlreadyExists
		}

		return err
	}

	return nil
}

func (us *UserServiceImpl) DeleteUser(ctx context.Context, username string) error {
	return us.userRepository.DeleteUser(ctx, username)
}
