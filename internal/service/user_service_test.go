package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Johnnypham7496/users-api/internal/dto"
	"github.com/Johnnypham7496/users-api/internal/repository"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func newSeededService(t *testing.T) (*UserServiceImpl, *repository.MockUserRepository) {
	t.Helper()

	repo := repository.NewMockUserRepository()
	_, err := repository.SeedTestData(context.Background(), repo)
	require.NoError(t, err)

	return NewUserService(repo), repo
}

func TestGetUsers(t *testing.T) {
	svc, _ := newSeededService(t)

	users, err := svc.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, &dto.UserDTO{ID: 1, Username: "darth.vader", Email: "darth.vader@gmail.com", Role: "villian"}, users[0])
}

func TestGetUser(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	user, err := svc.GetUser(ctx, "bruce.wayne")
	require.NoError(t, err)
	require.Equal(t, "batman@gmail.com", user.Email)

	_, err = svc.GetUser(ctx, "this.not.found")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateUserValidation(t *testing.T) {
	data := []struct {
		name        string
		input       *dto.UserCreateDTO
		expectedErr error
	}{
		{"all empty", &dto.UserCreateDTO{}, ErrUsernameEmpty},
		{"blank username", &dto.UserCreateDTO{Username: "  ", Email: "a@b.com", Role: "hero"}, ErrUsernameEmpty},
		{"blank email", &dto.UserCreateDTO{Username: "tony.stark", Email: " \t", Role: "hero"}, ErrEmailEmpty},
		{"blank email and role", &dto.UserCreateDTO{Username: "tony.stark"}, ErrEmailEmpty},
		{"blank role", &dto.UserCreateDTO{Username: "tony.stark", Email: "tony@stark.com", Role: " "}, ErrRoleEmpty},
	}

	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			svc, repo := newSeededService(t)

			_, err := svc.CreateUser(context.Background(), d.input)
			require.ErrorIs(t, err, d.expectedErr)
			require.Len(t, repo.Users, 3)
		})
	}
}

func TestCreateUser(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &dto.UserCreateDTO{Username: " tony.stark ", Email: " tony@stark.com", Role: "hero "})
	require.NoError(t, err)
	require.Equal(t, &dto.UserDTO{ID: 4, Username: "tony.stark", Email: "tony@stark.com", Role: "hero"}, user)

	fetched, err := svc.GetUser(ctx, "tony.stark")
	require.NoError(t, err)
	require.Equal(t, user, fetched)
}

func TestCreateUserDuplicate(t *testing.T) {
	svc, _ := newSeededService(t)

	_, err := svc.CreateUser(context.Background(), &dto.UserCreateDTO{Username: "darth.vader", Email: "vader@empire.gov", Role: "sith"})
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUpdateUser(t *testing.T) {
	data := []struct {
		name          string
		username      string
		input         *dto.UserUpdateDTO
		expectedErr   error
		expectedEmail string
		expectedRole  string
	}{
		{
			name:          "empty body",
			username:      "darth.vader",
			input:         &dto.UserUpdateDTO{},
			expectedErr:   ErrRequestBodyEmpty,
			expectedEmail: "darth.vader@gmail.com",
			expectedRole:  "villian",
		},
		{
			name:        "unknown user",
			username:    "this.not.found",
			input:       &dto.UserUpdateDTO{Email: strPtr("x@y.com"), Role: strPtr("r")},
			expectedErr: ErrUserNotFoundForUpdate,
		},
		{
			name:        "empty body wins over unknown user",
			username:    "this.not.found",
			input:       &dto.UserUpdateDTO{},
			expectedErr: ErrRequestBodyEmpty,
		},
		{
			name:          "blank fields",
			username:      "darth.vader",
			input:         &dto.UserUpdateDTO{Email: strPtr(" "), Role: strPtr("")},
			expectedErr:   ErrRequestFieldsEmpty,
			expectedEmail: "darth.vader@gmail.com",
			expectedRole:  "villian",
		},
		{
			name:          "blank email only",
			username:      "darth.vader",
			input:         &dto.UserUpdateDTO{Email: strPtr("  ")},
			expectedErr:   ErrRequestFieldsEmpty,
			expectedEmail: "darth.vader@gmail.com",
			expectedRole:  "villian",
		},
		{
			name:          "email only",
			username:      "darth.vader",
			input:         &dto.UserUpdateDTO{Email: strPtr(" anakin@jedi.org ")},
			expectedEmail: "anakin@jedi.org",
			expectedRole:  "villian",
		},
		{
			name:          "role only",
			username:      "darth.vader",
			input:         &dto.UserUpdateDTO{Role: strPtr("jedi")},
			expectedEmail: "darth.vader@gmail.com",
			expectedRole:  "jedi",
		},
		{
			name:          "blank email with role",
			username:      "darth.vader",
			input:         &dto.UserUpdateDTO{Email: strPtr(""), Role: strPtr("sith lord")},
			expectedEmail: "darth.vader@gmail.com",
			expectedRole:  "sith lord",
		},
		{
			name:          "email collision",
			username:      "darth.vader",
			input:         &dto.UserUpdateDTO{Email: strPtr("batman@gmail.com")},
			expectedErr:   ErrUserAlreadyExists,
			expectedEmail: "darth.vader@gmail.com",
			expectedRole:  "villian",
		},
	}

	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			svc, _ := newSeededService(t)
			ctx := context.Background()

			err := svc.UpdateUser(ctx, d.username, d.input)
			if d.expectedErr != nil {
				require.ErrorIs(t, err, d.expectedErr)
			} else {
				require.NoError(t, err)
			}

			if d.expectedEmail == "" {
				return
			}

			user, err := svc.GetUser(ctx, d.username)
			require.NoError(t, err)
			require.Equal(t, d.expectedEmail, user.Email)
			require.Equal(t, d.expectedRole, user.Role)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteUser(ctx, "darth.vader"))
	require.NoError(t, svc.DeleteUser(ctx, "darth.vader"))

	_, err := svc.GetUser(ctx, "darth.vader")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceStoreErrors(t *testing.T) {
	errStore := errors.New("store unavailable")

	repo := repository.NewMockUserRepository()
	repo.Err = errStore
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.GetUsers(ctx)
	require.ErrorIs(t, err, errStore)

	_, err = svc.GetUser(ctx, "darth.vader")
	require.ErrorIs(t, err, errStore)

	_, err = svc.CreateUser(ctx, &dto.UserCreateDTO{Username: "a", Email: "b", Role: "c"})
	require.ErrorIs(t, err, errStore)

	err = svc.UpdateUser(ctx, "darth.vader", &dto.UserUpdateDTO{Role: strPtr("jedi")})
	require.ErrorIs(t, err, errStore)

	err = svc.DeleteUser(ctx, "darth.vader")
	require.ErrorIs(t, err, errStore)
}
