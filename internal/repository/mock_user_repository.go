package repository

import (
	"context"

	"github.com/Johnnypham7496/users-api/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository for testing purposes.
// It keeps users in insertion order and enforces username and email uniqueness.
type MockUserRepository struct {
	Users          []*model.User // Users in insertion order
	LastInsertedID int           // To simulate auto-increment behavior
	Err            error         // When set, every method fails with Err
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make([]*model.User, 0),
	}
}

// GetAllUsers is a mock implementation of GetAllUsers method.
func (m *MockUserRepository) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	users := make([]*model.User, 0, len(m.Users))
	for _, user := range m.Users {
		u := *user
		users = append(users, &u)
	}

	return users, nil
}

// GetUserByUsername is a mock implementation of GetUserByUsername method.
func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	if i := m.indexOf(username); i != -1 {
		u := *m.Users[i]
		return &u, nil
	}

	return nil, nil
}

// AddUser is a mock implementation of AddUser method.
func (m *MockUserRepository) AddUser(ctx context.Context, username, email, role string) (*model.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	for _, user := range m.Users {
		if user.Username == username || user.Email == email {
			return nil, ErrUserAlreadyExists
		}
	}

	m.LastInsertedID++
	user := &model.User{
		ID:       m.LastInsertedID,
		Username: username,
		Email:    email,
		Role:     role,
	}
	m.Users = append(m.Users, user)

	u := *user
	return &u, nil
}

// UpdateUser is a mock implementation of UpdateUser method.
func (m *MockUserRepository) UpdateUser(ctx context.Context, username, email, role string) error {
	if m.Err != nil {
		return m.Err
	}

	i := m.indexOf(username)
	if i == -1 {
		return nil
	}

	if email != "" {
		for _, user := range m.Users {
			if user.Email == email && user.Username != username {
				return ErrUserAlreadyExists
			}
		}
		m.Users[i].Email = email
	}
	if role != "" {
		m.Users[i].Role = role
	}

	return nil
}

// DeleteUser is a mock implementation of DeleteUser method.
func (m *MockUserRepository) DeleteUser(ctx context.Context, username string) error {
	if m.Err != nil {
		return m.Err
	}

	if i := m.indexOf(username); i != -1 {
		m.Users = append(m.Users[:i], m.Users[i+1:]...)
	}

	return nil
}

func (m *MockUserRepository) indexOf(username string) int {
	for i, user := range m.Users {
		if user.Username == username {
			return i
		}
	}
	return -1
}
