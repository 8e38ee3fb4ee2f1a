package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Johnnypham7496/users-api/internal/database"
	"github.com/Johnnypham7496/users-api/internal/model"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const pqUniqueViolation = pq.ErrorCode("23505")

// ErrUserAlreadyExists is returned when a write collides with an existing username or email.
var ErrUserAlreadyExists = errors.New("user with the provided username or email already exists")

// UserRepository is an interface that defines the methods required for user data management.
type UserRepository interface {
	// GetAllUsers retrieves all users from the database in insertion order.
	GetAllUsers(ctx context.Context) (users []*model.User, err error)

	// GetUserByUsername retrieves a user from the database by their username.
	// It returns nil without an error when no user matches.
	GetUserByUsername(ctx context.Context, username string) (user *model.User, err error)

	// AddUser adds a new user to the database.
	AddUser(ctx context.Context, username, email, role string) (addedUser *model.User, err error)

	// UpdateUser overwrites the email and role of a user, skipping empty values.
	UpdateUser(ctx context.Context, username, email, role string) (err error)

	// DeleteUser deletes a user from the database by their username.
	DeleteUser(ctx context.Context, username string) (err error)
}

// UserRepositoryImpl implements the UserRepository interface.
type UserRepositoryImpl struct {
	db database.Database
}

// NewUserRepository creates a new UserRepositoryImpl instance with the provided database.
func NewUserRepository(db database.Database) *UserRepositoryImpl {
	return &UserRepositoryImpl{
		db: db,
	}
}

func (ur *UserRepositoryImpl) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	query := "SELECT id, username, email, role FROM users ORDER BY id"

	rows, err := ur.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error in result set: %w", err)
	}

	return users, nil
}

func (ur *UserRepositoryImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := "SELECT id, username, email, role FROM users WHERE username = $1"

	row, err := ur.db.QueryRowContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	var user model.User
	if err = row.Scan(&user.ID, &user.Username, &user.Email, &user.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

func (ur *UserRepositoryImpl) AddUser(ctx context.Context, username, email, role string) (*model.User, error) {
	query := "INSERT INTO users (username, email, role) VALUES ($1, $2, $3) RETURNING id"

	row, err := ur.db.QueryRowContext(ctx, query, username, email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to add user: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Role:     role,
	}
	if err = row.Scan(&user.ID); err != nil {
		return nil, fmt.Errorf("failed to add user: %w", translateError(err))
	}

	return user, nil
}

func (ur *UserRepositoryImpl) UpdateUser(ctx context.Context, username, email, role string) error {
	query := `
		UPDATE users
		SET email = CASE WHEN $1 = '' THEN email ELSE $1 END,
		    role  = CASE WHEN $2 = '' THEN role ELSE $2 END
		WHERE username = $3
	`

	if _, err := ur.db.ExecContext(ctx, query, email, role, username); err != nil {
		return fmt.Errorf("failed to update user: %w", translateError(err))
	}

	return nil
}

func (ur *UserRepositoryImpl) DeleteUser(ctx context.Context, username string) error {
	query := "DELETE FROM users WHERE username = $1"

	if _, err := ur.db.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// translateError maps driver unique-constraint failures onto ErrUserAlreadyExists.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("%w: %s", ErrUserAlreadyExists, pqErr.Constraint)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrUserAlreadyExists
	}

	return err
}
