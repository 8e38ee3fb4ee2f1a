package repository

import (
	"context"
	"fmt"

	"github.com/Johnnypham7496/users-api/internal/model"
)

// SeedUsers are the demo users inserted by SeedTestData.
var SeedUsers = []model.User{
	{Username: "darth.vader", Email: "darth.vader@gmail.com", Role: "villian"},
	{Username: "bruce.wayne", Email: "batman@gmail.com", Role: "hero"},
	{Username: "captain.america", Email: "captain.america@gmail.com", Role: "hero"},
}

// SeedTestData inserts SeedUsers in order when the store holds no users yet.
// It reports whether anything was inserted.
func SeedTestData(ctx context.Context, repo UserRepository) (bool, error) {
	users, err := repo.GetAllUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to seed test data: %w", err)
	}
	if len(users) > 0 {
		return false, nil
	}

	for _, u := range SeedUsers {
		if _, err := repo.AddUser(ctx, u.Username, u.Email, u.Role); err != nil {
			return false, fmt.Errorf("failed to seed user %s: %w", u.Username, err)
		}
	}

	return true, nil
}
