package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"user-manager/internal/domain"
	"user-manager/internal/repository"
)

// SeedUser describes an account ensured at startup.
type SeedUser struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

// DefaultUsers returns the bootstrap accounts: one admin and one regular user.
func DefaultUsers() []SeedUser {
	return []SeedUser{
		{
			Username:  "admin",
			FirstName: "Admin",
			LastName:  "User",
			Email:     "admin@example.com",
			Password:  "adminpassword",
			Role:      domain.RoleAdmin,
		},
		{
			Username:  "user",
			FirstName: "Regular",
			LastName:  "User",
			Email:     "user@example.com",
			Password:  "userpassword",
			Role:      domain.RoleUser,
		},
	}
}

// EnsureSeedUsers creates each seed account that does not exist yet.
// Existing usernames are left untouched, so the call is idempotent.
func EnsureSeedUsers(ctx context.Context, users repository.UserRepository, seeds []SeedUser, logger *logrus.Logger) error {
	for _, seed := range seeds {
		_, err := users.GetByUsername(ctx, seed.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("lookup seed user %s: %w", seed.Username, err)
		}

		hash, err := hashPassword(seed.Password)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", seed.Username, err)
		}

		user := &domain.User{
			Username:     seed.Username,
			Email:        seed.Email,
			FirstName:    seed.FirstName,
			LastName:     seed.LastName,
			PasswordHash: hash,
			Role:         seed.Role,
			Active:       true,
		}
		if _, err := users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				continue
			}
			return fmt.Errorf("create seed user %s: %w", seed.Username, err)
		}
		if logger != nil {
			logger.Infof("seeded user %s (%s)", seed.Username, seed.Role)
		}
	}
	return nil
}
