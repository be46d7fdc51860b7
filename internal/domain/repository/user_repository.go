// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"signin/internal/domain/entity"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// FindByUsername retrieves the user with the given username.
	// It returns (nil, nil) when no such user exists; an unknown username is not an error.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Save inserts the user or, if the username already exists, replaces its password hash.
	Save(ctx context.Context, user *entity.User) error
}
