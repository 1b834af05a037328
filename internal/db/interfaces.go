package db

import (
	"context"

	"github.com/deepanshu-striker/inter-chat/internal/models"
)

// UserRepository defines the interface for user record storage operations.
// The quota engine owns no copy of the record; every mutation goes through
// these methods and the increment must be atomic at the store, never a local
// read-modify-write.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// Create inserts a new user document. Colliding with an existing
	// document is an error, never a silent overwrite.
	Create(ctx context.Context, user *models.User) error
	// IncrementResponsesUsed bumps the usage counter by one using the
	// store's native atomic increment.
	IncrementResponsesUsed(ctx context.Context, userID string) error
	// SetPlan replaces the plan, resets the allowance to total and zeroes
	// the usage counter in a single update.
	SetPlan(ctx context.Context, userID, planID string, responsesTotal int64) error
}
