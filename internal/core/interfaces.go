package core

import (
	"context"

	"github.com/deepanshu-striker/inter-chat/internal/models"
)

// QuotaService gates every quota-metered action and owns plan transitions.
type QuotaService interface {
	// EnsureUser fetches the account, creating it on the free plan if it
	// does not exist. Returns the account and whether it was created.
	// Idempotent.
	EnsureUser(ctx context.Context, userID, email string) (*models.User, bool, error)
	// Status returns the account or ErrUserNotFound.
	Status(ctx context.Context, userID string) (*models.User, error)
	// Check reads the account and returns ErrQuotaExceeded when the
	// allowance is spent. It never mutates state; consumption is committed
	// only after the metered action succeeded.
	Check(ctx context.Context, userID string) (*models.User, error)
	// Commit atomically increments the usage counter and returns the
	// remaining allowance derived from the pre-increment snapshot. A store
	// failure is returned alongside the derived remaining so callers can
	// log it without invalidating an already-delivered response.
	Commit(ctx context.Context, snapshot *models.User) (int64, error)
	// SelectPlan validates the plan ID against the catalog and hard-resets
	// the account onto it: usage back to zero, total from the plan.
	SelectPlan(ctx context.Context, userID, planID string) (*models.User, error)
}

// Agent produces a conversational reply for a user message.
type Agent interface {
	Chat(ctx context.Context, userText string) (string, error)
}

// ChatService orchestrates a metered chat turn: quota check, agent call,
// consumption commit.
type ChatService interface {
	Chat(ctx context.Context, userID, message string) (reply string, remaining int64, err error)
}

// TranscriptionService produces a transcript from audio bytes, tolerating a
// single backend's failure.
type TranscriptionService interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}
