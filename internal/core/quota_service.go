package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deepanshu-striker/inter-chat/internal/db"
	"github.com/deepanshu-striker/inter-chat/internal/models"
)

// quotaService implements the QuotaService interface on top of the user
// record store. It holds no authoritative copy of any account; reads are
// transient snapshots and every mutation goes through the repository's
// atomic operations.
type quotaService struct {
	userRepo db.UserRepository
}

// NewQuotaService creates a new QuotaService instance.
func NewQuotaService(userRepo db.UserRepository) QuotaService {
	return &quotaService{userRepo: userRepo}
}

// mapRepoError lifts repository sentinels into the service taxonomy.
func mapRepoError(err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrUserNotFound, err)
	case errors.Is(err, db.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return err
	}
}

// EnsureUser retrieves a user by ID, creating a fresh free-plan account when
// none exists.
func (s *quotaService) EnsureUser(ctx context.Context, userID, email string) (*models.User, bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, mapRepoError(err)
	}

	free := models.FreePlan()
	newUser := &models.User{
		ID:             userID,
		Email:          email,
		Plan:           free.ID,
		ResponsesTotal: free.Responses,
		ResponsesUsed:  0,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
		return nil, false, mapRepoError(fmt.Errorf("failed to create user %q after not found: %w", userID, createErr))
	}
	return newUser, true, nil
}

// Status returns the current account snapshot.
func (s *quotaService) Status(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return user, nil
}

// Check gates a metered action. A request arriving with exactly one response
// left is allowed; only used >= total blocks.
func (s *quotaService) Check(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if user.ResponsesUsed >= user.ResponsesTotal {
		return nil, fmt.Errorf("%w: user %q used %d of %d responses", ErrQuotaExceeded, userID, user.ResponsesUsed, user.ResponsesTotal)
	}
	return user, nil
}

// Commit charges one unit after a successful metered action. The increment
// is the store's atomic primitive, so concurrent commits for the same user
// never lose updates. The remaining count is derived from the snapshot the
// caller read at check time plus this one unit; a store failure still yields
// that derived count so the caller can deliver the response and log the
// accounting miss.
func (s *quotaService) Commit(ctx context.Context, snapshot *models.User) (int64, error) {
	remaining := snapshot.ResponsesTotal - (snapshot.ResponsesUsed + 1)
	if remaining < 0 {
		remaining = 0
	}
	if err := s.userRepo.IncrementResponsesUsed(ctx, snapshot.ID); err != nil {
		return remaining, mapRepoError(err)
	}
	return remaining, nil
}

// SelectPlan moves the account onto a new tier. This is a hard reset, not a
// pro-rated carry-over: usage goes back to zero and the total becomes the
// plan allowance.
func (s *quotaService) SelectPlan(ctx context.Context, userID, planID string) (*models.User, error) {
	plan, ok := models.PlanByID(planID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, planID)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := s.userRepo.SetPlan(ctx, userID, plan.ID, plan.Responses); err != nil {
		return nil, mapRepoError(err)
	}

	user.Plan = plan.ID
	user.ResponsesTotal = plan.Responses
	user.ResponsesUsed = 0
	return user, nil
}
