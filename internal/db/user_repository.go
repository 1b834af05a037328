package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/deepanshu-striker/inter-chat/internal/models"
)

const usersCollection = "users"

var (
	// ErrNotFound is returned when a document does not exist in Firestore.
	ErrNotFound = errors.New("document not found")
	// ErrUnavailable is returned when the store cannot be reached or the
	// call deadline expired. Callers must not assume retries happen here.
	ErrUnavailable = errors.New("store unavailable")
)

// mapStatusError translates Firestore transport errors into the repository's
// sentinel errors so the service layer never imports grpc codes.
func mapStatusError(op, userID string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%s: user %q: %w", op, userID, ErrNotFound)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%s: user %q: %w: %v", op, userID, ErrUnavailable, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: user %q: %w: %v", op, userID, ErrUnavailable, err)
	}
	return fmt.Errorf("%s: user %q: %w", op, userID, err)
}

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new Firestore-backed UserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		panic("Firestore client is not initialized for UserRepository")
	}
	return &firestoreUserRepository{client: client}
}

// GetByID retrieves a user document by its ID (the Firebase Auth UID).
func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		return nil, mapStatusError("GetByID", userID, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID %q: %w", userID, err)
	}
	user.ID = docSnap.Ref.ID

	return &user, nil
}

// Create adds a new user document. The user.ID is used as the document ID.
// CreatedAt/UpdatedAt carry the serverTimestamp tag and are assigned by
// Firestore on the write.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with ID %q already exists: %w", user.ID, err)
		}
		return mapStatusError("Create", user.ID, err)
	}
	return nil
}

// IncrementResponsesUsed bumps the usage counter via firestore.Increment.
// The increment commits server-side, so concurrent callers across process
// instances never lose updates.
func (r *firestoreUserRepository) IncrementResponsesUsed(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("userID cannot be empty for IncrementResponsesUsed operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "responsesUsed", Value: firestore.Increment(1)},
		{Path: "lastActivityAt", Value: firestore.ServerTimestamp},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return mapStatusError("IncrementResponsesUsed", userID, err)
	}
	return nil
}

// SetPlan replaces the plan fields in a single update: new plan ID, new
// total, usage reset to zero. No pro-rated carry-over.
func (r *firestoreUserRepository) SetPlan(ctx context.Context, userID, planID string, responsesTotal int64) error {
	if userID == "" {
		return errors.New("userID cannot be empty for SetPlan operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "plan", Value: planID},
		{Path: "responsesTotal", Value: responsesTotal},
		{Path: "responsesUsed", Value: int64(0)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return mapStatusError("SetPlan", userID, err)
	}
	return nil
}
