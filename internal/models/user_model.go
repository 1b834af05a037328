package models

import "time"

// User represents a single account in the system. The Firestore document ID
// is the Firebase Auth UID, so the ID field itself is not persisted inside
// the document.
type User struct {
	ID             string    `json:"userId" firestore:"-"`
	Email          string    `json:"email,omitempty" firestore:"email,omitempty"`
	Plan           string    `json:"currentPlan" firestore:"plan"`
	ResponsesTotal int64     `json:"responsesTotal" firestore:"responsesTotal"`
	ResponsesUsed  int64     `json:"responsesUsed" firestore:"responsesUsed"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
	LastActivityAt time.Time `json:"lastActivityAt,omitempty" firestore:"lastActivityAt,omitempty"`
}

// ResponsesRemaining derives the unused allowance. The used counter can
// transiently read above the total (a plan downgrade racing an in-flight
// increment), so the result is clamped at zero.
func (u *User) ResponsesRemaining() int64 {
	remaining := u.ResponsesTotal - u.ResponsesUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
