package models

// RegisterRequest is the body of POST /register_or_login.
type RegisterRequest struct {
	ExternalUserID string `json:"externalUserId" binding:"required"`
	Email          string `json:"email"`
}

// SelectPlanRequest is the body of POST /user/:userId/select_plan.
type SelectPlanRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SynthesizeRequest is the body of POST /synthesize. VoiceID is optional;
// the synthesizer falls back to its default voice when it is empty.
type SynthesizeRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId"`
}

// UserStatusResponse is returned by every endpoint that reports account
// state. ResponsesRemaining is derived, never stored.
type UserStatusResponse struct {
	UserID             string `json:"userId"`
	Email              string `json:"email,omitempty"`
	CurrentPlan        string `json:"currentPlan"`
	ResponsesTotal     int64  `json:"responsesTotal"`
	ResponsesUsed      int64  `json:"responsesUsed"`
	ResponsesRemaining int64  `json:"responsesRemaining"`
}

// NewUserStatusResponse builds the status view of a user document.
func NewUserStatusResponse(u *User) UserStatusResponse {
	return UserStatusResponse{
		UserID:             u.ID,
		Email:              u.Email,
		CurrentPlan:        u.Plan,
		ResponsesTotal:     u.ResponsesTotal,
		ResponsesUsed:      u.ResponsesUsed,
		ResponsesRemaining: u.ResponsesRemaining(),
	}
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	UserID             string `json:"userId"`
	Response           string `json:"response"`
	ResponsesRemaining int64  `json:"responsesRemaining"`
}

// TranscribeResponse is the body returned by POST /transcribe.
type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}
