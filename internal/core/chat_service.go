package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// chatService implements the ChatService interface: one chat turn is one
// quota check, one agent call, one consumption commit.
type chatService struct {
	quota  QuotaService
	agent  Agent
	logger *zap.Logger
}

// NewChatService creates a new ChatService instance.
func NewChatService(quota QuotaService, agent Agent, logger *zap.Logger) ChatService {
	return &chatService{quota: quota, agent: agent, logger: logger}
}

// Chat runs a metered chat turn. The usage counter is only charged after the
// agent reply arrived, so a failed agent call costs the user nothing. A
// failed commit is logged and swallowed: the reply has already been
// produced, accounting is best-effort rather than transactional with
// delivery.
func (s *chatService) Chat(ctx context.Context, userID, message string) (string, int64, error) {
	account, err := s.quota.Check(ctx, userID)
	if err != nil {
		return "", 0, err
	}

	reply, err := s.agent.Chat(ctx, message)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrAgentUnavailable, err)
	}

	remaining, err := s.quota.Commit(ctx, account)
	if err != nil {
		s.logger.Warn("failed to record response consumption after delivered reply",
			zap.String("userID", userID),
			zap.Error(err))
	}
	return reply, remaining, nil
}
