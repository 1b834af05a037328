package core

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/deepanshu-striker/inter-chat/internal/models"
)

type fakeAgent struct {
	reply string
	err   error
	calls int
}

func (f *fakeAgent) Chat(ctx context.Context, userText string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newChatFixture(t *testing.T, agent Agent) (*mockUserRepository, ChatService) {
	t.Helper()
	repo := newMockUserRepository()
	repo.users["u1"] = &models.User{ID: "u1", Plan: models.PlanFree, ResponsesTotal: 50, ResponsesUsed: 10}
	quota := NewQuotaService(repo)
	return repo, NewChatService(quota, agent, zap.NewNop())
}

func TestChat_SuccessConsumesOneUnit(t *testing.T) {
	agent := &fakeAgent{reply: "hi there"}
	repo, svc := newChatFixture(t, agent)

	reply, remaining, err := svc.Chat(context.Background(), "u1", "hello")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("expected agent reply, got %q", reply)
	}
	if remaining != 39 {
		t.Errorf("expected 39 remaining, got %d", remaining)
	}
	if got := repo.users["u1"].ResponsesUsed; got != 11 {
		t.Errorf("expected responsesUsed 11, got %d", got)
	}
}

func TestChat_QuotaExceededSkipsAgent(t *testing.T) {
	agent := &fakeAgent{reply: "should not be produced"}
	repo, svc := newChatFixture(t, agent)
	repo.users["u1"].ResponsesUsed = 50

	_, _, err := svc.Chat(context.Background(), "u1", "hello")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if agent.calls != 0 {
		t.Errorf("agent must not be called past the quota, got %d calls", agent.calls)
	}
}

func TestChat_AgentFailureDoesNotConsumeQuota(t *testing.T) {
	agent := &fakeAgent{err: errors.New("connection refused")}
	repo, svc := newChatFixture(t, agent)

	_, _, err := svc.Chat(context.Background(), "u1", "hello")
	if !errors.Is(err, ErrAgentUnavailable) {
		t.Fatalf("expected ErrAgentUnavailable, got %v", err)
	}
	if got := repo.users["u1"].ResponsesUsed; got != 10 {
		t.Errorf("failed agent call must not charge quota: responsesUsed %d", got)
	}
}

func TestChat_CommitFailureStillDeliversReply(t *testing.T) {
	agent := &fakeAgent{reply: "delivered"}
	repo, svc := newChatFixture(t, agent)
	repo.failIncrement = true

	reply, remaining, err := svc.Chat(context.Background(), "u1", "hello")
	if err != nil {
		t.Fatalf("commit failure must not surface to the caller, got %v", err)
	}
	if reply != "delivered" {
		t.Errorf("expected reply to be delivered, got %q", reply)
	}
	if remaining != 39 {
		t.Errorf("expected best-effort remaining 39, got %d", remaining)
	}
}

func TestChat_UnknownUser(t *testing.T) {
	agent := &fakeAgent{reply: "x"}
	_, svc := newChatFixture(t, agent)

	_, _, err := svc.Chat(context.Background(), "ghost", "hello")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if agent.calls != 0 {
		t.Errorf("agent must not be called for unknown users, got %d calls", agent.calls)
	}
}
