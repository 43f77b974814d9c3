package chat_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/esnupy/lafa/internal/chat"
	chaterrors "github.com/esnupy/lafa/internal/chat/errors"
	"github.com/esnupy/lafa/internal/opsview"
	"github.com/esnupy/lafa/internal/payrule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	completeFn func(ctx context.Context, system, userMessage string) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, system, userMessage string) (string, error) {
	if f.completeFn != nil {
		return f.completeFn(ctx, system, userMessage)
	}
	return "ok", nil
}

type fakeSnapshots struct {
	snap opsview.Snapshot
	err  error
}

func (f *fakeSnapshots) Snapshot(ctx context.Context) (opsview.Snapshot, error) {
	return f.snap, f.err
}

func TestChatService_Ask_FeedsRulesAndSnapshotToTheModel(t *testing.T) {
	snap := opsview.Snapshot{
		WeekStart: "2025-06-09",
		Drivers: []opsview.DriverSummary{
			{Name: "Alicia", Revenue: "6500.00", Hours: "40.0"},
		},
	}

	var system, user string
	completer := &fakeCompleter{completeFn: func(ctx context.Context, sys, msg string) (string, error) {
		system, user = sys, msg
		return "Alicia ya cumplio la meta", nil
	}}
	svc := chat.NewService(completer, &fakeSnapshots{snap: snap}, payrule.DefaultRules())

	resp, err := svc.Ask(context.Background(), chat.ChatRequest{Message: "como va Alicia?"})

	require.NoError(t, err)
	assert.Equal(t, "Alicia ya cumplio la meta", resp.Reply)
	assert.Equal(t, "como va Alicia?", user)
	assert.Contains(t, system, "40 horas")
	assert.Contains(t, system, "$6000")
	assert.Contains(t, system, `"2025-06-09"`)
	assert.Contains(t, system, "Alicia")
}

func TestChatService_Ask_CompleterFailure(t *testing.T) {
	completer := &fakeCompleter{completeFn: func(ctx context.Context, sys, msg string) (string, error) {
		return "", errors.New("model melted")
	}}
	svc := chat.NewService(completer, &fakeSnapshots{}, payrule.DefaultRules())

	_, err := svc.Ask(context.Background(), chat.ChatRequest{Message: "hola"})

	assert.ErrorIs(t, err, chaterrors.ErrAssistantUnavailable)
}

func TestChatService_Ask_NotConfigured(t *testing.T) {
	svc := chat.NewService(nil, &fakeSnapshots{}, payrule.DefaultRules())

	_, err := svc.Ask(context.Background(), chat.ChatRequest{Message: "hola"})

	assert.ErrorIs(t, err, chaterrors.ErrNotConfigured)
}

func TestAnthropicClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"hola jefe"}]}`))
	}))
	defer server.Close()

	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_BASE_URL", server.URL)

	client := chat.NewAnthropicClient()
	require.NotNil(t, client)

	reply, err := client.Complete(context.Background(), "system", "hola")

	require.NoError(t, err)
	assert.Equal(t, "hola jefe", reply)
}

func TestAnthropicClient_CompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer server.Close()

	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_BASE_URL", server.URL)

	client := chat.NewAnthropicClient()
	require.NotNil(t, client)

	_, err := client.Complete(context.Background(), "system", "hola")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "slow down")
}

func TestNewAnthropicClient_NilWithoutKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	assert.Nil(t, chat.NewAnthropicClient())
}
