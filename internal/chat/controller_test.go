package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
)

type chatBackend struct {
	calls    atomic.Int64
	fail     atomic.Bool
	lastBody map[string]json.RawMessage
}

func newChatController(t *testing.T) (*Controller, *chatBackend) {
	t.Helper()
	backend := &chatBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		backend.calls.Add(1)
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		backend.lastBody = body
		if backend.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "ai unavailable"})
			return
		}
		_ = json.NewEncoder(w).Encode(api.ChatResponse{SessionID: "sess-1", Response: "reply"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, 5*time.Second, nil)
	client.SetTokens("tok", "r0")
	return NewController(client), backend
}

func TestSessionIDCarriesAcrossTurns(t *testing.T) {
	ctl, backend := newChatController(t)
	ctx := context.Background()

	_, err := ctl.Send(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "null", string(backend.lastBody["session_id"]))

	_, err = ctl.Send(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, `"sess-1"`, string(backend.lastBody["session_id"]))

	msgs := ctl.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, []Message{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "reply"},
		{Role: RoleUser, Content: "second"},
		{Role: RoleAssistant, Content: "reply"},
	}, msgs)
}

func TestFailureKeepsUserTurnAndAppendsFallback(t *testing.T) {
	ctl, backend := newChatController(t)
	backend.fail.Store(true)

	staged, err := ctl.Send(context.Background(), "hello?")
	assert.True(t, staged)
	require.Error(t, err)

	msgs := ctl.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Role: RoleUser, Content: "hello?"}, msgs[0])
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Sorry, I encountered an error. Please try again.", msgs[1].Content)
	assert.Nil(t, ctl.SessionID(), "failed first turn must not adopt a session")
}

func TestInterviewWithoutJobNeverReachesNetwork(t *testing.T) {
	ctl, backend := newChatController(t)
	ctl.SwitchMode(api.ModeInterview)

	staged, err := ctl.Stage("ask me something")
	assert.False(t, staged)
	assert.ErrorIs(t, err, ErrNoJobSelected)
	assert.Empty(t, ctl.Messages())
	assert.Equal(t, int64(0), backend.calls.Load())

	ctl.SelectJob("job-7")
	_, err = ctl.Send(context.Background(), "ask me something")
	require.NoError(t, err)
	assert.Equal(t, `"job-7"`, string(backend.lastBody["job_id"]))
}

func TestSwitchModeResetsEverything(t *testing.T) {
	ctl, _ := newChatController(t)
	ctx := context.Background()

	_, err := ctl.Send(ctx, "hi")
	require.NoError(t, err)
	require.NotEmpty(t, ctl.Messages())
	require.NotNil(t, ctl.SessionID())

	ctl.SwitchMode(api.ModeInterview)
	assert.Equal(t, api.ModeInterview, ctl.Mode())
	assert.Empty(t, ctl.Messages())
	assert.Nil(t, ctl.SessionID())
	assert.Empty(t, ctl.JobID())
}

func TestEmptyInputIsIgnored(t *testing.T) {
	ctl, backend := newChatController(t)

	staged, err := ctl.Send(context.Background(), "   \n")
	assert.False(t, staged)
	assert.NoError(t, err)
	assert.Empty(t, ctl.Messages())
	assert.Equal(t, int64(0), backend.calls.Load())
}
