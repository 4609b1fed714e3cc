package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared bool
}

func (m *memTokens) Save(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	m.refresh = refresh
	m.cleared = false
	return nil
}

func (m *memTokens) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	m.cleared = true
	return nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *memTokens) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := &memTokens{}
	return NewClient(srv.URL, 5*time.Second, tokens), tokens
}

func TestRefreshOn401RetriesOnce(t *testing.T) {
	var meCalls, refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls++
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
			return
		}
		_ = json.NewEncoder(w).Encode(User{ID: "u1", Name: "Ada"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "r0", body["refresh_token"])
		_ = json.NewEncoder(w).Encode(TokenPair{AccessToken: "fresh", RefreshToken: "r1"})
	})

	client, tokens := newTestClient(t, mux)
	client.SetTokens("stale", "r0")

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, 2, meCalls)
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, "fresh", tokens.access, "refreshed pair must be persisted")
	assert.Equal(t, "r1", tokens.refresh)
}

func TestRefreshFailurePurgesTokens(t *testing.T) {
	var meCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls++
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "bad token"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "refresh revoked"})
	})

	client, tokens := newTestClient(t, mux)
	client.SetTokens("stale", "r0")

	_, err := client.Me(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "bad token", authErr.Detail)

	assert.Equal(t, 1, meCalls, "failed refresh must not retry the original request")
	assert.True(t, tokens.cleared)
	assert.Empty(t, client.AccessToken())
	assert.Empty(t, client.RefreshToken())
}

func TestConcurrentRefreshExchangesOnce(t *testing.T) {
	var refreshCalls atomic.Int64
	staleSeen := make(chan struct{}, 2)
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer stale" {
			// Park both stale requests so they fail together, before either
			// side gets to refresh.
			staleSeen <- struct{}{}
			<-release
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(User{ID: "u1", Name: "Ada"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		n := refreshCalls.Add(1)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		// Rotation: r0 is consumed by the first exchange, a replay gets
		// rejected.
		if n > 1 || body["refresh_token"] != "r0" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "refresh token already used"})
			return
		}
		_ = json.NewEncoder(w).Encode(TokenPair{AccessToken: "fresh", RefreshToken: "r1"})
	})

	client, tokens := newTestClient(t, mux)
	client.SetTokens("stale", "r0")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Me(context.Background())
		}(i)
	}
	<-staleSeen
	<-staleSeen
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int64(1), refreshCalls.Load(), "one 401 burst, one exchange")
	assert.Equal(t, "fresh", tokens.access)
	assert.Equal(t, "r1", tokens.refresh)
	assert.Equal(t, "fresh", client.AccessToken(), "rotated pair must survive the burst")
}

func TestNoRefreshWithoutRefreshToken(t *testing.T) {
	var refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
	})

	client, _ := newTestClient(t, mux)
	client.SetTokens("stale", "")

	_, err := client.Me(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 0, refreshCalls)
}

func TestErrorTaxonomy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/applications", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "boom"})
	})

	client, _ := newTestClient(t, mux)
	client.SetTokens("tok", "r0")

	_, err := client.ListApplications(context.Background())
	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusInternalServerError, srvErr.Status)
	assert.Equal(t, "boom", srvErr.Detail)

	// Unreachable host: a transport failure, not a server response.
	dead := NewClient("http://127.0.0.1:1", time.Second, nil)
	_, err = dead.ListApplications(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestChatFirstTurnSendsNullSessionID(t *testing.T) {
	var raw map[string]json.RawMessage
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_ = json.NewEncoder(w).Encode(ChatResponse{SessionID: "s1", Response: "hello"})
	})

	client, _ := newTestClient(t, mux)
	client.SetTokens("tok", "r0")

	resp, err := client.Chat(context.Background(), ChatRequest{Message: "hi", Mode: ModeAssistant})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.SessionID)

	sid, present := raw["session_id"]
	require.True(t, present, "session_id must be present on the first turn")
	assert.Equal(t, "null", string(sid))
}

func TestCreateApplicationValidatesBeforeRequest(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { called = true })

	client, _ := newTestClient(t, mux)
	client.SetTokens("tok", "r0")

	_, err := client.CreateApplication(context.Background(), ApplicationInput{Company: "Acme"})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.False(t, called, "invalid payload must never reach the wire")

	_, err = client.ScrapeJob(context.Background(), "ftp://jobs.example.com")
	require.ErrorAs(t, err, &valErr)
	assert.False(t, called)
}

func TestMultipartRetryRebuildsBody(t *testing.T) {
	var uploads []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/resume/analyze", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		uploads = append(uploads, string(buf[:n]))

		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(ResumeAnalysis{ATSScore: 72, ScoreLabel: "Strong Match"})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(TokenPair{AccessToken: "fresh", RefreshToken: "r1"})
	})

	client, _ := newTestClient(t, mux)
	client.SetTokens("stale", "r0")

	result, err := client.AnalyzeResume(context.Background(), "cv.pdf", []byte("pdfbytes"), "Go engineer")
	require.NoError(t, err)
	assert.Equal(t, 72, result.ATSScore)
	require.Len(t, uploads, 2)
	assert.Equal(t, "pdfbytes", uploads[0])
	assert.Equal(t, "pdfbytes", uploads[1], "retry must carry the full body again")
}
