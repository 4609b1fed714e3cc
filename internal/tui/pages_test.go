package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/optimistic"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/session"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/store"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	ctx := context.Background()

	db, err := store.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	creds := store.NewCredentialsRepo(db)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.User{ID: "u1", Name: "Ada"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, 5*time.Second, session.CredentialsSaver{Repo: creds})
	client.SetTokens("tok", "r0")
	return Deps{
		Client:  client,
		Session: session.NewStore(client, creds),
		History: store.NewHistoryRepo(db),
	}
}

// drain executes a command tree synchronously, unwrapping batches.
func drain(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(t, c)
		}
	}
}

func TestImportedApplicationRecordedInHistory(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()
	m := newApplicationsModel(ctx, deps)

	m.prefillForm(&api.ScrapedJob{Company: "Acme", Role: "Go Engineer", URL: "https://jobs.acme.dev/1"})
	saved := api.Application{ID: "app-1", Company: "Acme", Role: "Go Engineer", URL: "https://jobs.acme.dev/1", Status: api.StatusApplied}
	_, cmd := m.Update(appCreatedMsg{tempID: optimistic.NewTempID(), app: &saved})
	drain(t, cmd)

	jobs, err := deps.History.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "https://jobs.acme.dev/1", jobs[0].URL)
}

func TestManualAddSkipsCaptureHistory(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()
	m := newApplicationsModel(ctx, deps)

	m.openForm(nil)
	saved := api.Application{ID: "app-2", Company: "Initech", Role: "Developer", Status: api.StatusApplied}
	_, cmd := m.Update(appCreatedMsg{tempID: optimistic.NewTempID(), app: &saved})
	drain(t, cmd)

	jobs, err := deps.History.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs, "only imported postings belong in capture history")
}

func TestDashboardKeepsAppsWhenAnalyticsFails(t *testing.T) {
	deps := newTestDeps(t)
	m := newDashboardModel(context.Background(), deps)

	_, _ = m.Update(dashAppsMsg{apps: []api.Application{{ID: "1", Company: "Acme", Role: "Dev", Status: api.StatusApplied}}})
	assert.True(t, m.loading, "still waiting on analytics")

	_, _ = m.Update(dashAnalyticsMsg{err: errors.New("boom")})
	assert.False(t, m.loading)

	view := m.View()
	assert.Contains(t, view, "Acme", "loaded applications must survive the failed half")
	assert.Contains(t, view, "Failed to load analytics")
}

func TestResumeKeywordsRenderSorted(t *testing.T) {
	m := newResumeModel(context.Background(), Deps{})
	m.result = &api.ResumeAnalysis{
		ATSScore:         70,
		ScoreLabel:       "Strong Match",
		MatchingKeywords: []string{"go", "api", "docker"},
		MissingKeywords:  []string{"terraform", "aws", "go"},
	}

	view := m.resultView()
	for _, pair := range [][2]string{{"api", "docker"}, {"docker", "go"}, {"aws", "terraform"}} {
		first := strings.Index(view, pair[0])
		second := strings.Index(view, pair[1])
		require.GreaterOrEqual(t, first, 0)
		require.GreaterOrEqual(t, second, 0)
		assert.Less(t, first, second, "%s should render before %s", pair[0], pair[1])
	}

	// Listed on both sides counts as matched, not missing.
	missingSection := view[strings.Index(view, "Missing keywords"):]
	assert.NotContains(t, missingSection, "go,")
}
