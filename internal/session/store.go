// Package session is the single source of truth for authentication state.
// One Store is created at startup and handed to every page and command.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/gamify"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/store"
)

type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

type Store struct {
	client *api.Client
	creds  *store.CredentialsRepo

	mu    sync.Mutex
	state State
	user  *api.User
}

func NewStore(client *api.Client, creds *store.CredentialsRepo) *Store {
	return &Store{client: client, creds: creds, state: StateUninitialized}
}

// CredentialsSaver adapts the sqlite credentials repo to the api.TokenStore
// the client persists refreshed tokens through.
type CredentialsSaver struct {
	Repo *store.CredentialsRepo
}

func (s CredentialsSaver) Save(access, refresh string) error {
	return s.Repo.Save(context.Background(), access, refresh)
}

func (s CredentialsSaver) Clear() error {
	return s.Repo.Clear(context.Background())
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) setState(state State, user *api.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.mu.Unlock()
}

// Initialize loads the persisted token pair and resolves the session to
// Authenticated or Anonymous. With a stored token it fetches the current
// user; an expired or rejected token gets exactly one refresh attempt before
// the session gives up and purges storage.
func (s *Store) Initialize(ctx context.Context) error {
	s.setState(StateLoading, nil)

	creds, err := s.creds.Get(ctx)
	if err != nil {
		s.setState(StateAnonymous, nil)
		return err
	}
	if creds == nil {
		s.setState(StateAnonymous, nil)
		return nil
	}

	s.client.SetTokens(creds.AccessToken, creds.RefreshToken)

	// A locally expired access token would bounce off /auth/me anyway; go
	// straight to the refresh exchange. The signature is never checked
	// client-side, only the exp claim.
	if tokenExpired(creds.AccessToken) {
		if err := s.client.Refresh(); err != nil {
			s.setState(StateAnonymous, nil)
			return nil
		}
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		var authErr *api.AuthError
		if errors.As(err, &authErr) {
			// Me's one-shot refresh already failed; tokens are purged.
			s.setState(StateAnonymous, nil)
			return nil
		}
		// Transient failure: stay Anonymous but keep stored tokens so the
		// next start can retry.
		s.setState(StateAnonymous, nil)
		return err
	}

	s.setState(StateAuthenticated, user)
	return nil
}

// Login exchanges credentials, persists the token pair, and flips to
// Authenticated. An AuthError propagates for the caller to display.
func (s *Store) Login(ctx context.Context, email, password string) (*api.User, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, resp)
}

func (s *Store) Register(ctx context.Context, name, email, password string) (*api.User, error) {
	resp, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, resp)
}

func (s *Store) adopt(ctx context.Context, resp *api.AuthResponse) (*api.User, error) {
	s.client.SetTokens(resp.AccessToken, resp.RefreshToken)
	if err := s.creds.Save(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		return nil, err
	}
	user := resp.User
	s.setState(StateAuthenticated, &user)
	return &user, nil
}

// Logout purges both tokens from storage and memory and drops the user.
// Synchronous; no network call.
func (s *Store) Logout() {
	s.client.ClearTokens()
	s.setState(StateAnonymous, nil)
}

// RefreshUser re-fetches the current user without touching tokens. Used
// after mutations that change XP or badges; returns any badge codes earned
// since the last snapshot so pages can announce them.
func (s *Store) RefreshUser(ctx context.Context) ([]string, error) {
	user, err := s.client.Me(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	var previous []string
	if s.user != nil {
		previous = s.user.Badges
	}
	earned := gamify.NewBadges(previous, user.Badges)
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()

	return earned, nil
}

func tokenExpired(token string) bool {
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
