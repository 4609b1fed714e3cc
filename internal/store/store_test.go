package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *CredentialsRepo {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewCredentialsRepo(db)
}

func TestCredentialsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestDB(t)

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("empty store should yield nil, got %+v", got)
	}

	if err := repo.Save(ctx, "a1", "r1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.AccessToken != "a1" || got.RefreshToken != "r1" {
		t.Fatalf("get=%+v, want a1/r1", got)
	}

	// Save is an upsert; a second pair replaces the first.
	if err := repo.Save(ctx, "a2", "r2"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.AccessToken != "a2" {
		t.Fatalf("get=%+v, want a2/r2", got)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("cleared store should yield nil, got %+v", got)
	}
}

func TestCredentialsEmptyPairReadsAsNil(t *testing.T) {
	ctx := context.Background()
	repo := newTestDB(t)

	if err := repo.Save(ctx, "", ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("blank tokens should read as no credentials, got %+v", got)
	}
}

func TestHistoryCapPrunesOldest(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := NewHistoryRepo(db)

	for i := 0; i < HistoryCap+5; i++ {
		if err := repo.Add(ctx, fmt.Sprintf("company-%d", i), "engineer", ""); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	jobs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != HistoryCap {
		t.Fatalf("len=%d, want %d", len(jobs), HistoryCap)
	}
	if jobs[0].Company != fmt.Sprintf("company-%d", HistoryCap+4) {
		t.Fatalf("newest first, got %q", jobs[0].Company)
	}
	if jobs[len(jobs)-1].Company != "company-5" {
		t.Fatalf("oldest surviving should be company-5, got %q", jobs[len(jobs)-1].Company)
	}
}
