package sqliterepos

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/note"
	"github.com/trezcool/darasa/tests"
)

func TestNoteRepository_roundTrip(t *testing.T) {
	repo := NewNoteRepository(testutil.PrepareDB(t))
	ctx := context.Background()

	created := testutil.CreateNote(t, repo, "Physics revision", "<p>forces and motion</p>", []string{"School", "Physics"}, []string{"physics", "term2"})

	got, err := repo.GetNoteByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetNoteByID() failed: %v", err)
	}
	if got.Title != created.Title {
		t.Errorf("Title = %q, want %q", got.Title, created.Title)
	}
	if got.Folder() != "School/Physics" {
		t.Errorf("Folder() = %q, want School/Physics", got.Folder())
	}
	if len(got.Tags) != 2 || got.Tags[0] != "physics" {
		t.Errorf("Tags = %v, want [physics term2]", got.Tags)
	}
	if got.Metadata != created.Metadata {
		t.Errorf("Metadata = %+v, want %+v", got.Metadata, created.Metadata)
	}
	if got.IsTrashed() {
		t.Error("fresh note is trashed")
	}

	if _, err = repo.GetNoteByID(ctx, "nope"); err != note.ErrNotFound {
		t.Errorf("GetNoteByID() error = %v, want ErrNotFound", err)
	}
}

func TestNoteRepository_queries(t *testing.T) {
	repo := NewNoteRepository(testutil.PrepareDB(t))
	ctx := context.Background()
	svc := note.NewService(repo)

	now := time.Now().UTC()
	older := testutil.CreateNote(t, repo, "Older", "", nil, nil, now.Add(-time.Hour))
	newer := testutil.CreateNote(t, repo, "Newer", "", nil, nil, now)
	binned := testutil.CreateNote(t, repo, "Binned", "", nil, nil, now.Add(-2*time.Hour))
	if _, err := svc.Trash(ctx, binned.ID); err != nil {
		t.Fatalf("Trash() failed: %v", err)
	}

	live, err := repo.QueryAllNotes(ctx)
	if err != nil {
		t.Fatalf("QueryAllNotes() failed: %v", err)
	}
	if len(live) != 2 || live[0].ID != newer.ID || live[1].ID != older.ID {
		t.Errorf("QueryAllNotes() = %v, want [Newer Older]", live)
	}

	trashed, err := repo.QueryTrashedNotes(ctx)
	if err != nil {
		t.Fatalf("QueryTrashedNotes() failed: %v", err)
	}
	if len(trashed) != 1 || trashed[0].ID != binned.ID {
		t.Errorf("QueryTrashedNotes() = %v, want [Binned]", trashed)
	}
}

func TestNoteRepository_corruptRow(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	n := testutil.CreateNote(t, repo, "Mangled", "", nil, nil)
	if _, err := db.ExecContext(ctx, `UPDATE note SET tags = '{not json' WHERE id = ?`, n.ID); err != nil {
		t.Fatalf("mangling row failed: %v", err)
	}

	if _, err := repo.GetNoteByID(ctx, n.ID); !core.IsShutdown(err) {
		t.Errorf("GetNoteByID() error = %v, want a shutdown error", err)
	}
	if _, err := repo.QueryAllNotes(ctx); !core.IsShutdown(err) {
		t.Errorf("QueryAllNotes() error = %v, want a shutdown error", err)
	}
}

func TestNoteRepository_updateAndDelete(t *testing.T) {
	repo := NewNoteRepository(testutil.PrepareDB(t))
	ctx := context.Background()

	n := testutil.CreateNote(t, repo, "Draft", "one two", nil, nil)
	other := testutil.CreateNote(t, repo, "Other", "", nil, nil)

	n.Title = "Final"
	n.Content = "one two three"
	if _, err := repo.UpdateNote(ctx, n); err != nil {
		t.Fatalf("UpdateNote() failed: %v", err)
	}
	got, err := repo.GetNoteByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetNoteByID() failed: %v", err)
	}
	if got.Title != "Final" || got.Content != "one two three" {
		t.Errorf("updated note = %+v", got)
	}

	ghost := n
	ghost.ID = "nope"
	if _, err = repo.UpdateNote(ctx, ghost); err != note.ErrNotFound {
		t.Errorf("UpdateNote() error = %v, want ErrNotFound", err)
	}

	if err = repo.DeleteNotesByID(ctx); err != nil {
		t.Fatalf("DeleteNotesByID() with no ids failed: %v", err)
	}
	if err = repo.DeleteNotesByID(ctx, n.ID, other.ID); err != nil {
		t.Fatalf("DeleteNotesByID() failed: %v", err)
	}
	if _, err = repo.GetNoteByID(ctx, n.ID); err != note.ErrNotFound {
		t.Errorf("GetNoteByID() error = %v after delete, want ErrNotFound", err)
	}
}
