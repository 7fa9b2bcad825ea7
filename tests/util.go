package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/note"
	"github.com/trezcool/darasa/storage/database"
)

// PrepareDB opens a fresh in-memory sqlite DB with the app schema.
func PrepareDB(t *testing.T) *sqlx.DB {
	conf := &core.Config{Database: core.DatabaseConfig{Path: ":memory:"}}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("prepareDB() failed: %v", err)
	}
	// an in-memory DB exists per connection; keep a single one
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func CreateNote(
	t *testing.T,
	repo note.Repository,
	title, content string,
	folderPath, tags []string,
	updatedAt ...time.Time,
) note.Note {
	ctx := context.Background()
	svc := note.NewService(repo)
	n, err := svc.Create(ctx, note.NewNote{
		Title:      title,
		Content:    content,
		FolderPath: folderPath,
		Tags:       tags,
	})
	if err != nil {
		t.Fatalf("createNote() failed: %v", err)
	}
	if len(updatedAt) > 0 {
		n.UpdatedAt = updatedAt[0].UTC()
		if n, err = repo.UpdateNote(ctx, n); err != nil {
			t.Fatalf("createNote() failed: %v", err)
		}
	}
	return n
}
