package dummydb

import (
	"context"
	"sort"
	"sync"

	"github.com/trezcool/darasa/core/note"
)

// noteRepository is an in-memory note.Repository for tests.
type noteRepository struct {
	mu    sync.RWMutex
	notes map[string]note.Note
}

var _ note.Repository = (*noteRepository)(nil)

func NewNoteRepository() note.Repository {
	return &noteRepository{notes: make(map[string]note.Note)}
}

func (repo *noteRepository) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	repo.mu.Lock()
	repo.notes[n.ID] = n
	repo.mu.Unlock()
	return n, nil
}

func (repo *noteRepository) GetNoteByID(ctx context.Context, id string) (note.Note, error) {
	repo.mu.RLock()
	n, ok := repo.notes[id]
	repo.mu.RUnlock()
	if !ok {
		return note.Note{}, note.ErrNotFound
	}
	return n, nil
}

func (repo *noteRepository) QueryAllNotes(ctx context.Context) ([]note.Note, error) {
	return repo.query(false), nil
}

func (repo *noteRepository) QueryTrashedNotes(ctx context.Context) ([]note.Note, error) {
	return repo.query(true), nil
}

func (repo *noteRepository) query(trashed bool) []note.Note {
	repo.mu.RLock()
	notes := make([]note.Note, 0, len(repo.notes))
	for _, n := range repo.notes {
		if n.IsTrashed() == trashed {
			notes = append(notes, n)
		}
	}
	repo.mu.RUnlock()
	sort.Slice(notes, func(i, j int) bool { return notes[i].UpdatedAt.After(notes[j].UpdatedAt) })
	return notes
}

func (repo *noteRepository) UpdateNote(ctx context.Context, n note.Note) (note.Note, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.notes[n.ID]; !ok {
		return note.Note{}, note.ErrNotFound
	}
	repo.notes[n.ID] = n
	return n, nil
}

func (repo *noteRepository) DeleteNotesByID(ctx context.Context, ids ...string) error {
	repo.mu.Lock()
	for _, id := range ids {
		delete(repo.notes, id)
	}
	repo.mu.Unlock()
	return nil
}
