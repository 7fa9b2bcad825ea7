package note

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

var (
	// errors
	ErrNotFound   = errors.New("note not found")
	ErrNotTrashed = errors.New("note is not in the trash")
)

type (
	Repository interface {
		CreateNote(ctx context.Context, n Note) (Note, error)
		GetNoteByID(ctx context.Context, id string) (Note, error)
		// QueryAllNotes returns live (non-trashed) notes, most recently updated first.
		QueryAllNotes(ctx context.Context) ([]Note, error)
		QueryTrashedNotes(ctx context.Context) ([]Note, error)
		UpdateNote(ctx context.Context, n Note) (Note, error)
		DeleteNotesByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nn NewNote) (Note, error) {
	if err := nn.Validate(); err != nil {
		return Note{}, err
	}
	now := time.Now().UTC()
	n := Note{
		ID:              uuid.New().String(),
		Title:           nn.Title,
		Content:         nn.Content,
		FolderPath:      nn.FolderPath,
		Tags:            nn.Tags,
		SeqtaReferences: nn.SeqtaReferences,
		Metadata:        computeMetadata(nn.Content, 1),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return svc.repo.CreateNote(ctx, n)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Note, error) {
	return svc.repo.GetNoteByID(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Note, error) {
	return svc.repo.QueryAllNotes(ctx)
}

func (svc *Service) QueryTrashed(ctx context.Context) ([]Note, error) {
	return svc.repo.QueryTrashedNotes(ctx)
}

// Update applies un to the note, bumps the version and recomputes metadata.
func (svc *Service) Update(ctx context.Context, id string, un UpdateNote) (Note, error) {
	orig, err := svc.repo.GetNoteByID(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if err := un.Validate(orig); err != nil {
		return Note{}, err
	}
	n := orig
	n.Title = un.Title
	n.Content = un.Content
	n.FolderPath = un.FolderPath
	n.Tags = un.Tags
	n.SeqtaReferences = un.SeqtaReferences
	n.Metadata = computeMetadata(un.Content, orig.Metadata.Version+1)
	n.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateNote(ctx, n)
}

func (svc *Service) Trash(ctx context.Context, id string) (Note, error) {
	n, err := svc.repo.GetNoteByID(ctx, id)
	if err != nil {
		return Note{}, err
	}
	n.TrashedAt = null.TimeFrom(time.Now().UTC())
	return svc.repo.UpdateNote(ctx, n)
}

func (svc *Service) Restore(ctx context.Context, id string) (Note, error) {
	n, err := svc.repo.GetNoteByID(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if !n.IsTrashed() {
		return Note{}, ErrNotTrashed
	}
	n.TrashedAt = null.Time{}
	return svc.repo.UpdateNote(ctx, n)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteNotesByID(ctx, ids...)
}

// Search runs the query over all live notes.
func (svc *Service) Search(ctx context.Context, query string, filters SearchFilters) ([]SearchResult, error) {
	notes, err := svc.repo.QueryAllNotes(ctx)
	if err != nil {
		return nil, err
	}
	return Search(notes, query, filters), nil
}
