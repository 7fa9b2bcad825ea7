package sqliterepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/note"
)

type noteRow struct {
	ID              string    `db:"id"`
	Title           string    `db:"title"`
	Content         string    `db:"content"`
	FolderPath      string    `db:"folder_path"`      // JSON array
	Tags            string    `db:"tags"`             // JSON array
	SeqtaReferences string    `db:"seqta_references"` // JSON array
	WordCount       int       `db:"word_count"`
	CharacterCount  int       `db:"character_count"`
	ReadingTime     int       `db:"reading_time"`
	Version         int       `db:"version"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	TrashedAt       null.Time `db:"trashed_at"`
}

func newNoteRow(n note.Note) (noteRow, error) {
	folders, err := json.Marshal(orEmpty(n.FolderPath))
	if err != nil {
		return noteRow{}, errors.Wrap(err, "encoding folder_path")
	}
	tags, err := json.Marshal(orEmpty(n.Tags))
	if err != nil {
		return noteRow{}, errors.Wrap(err, "encoding tags")
	}
	refs := n.SeqtaReferences
	if refs == nil {
		refs = []note.SeqtaReference{}
	}
	refsData, err := json.Marshal(refs)
	if err != nil {
		return noteRow{}, errors.Wrap(err, "encoding seqta_references")
	}
	return noteRow{
		ID:              n.ID,
		Title:           n.Title,
		Content:         n.Content,
		FolderPath:      string(folders),
		Tags:            string(tags),
		SeqtaReferences: string(refsData),
		WordCount:       n.Metadata.WordCount,
		CharacterCount:  n.Metadata.CharacterCount,
		ReadingTime:     n.Metadata.ReadingTime,
		Version:         n.Metadata.Version,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
		TrashedAt:       n.TrashedAt,
	}, nil
}

func (row noteRow) toNote() (note.Note, error) {
	n := note.Note{
		ID:      row.ID,
		Title:   row.Title,
		Content: row.Content,
		Metadata: note.Metadata{
			WordCount:      row.WordCount,
			CharacterCount: row.CharacterCount,
			ReadingTime:    row.ReadingTime,
			Version:        row.Version,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		TrashedAt: row.TrashedAt,
	}
	// a row we wrote but can no longer decode means the data file is
	// corrupt; that is unrecoverable, so ask for a shutdown
	if err := json.Unmarshal([]byte(row.FolderPath), &n.FolderPath); err != nil {
		return note.Note{}, core.NewShutdownError("note " + row.ID + ": corrupt folder_path: " + err.Error())
	}
	if err := json.Unmarshal([]byte(row.Tags), &n.Tags); err != nil {
		return note.Note{}, core.NewShutdownError("note " + row.ID + ": corrupt tags: " + err.Error())
	}
	if err := json.Unmarshal([]byte(row.SeqtaReferences), &n.SeqtaReferences); err != nil {
		return note.Note{}, core.NewShutdownError("note " + row.ID + ": corrupt seqta_references: " + err.Error())
	}
	return n, nil
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

type noteRepository struct {
	db *sqlx.DB
}

var _ note.Repository = (*noteRepository)(nil)

func NewNoteRepository(db *sqlx.DB) note.Repository {
	return &noteRepository{db: db}
}

func (repo *noteRepository) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	row, err := newNoteRow(n)
	if err != nil {
		return note.Note{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO note (id, title, content, folder_path, tags, seqta_references,
		                  word_count, character_count, reading_time, version,
		                  created_at, updated_at, trashed_at)
		VALUES (:id, :title, :content, :folder_path, :tags, :seqta_references,
		        :word_count, :character_count, :reading_time, :version,
		        :created_at, :updated_at, :trashed_at)`, row)
	if err != nil {
		return note.Note{}, errors.Wrap(err, "inserting note")
	}
	return n, nil
}

func (repo *noteRepository) GetNoteByID(ctx context.Context, id string) (note.Note, error) {
	var row noteRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM note WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return note.Note{}, note.ErrNotFound
	}
	if err != nil {
		return note.Note{}, errors.Wrap(err, "getting note")
	}
	return row.toNote()
}

func (repo *noteRepository) QueryAllNotes(ctx context.Context) ([]note.Note, error) {
	return repo.query(ctx, `SELECT * FROM note WHERE trashed_at IS NULL ORDER BY updated_at DESC`)
}

func (repo *noteRepository) QueryTrashedNotes(ctx context.Context) ([]note.Note, error) {
	return repo.query(ctx, `SELECT * FROM note WHERE trashed_at IS NOT NULL ORDER BY updated_at DESC`)
}

func (repo *noteRepository) query(ctx context.Context, q string) ([]note.Note, error) {
	var rows []noteRow
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}
	notes := make([]note.Note, 0, len(rows))
	for _, row := range rows {
		n, err := row.toNote()
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (repo *noteRepository) UpdateNote(ctx context.Context, n note.Note) (note.Note, error) {
	row, err := newNoteRow(n)
	if err != nil {
		return note.Note{}, err
	}
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE note
		SET title = :title, content = :content, folder_path = :folder_path,
		    tags = :tags, seqta_references = :seqta_references,
		    word_count = :word_count, character_count = :character_count,
		    reading_time = :reading_time, version = :version,
		    updated_at = :updated_at, trashed_at = :trashed_at
		WHERE id = :id`, row)
	if err != nil {
		return note.Note{}, errors.Wrap(err, "updating note")
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return note.Note{}, note.ErrNotFound
	}
	return n, nil
}

func (repo *noteRepository) DeleteNotesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM note WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err := repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting notes")
	}
	return nil
}
