package note

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

// words per minute used to derive Metadata.ReadingTime
const readingSpeed = 200

type (
	// SeqtaReference is a typed link from a note to a portal object.
	SeqtaReference struct {
		Type  string `json:"type"` // assessment | course | notice | message
		ID    string `json:"id"`
		Label string `json:"label,omitempty"`
	}

	// Metadata is derived from the note content; recomputed on every edit.
	Metadata struct {
		WordCount      int `json:"word_count"`
		CharacterCount int `json:"character_count"`
		ReadingTime    int `json:"reading_time"` // minutes
		Version        int `json:"version"`
	}

	Note struct {
		ID              string           `json:"id"`
		Title           string           `json:"title"`
		Content         string           `json:"content"` // raw markup
		FolderPath      []string         `json:"folder_path"`
		Tags            []string         `json:"tags"`
		SeqtaReferences []SeqtaReference `json:"seqta_references"`
		Metadata        Metadata         `json:"metadata"`
		CreatedAt       time.Time        `json:"created_at"` // UTC
		UpdatedAt       time.Time        `json:"updated_at"` // UTC
		TrashedAt       null.Time        `json:"trashed_at,omitempty"`
	}
)

// Folder returns the note's folder path joined with "/".
func (n *Note) Folder() string {
	return strings.Join(n.FolderPath, "/")
}

func (n *Note) IsTrashed() bool {
	return n.TrashedAt.Valid
}

// InFolder reports whether the note lives in folder or nested beneath it.
func (n *Note) InFolder(folder string) bool {
	own := n.Folder()
	return own == folder || strings.HasPrefix(own, folder+"/")
}

func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// computeMetadata derives counts from the markup-stripped content.
func computeMetadata(content string, version int) Metadata {
	text := stripMarkup(content)
	words := len(strings.Fields(text))
	readingTime := (words + readingSpeed - 1) / readingSpeed
	if words > 0 && readingTime == 0 {
		readingTime = 1
	}
	return Metadata{
		WordCount:      words,
		CharacterCount: len([]rune(text)),
		ReadingTime:    readingTime,
		Version:        version,
	}
}

// NewNote contains information needed to create a new Note.
type NewNote struct {
	Title           string           `json:"title" validate:"required"`
	Content         string           `json:"content"`
	FolderPath      []string         `json:"folder_path"`
	Tags            []string         `json:"tags" validate:"omitempty,dive,alphanum_"`
	SeqtaReferences []SeqtaReference `json:"seqta_references" validate:"omitempty,dive"`
}

func (nn *NewNote) Validate() error {
	nn.Title = core.CleanString(nn.Title)
	for i, tag := range nn.Tags {
		nn.Tags[i] = core.CleanString(tag, true /* lower */)
	}
	return core.Validate.Struct(nn)
}

// UpdateNote defines what information may be provided to modify an existing Note.
// Empty fields keep the original values.
type UpdateNote struct {
	Title           string           `json:"title"`
	Content         string           `json:"content"`
	FolderPath      []string         `json:"folder_path"`
	Tags            []string         `json:"tags" validate:"omitempty,dive,alphanum_"`
	SeqtaReferences []SeqtaReference `json:"seqta_references" validate:"omitempty,dive"`
}

func (un *UpdateNote) Validate(origNote Note) error {
	title := core.CleanString(un.Title)
	if title != "" {
		un.Title = title
	} else {
		un.Title = origNote.Title
	}

	if un.Content == "" {
		un.Content = origNote.Content
	}
	if un.FolderPath == nil {
		un.FolderPath = origNote.FolderPath
	}
	if un.Tags == nil {
		un.Tags = origNote.Tags
	} else {
		for i, tag := range un.Tags {
			un.Tags[i] = core.CleanString(tag, true /* lower */)
		}
	}
	if un.SeqtaReferences == nil {
		un.SeqtaReferences = origNote.SeqtaReferences
	}
	return core.Validate.Struct(un)
}
