package message

import (
	"time"

	"github.com/trezcool/darasa/core"
)

// Folders known to the portal.
const (
	FolderInbox = "inbox"
	FolderSent  = "sent"
)

type (
	// Message is a direct message within the portal.
	Message struct {
		ID       int       `json:"id"`
		Folder   string    `json:"folder"`
		Sender   string    `json:"sender"`
		SenderID int       `json:"sender_id"`
		Subject  string    `json:"subject"`
		Body     string    `json:"body"` // raw markup
		Date     time.Time `json:"date"`
		Read     bool      `json:"read"`
	}

	// NewMessage contains information needed to send a message.
	NewMessage struct {
		To      []int  `json:"to" validate:"required,min=1"` // recipient participant IDs
		Subject string `json:"subject" validate:"required"`
		Body    string `json:"body" validate:"required"`
	}
)

func (nm *NewMessage) Validate() error {
	nm.Subject = core.CleanString(nm.Subject)
	nm.Body = core.CleanString(nm.Body)
	return core.Validate.Struct(nm)
}
