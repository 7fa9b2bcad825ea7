package message

import (
	"context"
	"net/mail"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/cache"
)

type (
	// Sender both lists and sends portal messages.
	Sender interface {
		FetchMessages(ctx context.Context, folder string) ([]Message, error)
		SendMessage(ctx context.Context, nm NewMessage) error
	}

	Service struct {
		sender       Sender
		loader       *cache.Loader
		mailSvc      core.EmailService
		forwardEmail string
		ttl          time.Duration
	}
)

func NewService(sender Sender, loader *cache.Loader, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		sender:       sender,
		loader:       loader,
		mailSvc:      mailSvc,
		forwardEmail: conf.ForwardEmail,
		ttl:          conf.Cache.MessagesTTL,
	}
}

// Folder returns the messages of a folder, cached under `messages_<folder>`.
func (svc *Service) Folder(ctx context.Context, folder string) ([]Message, error) {
	folder = core.CleanString(folder, true /* lower */)
	if folder == "" {
		folder = FolderInbox
	}

	var msgs []Message
	err := svc.loader.Get(ctx, cache.Key("messages", folder), svc.ttl, &msgs, func(ctx context.Context) (interface{}, error) {
		return svc.sender.FetchMessages(ctx, folder)
	})
	return msgs, err
}

// Send sends a message through the portal. Sending is never cached; the sent
// folder is invalidated so the next listing re-fetches. When a forward address
// is configured, a plain-text copy goes out by email.
func (svc *Service) Send(ctx context.Context, nm NewMessage) error {
	if err := nm.Validate(); err != nil {
		return err
	}
	if err := svc.sender.SendMessage(ctx, nm); err != nil {
		return err
	}
	svc.loader.Invalidate(ctx, cache.Key("messages", FolderSent))

	if svc.forwardEmail != "" && svc.mailSvc != nil {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Address: svc.forwardEmail}},
			Subject: nm.Subject,
			BodyStr: nm.Body,
		})
	}
	return nil
}
