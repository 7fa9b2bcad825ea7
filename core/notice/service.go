package notice

import (
	"context"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/cache"
)

const dateLayout = "2006-01-02"

type (
	Fetcher interface {
		FetchNotices(ctx context.Context, date string) ([]Notice, error)
	}

	Service struct {
		fetcher Fetcher
		loader  *cache.Loader
		ttl     time.Duration
	}
)

func NewService(fetcher Fetcher, loader *cache.Loader, conf *core.Config) *Service {
	return &Service{
		fetcher: fetcher,
		loader:  loader,
		ttl:     conf.Cache.NoticesTTL,
	}
}

// ForDate returns the notices for a yyyy-mm-dd date, cached under `notices_<date>`.
func (svc *Service) ForDate(ctx context.Context, date string) ([]Notice, error) {
	date = core.CleanString(date)
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, core.NewValidationError(err, core.FieldError{Field: "date", Error: "must be a yyyy-mm-dd date"})
	}

	var notices []Notice
	err := svc.loader.Get(ctx, cache.Key("notices", date), svc.ttl, &notices, func(ctx context.Context) (interface{}, error) {
		return svc.fetcher.FetchNotices(ctx, date)
	})
	return notices, err
}

// Today returns the notices for the current date.
func (svc *Service) Today(ctx context.Context) ([]Notice, error) {
	return svc.ForDate(ctx, time.Now().Format(dateLayout))
}
