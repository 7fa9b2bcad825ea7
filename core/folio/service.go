package folio

import (
	"context"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/cache"
)

type (
	Fetcher interface {
		FetchFolioEntries(ctx context.Context) ([]Entry, error)
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
		ttl:     conf.Cache.FoliosTTL,
	}
}

// All returns the student's folio entries, cached under `folios`.
func (svc *Service) All(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := svc.loader.Get(ctx, cache.Key("folios"), svc.ttl, &entries, func(ctx context.Context) (interface{}, error) {
		return svc.fetcher.FetchFolioEntries(ctx)
	})
	return entries, err
}
