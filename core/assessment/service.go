package assessment

import (
	"context"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/cache"
)

type (
	Fetcher interface {
		FetchUpcomingAssessments(ctx context.Context) ([]Assessment, error)
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
		ttl:     conf.Cache.AssessmentsTTL,
	}
}

// Upcoming returns the student's upcoming assessments, cached under
// `assessments_upcoming`.
func (svc *Service) Upcoming(ctx context.Context) ([]Assessment, error) {
	var assessments []Assessment
	err := svc.loader.Get(ctx, cache.Key("assessments", "upcoming"), svc.ttl, &assessments, func(ctx context.Context) (interface{}, error) {
		return svc.fetcher.FetchUpcomingAssessments(ctx)
	})
	return assessments, err
}
