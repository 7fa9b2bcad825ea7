package goal

import (
	"context"
	"strconv"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/cache"
)

type (
	Fetcher interface {
		FetchGoalYears(ctx context.Context) ([]int, error)
		FetchGoals(ctx context.Context, year int) ([]Goal, error)
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
		ttl:     conf.Cache.GoalsTTL,
	}
}

// Years returns the school years the student has goals for, cached under
// `goals_years`.
func (svc *Service) Years(ctx context.Context) ([]int, error) {
	var years []int
	err := svc.loader.Get(ctx, cache.Key("goals", "years"), svc.ttl, &years, func(ctx context.Context) (interface{}, error) {
		return svc.fetcher.FetchGoalYears(ctx)
	})
	return years, err
}

// ForYear returns the goals for a school year, cached under `goals_<year>`.
func (svc *Service) ForYear(ctx context.Context, year int) ([]Goal, error) {
	var goals []Goal
	err := svc.loader.Get(ctx, cache.Key("goals", strconv.Itoa(year)), svc.ttl, &goals, func(ctx context.Context) (interface{}, error) {
		return svc.fetcher.FetchGoals(ctx, year)
	})
	return goals, err
}
