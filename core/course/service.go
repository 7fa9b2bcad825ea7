package course

import (
	"context"
	"strconv"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/cache"
)

type (
	Fetcher interface {
		FetchCourse(ctx context.Context, programme, metaclass int) (Course, error)
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
		ttl:     conf.Cache.CourseTTL,
	}
}

// Get returns the course content for (programme, metaclass), cached under
// `course_<programme>_<metaclass>`.
func (svc *Service) Get(ctx context.Context, programme, metaclass int) (Course, error) {
	key := cache.Key("course", strconv.Itoa(programme), strconv.Itoa(metaclass))

	var crs Course
	err := svc.loader.Get(ctx, key, svc.ttl, &crs, func(ctx context.Context) (interface{}, error) {
		return svc.fetcher.FetchCourse(ctx, programme, metaclass)
	})
	return crs, err
}
