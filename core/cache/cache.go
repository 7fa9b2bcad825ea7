package cache

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// NowFunc is mockable for tests.
	NowFunc = time.Now

	// ErrNoCachedData is returned when both tiers miss while offline.
	ErrNoCachedData = errors.New("no cached data available")
)

// Key builds a cache key of the form `<feature>_<param1>_<param2>`.
// The scheme doubles as the wire format of the durable tier and must stay
// stable across versions. Params are numeric IDs or ISO dates; they must not
// contain underscores.
func Key(feature string, params ...string) string {
	if len(params) == 0 {
		return feature
	}
	return feature + "_" + strings.Join(params, "_")
}
