package core

import (
	"net"
	"net/url"
	"sync"
	"time"
)

var probeTimeout = 3 * time.Second

// OfflineDetector reports whether remote calls should be skipped.
// It is advisory only: callers consult it before attempting network I/O.
// The answer is re-evaluated on every call, never cached.
type OfflineDetector struct {
	mu     sync.RWMutex
	forced bool
	probe  func() bool // reports whether the portal is reachable; mockable
}

func NewOfflineDetector(conf *Config) *OfflineDetector {
	host := portalHostPort(conf.Portal.BaseURL)
	d := &OfflineDetector{forced: conf.Cache.ForcedOffline}
	d.probe = func() bool {
		conn, err := net.DialTimeout("tcp", host, probeTimeout)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}
	return d
}

// ForceOffline sets the explicit user toggle. It wins over the probe.
func (d *OfflineDetector) ForceOffline(forced bool) {
	d.mu.Lock()
	d.forced = forced
	d.mu.Unlock()
}

func (d *OfflineDetector) Forced() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.forced
}

func (d *OfflineDetector) Offline() bool {
	d.mu.RLock()
	forced, probe := d.forced, d.probe
	d.mu.RUnlock()
	if forced {
		return true
	}
	return !probe()
}

// SetProbe overrides the reachability check. For tests.
func (d *OfflineDetector) SetProbe(probe func() bool) {
	d.mu.Lock()
	d.probe = probe
	d.mu.Unlock()
}

func portalHostPort(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	if u.Port() != "" {
		return u.Host
	}
	port := "443"
	if u.Scheme == "http" {
		port = "80"
	}
	return net.JoinHostPort(u.Hostname(), port)
}
