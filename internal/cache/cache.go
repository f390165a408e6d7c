package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// Incr bumps a counter, starting its ttl window on first use.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// SiteKey caches the rendered data of one portfolio.
func SiteKey(portfolioID string) string { return "site:portfolio:" + portfolioID }

// HostKey maps a site key (subdomain or custom host) to a portfolio id.
func HostKey(siteKey string) string { return "site:host:" + siteKey }

// RateKey namespaces fixed-window rate limit counters.
func RateKey(scope, subject string) string { return "rate:" + scope + ":" + subject }
