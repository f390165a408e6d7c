// Package tenant maps request hosts onto the portfolio sites they serve.
package tenant

import (
	"context"
	"net"
	"strings"
)

type Kind int

const (
	KindApp Kind = iota
	KindSubdomain
	KindCustomDomain
)

func (k Kind) String() string {
	switch k {
	case KindSubdomain:
		return "subdomain"
	case KindCustomDomain:
		return "custom_domain"
	default:
		return "app"
	}
}

// Site identifies the tenant a host belongs to. Key is the subdomain label
// or the full custom host; it is empty for the app itself.
type Site struct {
	Kind Kind
	Key  string
}

func (s Site) IsTenant() bool { return s.Kind != KindApp }

// Resolve classifies host (which may carry a port) against the root domain.
func Resolve(host, rootDomain, appSubdomain string) Site {
	h := normalizeHost(host)
	root := normalizeHost(rootDomain)

	if h == "" {
		return Site{Kind: KindApp}
	}

	switch h {
	case root, "www." + root, appSubdomain + "." + root, "localhost":
		return Site{Kind: KindApp}
	}

	if label, ok := singleLabel(h, root); ok {
		if label == "www" || label == appSubdomain {
			return Site{Kind: KindApp}
		}
		return Site{Kind: KindSubdomain, Key: label}
	}
	if label, ok := singleLabel(h, "localhost"); ok {
		return Site{Kind: KindSubdomain, Key: label}
	}

	if net.ParseIP(h) != nil {
		return Site{Kind: KindApp}
	}
	return Site{Kind: KindCustomDomain, Key: h}
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(host, ".")
}

// singleLabel returns "x" for "x.<parent>" and rejects deeper names.
func singleLabel(host, parent string) (string, bool) {
	if parent == "" {
		return "", false
	}
	label, ok := strings.CutSuffix(host, "."+parent)
	if !ok || label == "" || strings.Contains(label, ".") {
		return "", false
	}
	return label, true
}

type ctxKey struct{}

// WithSite marks a request context as served on the tenant's own host.
func WithSite(ctx context.Context, s Site) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Site, bool) {
	s, ok := ctx.Value(ctxKey{}).(Site)
	return s, ok
}
