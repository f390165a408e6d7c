package dns

import (
	"context"
	"errors"
)

var (
	ErrDomainNotFound = errors.New("domain not found")
	ErrDomainTaken    = errors.New("domain already in use")
	ErrNotConfigured  = errors.New("domain provider is not configured")
)

type VerificationRecord struct {
	Type   string `json:"type"`
	Domain string `json:"domain"`
	Value  string `json:"value"`
	Reason string `json:"reason,omitempty"`
}

// ProjectDomain is a domain attached to the hosting project.
type ProjectDomain struct {
	Name         string               `json:"name"`
	ApexName     string               `json:"apexName"`
	Verified     bool                 `json:"verified"`
	Verification []VerificationRecord `json:"verification,omitempty"`
}

// DomainConfig reports whether public DNS points at the hosting project.
type DomainConfig struct {
	Misconfigured bool   `json:"misconfigured"`
	ConfiguredBy  string `json:"configuredBy,omitempty"`
}

type Provider interface {
	AddDomain(ctx context.Context, domain string) (*ProjectDomain, error)
	RemoveDomain(ctx context.Context, domain string) error
	GetDomain(ctx context.Context, domain string) (*ProjectDomain, error)
	VerifyDomain(ctx context.Context, domain string) (*ProjectDomain, error)
	GetConfig(ctx context.Context, domain string) (*DomainConfig, error)
}

// Disabled answers every call with ErrNotConfigured.
type Disabled struct{}

func (Disabled) AddDomain(context.Context, string) (*ProjectDomain, error) {
	return nil, ErrNotConfigured
}
func (Disabled) RemoveDomain(context.Context, string) error { return ErrNotConfigured }
func (Disabled) GetDomain(context.Context, string) (*ProjectDomain, error) {
	return nil, ErrNotConfigured
}
func (Disabled) VerifyDomain(context.Context, string) (*ProjectDomain, error) {
	return nil, ErrNotConfigured
}
func (Disabled) GetConfig(context.Context, string) (*DomainConfig, error) {
	return nil, ErrNotConfigured
}
