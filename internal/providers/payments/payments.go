package payments

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotConfigured    = errors.New("payment provider is not configured")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

type EventType string

const (
	EventCheckoutCompleted   EventType = "checkout.session.completed"
	EventSubscriptionUpdated EventType = "customer.subscription.updated"
	EventSubscriptionDeleted EventType = "customer.subscription.deleted"
	EventIgnored             EventType = ""
)

type CheckoutInput struct {
	OrganizationID string
	CustomerEmail  string
	SuccessURL     string
	CancelURL      string
}

// Event is the provider-neutral view of a billing webhook.
type Event struct {
	ID               string
	Type             EventType
	OrganizationID   string // set on checkout completion
	CustomerID       string
	SubscriptionID   string
	Status           string
	CurrentPeriodEnd *time.Time
}

type Provider interface {
	// CreateCheckout returns the hosted checkout URL for the pro plan.
	CreateCheckout(ctx context.Context, in CheckoutInput) (string, error)
	ParseWebhook(payload []byte, signature string) (*Event, error)
}

type Disabled struct{}

func (Disabled) CreateCheckout(context.Context, CheckoutInput) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) ParseWebhook([]byte, string) (*Event, error) { return nil, ErrNotConfigured }
