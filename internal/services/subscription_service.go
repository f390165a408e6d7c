package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/providers/payments"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/utils"
)

// SubscriptionView is what the dashboard shows about the caller's plan.
type SubscriptionView struct {
	OrganizationID   string                    `json:"organization_id"`
	Plan             models.Plan               `json:"plan"`
	Status           models.SubscriptionStatus `json:"status"`
	EffectivePlan    models.Plan               `json:"effective_plan"`
	Limits           models.PlanLimits         `json:"limits"`
	CurrentPeriodEnd *time.Time                `json:"current_period_end,omitempty"`
}

type SubscriptionService interface {
	Get(ctx context.Context, userID string) (*SubscriptionView, error)
	// Limits returns the limits currently applying to an organization.
	Limits(ctx context.Context, orgID string) (models.PlanLimits, error)
	Checkout(ctx context.Context, userID, email string) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	List(ctx context.Context, limit, offset int) ([]models.Subscription, error)
}

type subscriptionService struct {
	subs   pgrepo.SubscriptionRepository
	orgs   OrganizationService
	pay    payments.Provider
	appURL string
	log    *logrus.Logger
}

func NewSubscriptionService(subs pgrepo.SubscriptionRepository, orgs OrganizationService, pay payments.Provider, appURL string, log *logrus.Logger) SubscriptionService {
	if pay == nil {
		pay = payments.Disabled{}
	}
	return &subscriptionService{subs: subs, orgs: orgs, pay: pay, appURL: appURL, log: log}
}

func (s *subscriptionService) current(ctx context.Context, op, orgID string) (*models.Subscription, error) {
	sub, err := s.subs.GetByOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, nil
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get subscription", err)
	}
	return sub, nil
}

func (s *subscriptionService) Get(ctx context.Context, userID string) (*SubscriptionView, error) {
	const op = "SubscriptionService.Get"

	org, err := s.orgs.EnsureMine(ctx, userID)
	if err != nil {
		return nil, err
	}
	sub, err := s.current(ctx, op, org.ID)
	if err != nil {
		return nil, err
	}

	v := &SubscriptionView{
		OrganizationID: org.ID,
		Plan:           models.PlanFree,
		Status:         models.SubscriptionActive,
		EffectivePlan:  sub.EffectivePlan(),
	}
	if sub != nil {
		v.Plan = sub.Plan
		v.Status = sub.Status
		v.CurrentPeriodEnd = sub.CurrentPeriodEnd
	}
	v.Limits = models.LimitsFor(v.EffectivePlan)
	return v, nil
}

func (s *subscriptionService) Limits(ctx context.Context, orgID string) (models.PlanLimits, error) {
	const op = "SubscriptionService.Limits"

	sub, err := s.current(ctx, op, orgID)
	if err != nil {
		return models.PlanLimits{}, err
	}
	return models.LimitsFor(sub.EffectivePlan()), nil
}

func (s *subscriptionService) Checkout(ctx context.Context, userID, email string) (string, error) {
	const op = "SubscriptionService.Checkout"

	org, err := s.orgs.EnsureMine(ctx, userID)
	if err != nil {
		return "", err
	}
	sub, err := s.current(ctx, op, org.ID)
	if err != nil {
		return "", err
	}
	if sub.EffectivePlan() == models.PlanPro {
		return "", utils.E(utils.CodeConflict, op, "organization is already on the pro plan", nil)
	}

	url, err := s.pay.CreateCheckout(ctx, payments.CheckoutInput{
		OrganizationID: org.ID,
		CustomerEmail:  email,
		SuccessURL:     s.appURL + "/dashboard/billing?checkout=success",
		CancelURL:      s.appURL + "/dashboard/billing?checkout=cancel",
	})
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			return "", utils.E(utils.CodeUnavailable, op, "payments are not configured", err)
		}
		return "", utils.E(utils.CodeUnavailable, op, "failed to create checkout session", err)
	}
	return url, nil
}

func (s *subscriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	const op = "SubscriptionService.HandleWebhook"

	ev, err := s.pay.ParseWebhook(payload, signature)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrNotConfigured):
			return utils.E(utils.CodeUnavailable, op, "payments are not configured", err)
		case errors.Is(err, payments.ErrInvalidSignature):
			return utils.E(utils.CodeUnauthorized, op, "invalid signature", err)
		default:
			return utils.E(utils.CodeInvalidArgument, op, "invalid webhook payload", err)
		}
	}

	log := s.log.WithFields(logrus.Fields{"event_id": ev.ID, "event_type": ev.Type})

	switch ev.Type {
	case payments.EventCheckoutCompleted:
		if ev.OrganizationID == "" {
			return utils.E(utils.CodeInvalidArgument, op, "checkout session has no organization reference", nil)
		}
		existing, err := s.current(ctx, op, ev.OrganizationID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		sub := &models.Subscription{
			ID:             uuid.NewString(),
			OrganizationID: ev.OrganizationID,
			CreatedAt:      now,
		}
		if existing != nil {
			sub = existing
		}
		sub.Plan = models.PlanPro
		sub.Status = models.SubscriptionActive
		sub.ProviderCustomerID = ev.CustomerID
		sub.ProviderSubscriptionID = ev.SubscriptionID
		sub.UpdatedAt = now
		if err := s.subs.Upsert(ctx, sub); err != nil {
			return utils.E(utils.CodeInternal, op, "failed to activate subscription", err)
		}
		log.WithField("organization_id", ev.OrganizationID).Info("subscription activated")

	case payments.EventSubscriptionUpdated, payments.EventSubscriptionDeleted:
		sub, err := s.subs.GetByProviderSubscriptionID(ctx, ev.SubscriptionID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				// created outside our checkout flow
				log.WithField("subscription_id", ev.SubscriptionID).Warn("unknown subscription")
				return nil
			}
			return utils.E(utils.CodeInternal, op, "failed to get subscription", err)
		}

		if ev.Type == payments.EventSubscriptionDeleted {
			sub.Plan = models.PlanFree
			sub.Status = models.SubscriptionCanceled
		} else {
			sub.Status = models.SubscriptionStatus(ev.Status)
		}
		if ev.CurrentPeriodEnd != nil {
			sub.CurrentPeriodEnd = ev.CurrentPeriodEnd
		}
		sub.UpdatedAt = time.Now().UTC()
		if err := s.subs.Upsert(ctx, sub); err != nil {
			return utils.E(utils.CodeInternal, op, "failed to update subscription", err)
		}
		log.WithFields(logrus.Fields{"organization_id": sub.OrganizationID, "status": sub.Status}).Info("subscription updated")

	default:
		log.Debug("webhook ignored")
	}
	return nil
}

func (s *subscriptionService) List(ctx context.Context, limit, offset int) ([]models.Subscription, error) {
	const op = "SubscriptionService.List"

	out, err := s.subs.List(ctx, limit, offset)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list subscriptions", err)
	}
	return out, nil
}
