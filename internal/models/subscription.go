package models

import "time"

type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

type SubscriptionStatus string

const (
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionTrialing   SubscriptionStatus = "trialing"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
)

type Subscription struct {
	ID             string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrganizationID string `gorm:"column:organization_id;type:uuid;uniqueIndex" json:"organization_id"`

	Plan   Plan               `gorm:"column:plan;type:text" json:"plan"`
	Status SubscriptionStatus `gorm:"column:status;type:text" json:"status"`

	ProviderCustomerID     string     `gorm:"column:provider_customer_id;type:text" json:"-"`
	ProviderSubscriptionID string     `gorm:"column:provider_subscription_id;type:text;index" json:"-"`
	CurrentPeriodEnd       *time.Time `gorm:"column:current_period_end" json:"current_period_end,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

// EffectivePlan is the plan whose limits apply right now.
func (s *Subscription) EffectivePlan() Plan {
	if s == nil {
		return PlanFree
	}
	switch s.Status {
	case SubscriptionActive, SubscriptionTrialing:
		return s.Plan
	default:
		return PlanFree
	}
}

type PlanLimits struct {
	Portfolios   int  `json:"portfolios"`
	CustomDomain bool `json:"custom_domain"`
}

func LimitsFor(p Plan) PlanLimits {
	if p == PlanPro {
		return PlanLimits{Portfolios: 10, CustomDomain: true}
	}
	return PlanLimits{Portfolios: 1, CustomDomain: false}
}
