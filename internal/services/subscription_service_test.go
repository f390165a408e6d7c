package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/folio/internal/logger"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/providers/payments"
	"github.com/yoockh/folio/internal/utils"
)

func TestSubscriptionService_DefaultsToFree(t *testing.T) {
	e := newTestEnv(t)

	v, err := e.subs.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, v.EffectivePlan)
	assert.Equal(t, models.PlanLimits{Portfolios: 1, CustomDomain: false}, v.Limits)
}

func TestSubscriptionService_CheckoutAndWebhooks(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	url, err := e.subs.Checkout(ctx, "u1", "jane@example.com")
	require.NoError(t, err)
	org, err := e.orgs.EnsureMine(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/"+org.ID, url)
	assert.Equal(t, "jane@example.com", e.pay.checkout.CustomerEmail)
	assert.Contains(t, e.pay.checkout.SuccessURL, "https://app.folio.dev/")

	assert.True(t, utils.IsCode(e.subs.HandleWebhook(ctx, []byte("{}"), "bad"), utils.CodeUnauthorized))

	e.pay.event = &payments.Event{
		ID:             "evt_1",
		Type:           payments.EventCheckoutCompleted,
		OrganizationID: org.ID,
		CustomerID:     "cus_1",
		SubscriptionID: "sub_1",
	}
	require.NoError(t, e.subs.HandleWebhook(ctx, []byte("{}"), "ok"))

	v, err := e.subs.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.PlanPro, v.EffectivePlan)
	assert.True(t, v.Limits.CustomDomain)

	_, err = e.subs.Checkout(ctx, "u1", "")
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	end := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	e.pay.event = &payments.Event{
		ID:               "evt_2",
		Type:             payments.EventSubscriptionUpdated,
		SubscriptionID:   "sub_1",
		Status:           "past_due",
		CurrentPeriodEnd: &end,
	}
	require.NoError(t, e.subs.HandleWebhook(ctx, []byte("{}"), "ok"))
	v, err = e.subs.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.PlanPro, v.Plan)
	assert.Equal(t, models.PlanFree, v.EffectivePlan)
	require.NotNil(t, v.CurrentPeriodEnd)
	assert.True(t, end.Equal(*v.CurrentPeriodEnd))

	e.pay.event = &payments.Event{ID: "evt_3", Type: payments.EventSubscriptionDeleted, SubscriptionID: "sub_1"}
	require.NoError(t, e.subs.HandleWebhook(ctx, []byte("{}"), "ok"))
	v, err = e.subs.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, v.Plan)
	assert.Equal(t, models.SubscriptionCanceled, v.Status)

	// unknown subscriptions are acknowledged
	e.pay.event = &payments.Event{ID: "evt_4", Type: payments.EventSubscriptionUpdated, SubscriptionID: "sub_other", Status: "active"}
	assert.NoError(t, e.subs.HandleWebhook(ctx, []byte("{}"), "ok"))

	all, err := e.subs.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubscriptionService_PaymentsDisabled(t *testing.T) {
	e := newTestEnv(t)
	svc := NewSubscriptionService(e.subRepo, e.orgs, nil, "", logger.Discard())

	_, err := svc.Checkout(context.Background(), "u1", "")
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}
