package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81/webhook"
)

func sign(t *testing.T, payload, secret string) string {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    secret,
		Timestamp: time.Now(),
	})
	return sp.Header
}

func TestStripe_ParseCheckoutCompleted(t *testing.T) {
	s := NewStripe("sk_test", "whsec_test", "price_pro")
	payload := `{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_1",
			"object": "checkout.session",
			"client_reference_id": "org-1",
			"customer": "cus_1",
			"subscription": "sub_1"
		}}
	}`

	ev, err := s.ParseWebhook([]byte(payload), sign(t, payload, "whsec_test"))
	require.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, ev.Type)
	assert.Equal(t, "org-1", ev.OrganizationID)
	assert.Equal(t, "cus_1", ev.CustomerID)
	assert.Equal(t, "sub_1", ev.SubscriptionID)
}

func TestStripe_ParseSubscriptionUpdated(t *testing.T) {
	s := NewStripe("sk_test", "whsec_test", "price_pro")
	payload := `{
		"id": "evt_2",
		"object": "event",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_1",
			"object": "subscription",
			"status": "past_due",
			"customer": "cus_1",
			"current_period_end": 1767225600
		}}
	}`

	ev, err := s.ParseWebhook([]byte(payload), sign(t, payload, "whsec_test"))
	require.NoError(t, err)
	assert.Equal(t, EventSubscriptionUpdated, ev.Type)
	assert.Equal(t, "past_due", ev.Status)
	require.NotNil(t, ev.CurrentPeriodEnd)
	assert.Equal(t, int64(1767225600), ev.CurrentPeriodEnd.Unix())
}

func TestStripe_RejectsBadSignature(t *testing.T) {
	s := NewStripe("sk_test", "whsec_test", "price_pro")
	payload := `{"id":"evt_3","object":"event","type":"invoice.paid","data":{"object":{}}}`

	_, err := s.ParseWebhook([]byte(payload), sign(t, payload, "whsec_other"))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	ev, err := s.ParseWebhook([]byte(payload), sign(t, payload, "whsec_test"))
	require.NoError(t, err)
	assert.Equal(t, EventIgnored, ev.Type)
}
