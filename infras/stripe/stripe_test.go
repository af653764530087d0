package stripe_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripeGo "github.com/stripe/stripe-go/v82"

	"manta/config"
	"manta/infras/otel/mocks"
	"manta/infras/stripe"
	"manta/shared/failure"
)

const testWebhookSecret = "whsec_test_secret"

func newGateway() stripe.Gateway {
	cfg := &config.Config{}
	cfg.External.Stripe.SecretKey = "sk_test_key"
	cfg.External.Stripe.WebhookSecret = testWebhookSecret
	cfg.External.Stripe.TimeoutSeconds = 10

	return stripe.New(cfg, mocks.NewOtel())
}

// sign produces the processor's signature header for a payload: an HMAC over
// "<timestamp>.<payload>" keyed with the endpoint secret.
func sign(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)

	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload() []byte {
	return fmt.Appendf(nil, `{
		"id": "evt_test_1",
		"object": "event",
		"api_version": %q,
		"type": "payment_intent.succeeded",
		"data": {
			"object": {
				"id": "pi_test_1",
				"object": "payment_intent",
				"metadata": {
					"booking_id": "22222222-2222-4222-8222-222222222222"
				}
			}
		}
	}`, stripeGo.APIVersion)
}

func TestGateway_ConstructEvent(t *testing.T) {
	gateway := newGateway()
	payload := eventPayload()

	event, err := gateway.ConstructEvent(payload, sign(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)

	assert.Equal(t, "payment_intent.succeeded", string(event.Type))
	assert.Equal(t, "pi_test_1", event.GetObjectValue("id"))
	assert.Equal(t, "22222222-2222-4222-8222-222222222222", event.GetObjectValue("metadata", "booking_id"))
}

func TestGateway_ConstructEventRejectsBadSignature(t *testing.T) {
	gateway := newGateway()
	payload := eventPayload()

	tests := []struct {
		name      string
		signature string
	}{
		{
			name:      "wrong secret",
			signature: sign(payload, "whsec_other_secret", time.Now()),
		},
		{
			name:      "stale timestamp",
			signature: sign(payload, testWebhookSecret, time.Now().Add(-time.Hour)),
		},
		{
			name:      "garbage header",
			signature: "t=abc,v1=deadbeef",
		},
		{
			name:      "empty header",
			signature: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gateway.ConstructEvent(payload, tt.signature)

			assert.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestGateway_ConstructEventRejectsTamperedPayload(t *testing.T) {
	gateway := newGateway()
	payload := eventPayload()
	signature := sign(payload, testWebhookSecret, time.Now())

	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = ' '

	_, err := gateway.ConstructEvent(tampered, signature)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
