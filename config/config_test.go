package config

import "testing"

func TestMustValidateAcceptsCompleteStripeCredentials(t *testing.T) {
	cfg := &Config{}
	cfg.External.Stripe.SecretKey = "sk_test_123"
	cfg.External.Stripe.WebhookSecret = "whsec_123"

	// The failing path exits the process, so only the passing path is
	// exercised here. Both serve entry points call this before wiring.
	cfg.MustValidate()
}
