package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"fmt"
	"math"
	"time"

	"manta/config"
	"manta/infras/otel"
	"manta/shared/constant"
	"manta/shared/failure"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	otelAttrAmount   = "amount"
	otelAttrCurrency = "currency"
	otelAttrIntentID = "intent_id"

	defaultCurrency = "usd"
)

type PaymentIntentRequest struct {
	Amount   float64
	Currency string
	Metadata map[string]string
}

type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// Gateway wraps the payment processor. Intents are created with a bounded
// timeout so a slow processor cannot hold a request open indefinitely, and
// webhook payloads are verified against the shared signing secret before
// anything is parsed from them.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (PaymentIntent, error)
	ConstructEvent(payload []byte, signature string) (stripeGo.Event, error)
}

type gatewayImpl struct {
	client  *client.API
	config  *config.Config
	otel    otel.Otel
	timeout time.Duration
}

func New(config *config.Config, otel otel.Otel) Gateway {
	sc := &client.API{}
	sc.Init(config.External.Stripe.SecretKey, nil)

	return &gatewayImpl{
		client:  sc,
		config:  config,
		otel:    otel,
		timeout: time.Duration(config.External.Stripe.TimeoutSeconds) * time.Second,
	}
}

func (g *gatewayImpl) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (res PaymentIntent, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".CreatePaymentIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	scope.SetAttributes(map[string]any{
		otelAttrAmount:   req.Amount,
		otelAttrCurrency: currency,
	})

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripeGo.PaymentIntentParams{
		Params: stripeGo.Params{
			Context:  ctx,
			Metadata: req.Metadata,
		},
		Amount:   stripeGo.Int64(toMinorUnits(req.Amount)),
		Currency: stripeGo.String(currency),
		AutomaticPaymentMethods: &stripeGo.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeGo.Bool(true),
		},
	}

	intent, err := g.client.PaymentIntents.New(params)
	if err != nil {
		log.Error().Err(err).Float64("amount", req.Amount).Msg("failed to create payment intent")

		return res, failure.BadGateway("payment processor unavailable") //nolint:wrapcheck
	}

	scope.SetAttributes(map[string]any{otelAttrIntentID: intent.ID})

	return PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (g *gatewayImpl) ConstructEvent(payload []byte, signature string) (stripeGo.Event, error) {
	ev, err := webhook.ConstructEvent(payload, signature, g.config.External.Stripe.WebhookSecret)
	if err != nil {
		log.Warn().Err(err).Msg("rejected webhook with invalid signature")

		return stripeGo.Event{}, failure.BadRequestFromString(fmt.Sprintf("invalid webhook signature: %v", err)) //nolint:wrapcheck
	}

	return ev, nil
}

// toMinorUnits converts a decimal price to the processor's integer minor
// units, rounding half away from zero to avoid float drift on sums like
// 19.99 * 100.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * constant.MinorUnitFactor))
}
