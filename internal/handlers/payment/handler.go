package payment

import (
	"io"
	"net/http"

	"manta/infras/otel"
	"manta/infras/stripe"
	"manta/internal/domains/rental/service"
	"manta/shared/constant"
	"manta/shared/failure"
	"manta/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

// Handler receives processor webhooks. It sits outside the authenticated
// surface: the only credential a webhook carries is its signature.
type Handler struct {
	service service.Rental
	gateway stripe.Gateway
	otel    otel.Otel
}

func New(service service.Rental, gateway stripe.Gateway, otel otel.Otel) Handler {
	return Handler{
		service: service,
		gateway: gateway,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/rental-bookings/webhook", handler.HandleWebhook)
}

// HandleWebhook processes payment processor events.
// @Summary Receive payment webhooks
// @Description Verify the processor signature and reconcile the referenced booking.
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Webhook processed"
// @Failure 400 {object} response.Error
// @Router /v1/rental-bookings/webhook [post]
func (handler *Handler) HandleWebhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HandleWebhook")
	defer scope.End()

	// The signature covers the exact bytes on the wire, so the body must be
	// read raw before any decoding touches it.
	payload, err := io.ReadAll(request.Body)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook body")

		response.WithError(writer, failure.BadRequestFromString("failed to read request body"))

		return
	}

	signature := request.Header.Get(constant.RequestHeaderStripeSignature)

	event, err := handler.gateway.ConstructEvent(payload, signature)
	if err != nil {
		scope.TraceError(err)
		log.Warn().
			Err(err).
			Str("remoteAddr", request.RemoteAddr).
			Msg("webhook signature verification failed")

		response.WithError(writer, err)

		return
	}

	// Past this point the payload is authentic. Reconciliation problems are
	// ours to sort out; returning an error would only make the processor
	// retry an event we already received.
	bookingID := event.GetObjectValue("metadata", "booking_id")
	paymentIntentID := event.GetObjectValue("id")

	if err := handler.service.ReconcilePaymentEvent(ctx, string(event.Type), paymentIntentID, bookingID); err != nil {
		scope.TraceError(err)
		log.Error().
			Err(err).
			Str("eventType", string(event.Type)).
			Str("bookingId", bookingID).
			Msg("failed to reconcile payment event")
	}

	scope.AddEvent("Webhook processed: " + string(event.Type))

	response.WithMessage(writer, http.StatusOK, "Webhook processed")
}
