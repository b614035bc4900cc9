package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"

	"github.com/xavierca1/callflex-webhooks/internal/infra/http/middleware"
	"github.com/xavierca1/callflex-webhooks/internal/usecase"
)

const stripeBodyLimit = int64(65536)

type ActivateSubscriptionUseCase interface {
	Execute(ctx context.Context, input usecase.PaymentEventInput) (*usecase.ActivateSubscriptionOutput, error)
}

// stripeEnvelope decodes only the path we read. Pointers let a missing
// segment fall through to an empty email instead of an error.
type stripeEnvelope struct {
	Type string `json:"type"`
	Data *struct {
		Object *struct {
			CustomerDetails *struct {
				Email *string `json:"email"`
			} `json:"customer_details"`
		} `json:"object"`
	} `json:"data"`
}

func (e stripeEnvelope) customerEmail() string {
	if e.Data == nil || e.Data.Object == nil || e.Data.Object.CustomerDetails == nil || e.Data.Object.CustomerDetails.Email == nil {
		return ""
	}
	return *e.Data.Object.CustomerDetails.Email
}

type StripeHandler struct {
	ActivateSubscriptionUC ActivateSubscriptionUseCase
	WebhookSecret          string
	logger                 *zap.Logger
}

func NewStripeHandler(uc ActivateSubscriptionUseCase, webhookSecret string, logger *zap.Logger) *StripeHandler {
	return &StripeHandler{
		ActivateSubscriptionUC: uc,
		WebhookSecret:          webhookSecret,
		logger:                 logger,
	}
}

func (h *StripeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(w, r, stripeBodyLimit)
	if err != nil {
		code, msg := bodyErrorStatus(err, stripeBodyLimit)
		h.reject(w, code, "validation", msg)
		return
	}

	if h.WebhookSecret == "" {
		h.reject(w, http.StatusInternalServerError, "integration", "stripe webhook secret not configured")
		return
	}

	if err := webhook.ValidatePayload(payload, r.Header.Get("Stripe-Signature"), h.WebhookSecret); err != nil {
		h.logger.Warn("stripe signature verification failed", zap.Error(err))
		h.reject(w, http.StatusBadRequest, "signature", "invalid stripe signature")
		return
	}

	var event stripeEnvelope
	if err := json.Unmarshal(payload, &event); err != nil {
		if isStructureError(err) {
			h.reject(w, http.StatusInternalServerError, "integration", err.Error())
			return
		}
		h.reject(w, http.StatusBadRequest, "validation", "Invalid JSON body: "+err.Error())
		return
	}

	input := usecase.PaymentEventInput{Type: event.Type}
	if stripe.EventType(event.Type) == stripe.EventTypeCheckoutSessionCompleted {
		input.CustomerEmail = event.customerEmail()
	}

	output, err := h.ActivateSubscriptionUC.Execute(r.Context(), input)
	if err != nil {
		h.reject(w, http.StatusInternalServerError, "integration", err.Error())
		return
	}

	if output.Activated {
		middleware.RecordSubscriptionActivation()
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": output.Status})
}

func (h *StripeHandler) reject(w http.ResponseWriter, code int, kind, message string) {
	middleware.RecordWebhookError("stripe", kind)
	h.logger.Warn("stripe webhook rejected", zap.Int("status", code), zap.String("error", message))
	respondWithError(w, code, message)
}
