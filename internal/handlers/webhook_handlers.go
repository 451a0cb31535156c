package handlers

import (
	"io"
	"log"
	"net/http"

	"dojohub/internal/common"
	"dojohub/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Stripe caps event payloads well under this.
const maxWebhookBody = 64 * 1024

type WebhookHandlers struct {
	webhookSvc    services.WebhookService
	signingSecret string
}

func NewWebhookHandlers(webhookSvc services.WebhookService, signingSecret string) *WebhookHandlers {
	return &WebhookHandlers{webhookSvc: webhookSvc, signingSecret: signingSecret}
}

// HandleStripeWebhook verifies the event signature and hands the event to
// the dispatcher. A non-2xx response makes the gateway redeliver, which
// is the retry mechanism for any failed handling.
func (h *WebhookHandlers) HandleStripeWebhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return common.SendClientError(c, "could not read request body")
	}

	event, err := webhook.ConstructEvent(payload, c.Request().Header.Get("Stripe-Signature"), h.signingSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		return common.SendClientError(c, "invalid signature")
	}

	if err := h.webhookSvc.ProcessEvent(c.Request().Context(), event); err != nil {
		log.Printf("Webhook event %s (%s) failed: %v", event.ID, event.Type, err)
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"received": "true"})
}
