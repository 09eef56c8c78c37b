package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"

	billingusecases "github.com/dreamtalk-inc/dreamtalk/internal/application/billing/usecases"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

// maxWebhookBodyBytes bounds the webhook payload read. Stripe events are
// small; anything larger is not ours.
const maxWebhookBodyBytes = 1 << 20

type webhookVerifier interface {
	VerifyWebhook(payload []byte, sigHeader string) (*stripe.Event, error)
}

type processWebhookEventUseCase interface {
	Execute(ctx context.Context, cmd billingusecases.ProcessWebhookEventCommand) error
}

// WebhookHandler receives billing provider callbacks. A bad signature is
// answered 400 without touching any state; a processing failure is
// answered 500 so the provider redelivers.
type WebhookHandler struct {
	verifier       webhookVerifier
	processUseCase processWebhookEventUseCase
	logger         logger.Interface
}

func NewWebhookHandler(
	verifier webhookVerifier,
	processUC processWebhookEventUseCase,
	logger logger.Interface,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:       verifier,
		processUseCase: processUC,
		logger:         logger,
	}
}

func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	sigHeader := c.GetHeader(constants.HeaderStripeSignature)

	event, err := h.verifier.VerifyWebhook(payload, sigHeader)
	if err != nil {
		h.logger.Warnw("webhook signature verification failed", "error", err, "client_ip", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	if err := h.processUseCase.Execute(c.Request.Context(), billingusecases.ProcessWebhookEventCommand{Event: event}); err != nil {
		h.logger.Errorw("webhook processing failed", "error", err, "event_id", event.ID, "event_type", event.Type)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "event processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
