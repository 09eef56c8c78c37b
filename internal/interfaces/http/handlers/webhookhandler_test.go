package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82"

	billingusecases "github.com/dreamtalk-inc/dreamtalk/internal/application/billing/usecases"
	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/handlers/testutil"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
)

type mockWebhookVerifier struct {
	event      *stripe.Event
	err        error
	gotPayload []byte
	gotSig     string
}

func (m *mockWebhookVerifier) VerifyWebhook(payload []byte, sigHeader string) (*stripe.Event, error) {
	m.gotPayload = payload
	m.gotSig = sigHeader
	return m.event, m.err
}

type mockProcessWebhookUC struct {
	err      error
	gotEvent *stripe.Event
}

func (m *mockProcessWebhookUC) Execute(ctx context.Context, cmd billingusecases.ProcessWebhookEventCommand) error {
	m.gotEvent = cmd.Event
	return m.err
}

func newWebhookContext(body []byte, signature string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(constants.HeaderStripeSignature, signature)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestHandleStripeWebhook_ProcessesVerifiedEvent(t *testing.T) {
	verifier := &mockWebhookVerifier{
		event: &stripe.Event{ID: "evt_1", Type: "checkout.session.completed"},
	}
	processUC := &mockProcessWebhookUC{}
	h := NewWebhookHandler(verifier, processUC, testutil.NewMockLogger())

	body := []byte(`{"id":"evt_1"}`)
	c, w := newWebhookContext(body, "t=123,v1=sig")

	h.HandleStripeWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
	assert.Equal(t, body, verifier.gotPayload)
	assert.Equal(t, "t=123,v1=sig", verifier.gotSig)
	assert.Equal(t, "evt_1", processUC.gotEvent.ID)
}

func TestHandleStripeWebhook_BadSignature(t *testing.T) {
	verifier := &mockWebhookVerifier{err: assert.AnError}
	processUC := &mockProcessWebhookUC{}
	h := NewWebhookHandler(verifier, processUC, testutil.NewMockLogger())

	c, w := newWebhookContext([]byte(`{"id":"evt_1"}`), "t=123,v1=forged")

	h.HandleStripeWebhook(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, processUC.gotEvent, "unverified events must never reach processing")
}

func TestHandleStripeWebhook_ProcessingFailureTriggersRedelivery(t *testing.T) {
	verifier := &mockWebhookVerifier{
		event: &stripe.Event{ID: "evt_1", Type: "checkout.session.completed"},
	}
	processUC := &mockProcessWebhookUC{err: assert.AnError}
	h := NewWebhookHandler(verifier, processUC, testutil.NewMockLogger())

	c, w := newWebhookContext([]byte(`{"id":"evt_1"}`), "t=123,v1=sig")

	h.HandleStripeWebhook(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
