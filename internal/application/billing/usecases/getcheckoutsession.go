package usecases

import (
	"context"
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/application/billing/dto"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/billing"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

type GetCheckoutSessionCommand struct {
	SessionID string
}

// GetCheckoutSessionUseCase backs the post-checkout success page poll. It
// only reports display state; entitlement is always derived from the
// webhook-maintained subscription rows.
type GetCheckoutSessionUseCase struct {
	gateway billing.Gateway
	logger  logger.Interface
}

func NewGetCheckoutSessionUseCase(gateway billing.Gateway, logger logger.Interface) *GetCheckoutSessionUseCase {
	return &GetCheckoutSessionUseCase{
		gateway: gateway,
		logger:  logger,
	}
}

func (uc *GetCheckoutSessionUseCase) Execute(ctx context.Context, cmd GetCheckoutSessionCommand) (*dto.CheckoutSessionStatusResponse, error) {
	if cmd.SessionID == "" {
		return nil, errors.NewValidationError("session ID is required")
	}

	session, err := uc.gateway.GetCheckoutSession(ctx, cmd.SessionID)
	if err != nil {
		uc.logger.Warnw("failed to get checkout session", "session_id", cmd.SessionID, "error", err)
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}

	return &dto.CheckoutSessionStatusResponse{
		SessionID:     session.ID,
		PaymentStatus: session.PaymentStatus,
		CustomerEmail: session.CustomerEmail,
		Plan:          session.Plan,
	}, nil
}
