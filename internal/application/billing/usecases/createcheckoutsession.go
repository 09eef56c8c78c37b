package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/dreamtalk-inc/dreamtalk/internal/application/billing/dto"
	vo "github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription/valueobjects"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/billing"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/config"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

// checkoutSessionPlaceholder is substituted by Stripe with the real session
// ID when redirecting back to the success page.
const checkoutSessionPlaceholder = "{CHECKOUT_SESSION_ID}"

type CreateCheckoutSessionCommand struct {
	UserSID string
	Plan    string
}

type CreateCheckoutSessionUseCase struct {
	userRepo   user.Repository
	gateway    billing.Gateway
	billingCfg config.BillingConfig
	logger     logger.Interface
}

func NewCreateCheckoutSessionUseCase(
	userRepo user.Repository,
	gateway billing.Gateway,
	billingCfg config.BillingConfig,
	logger logger.Interface,
) *CreateCheckoutSessionUseCase {
	return &CreateCheckoutSessionUseCase{
		userRepo:   userRepo,
		gateway:    gateway,
		billingCfg: billingCfg,
		logger:     logger,
	}
}

func (uc *CreateCheckoutSessionUseCase) Execute(ctx context.Context, cmd CreateCheckoutSessionCommand) (*dto.CheckoutResponse, error) {
	plan, err := vo.ParsePlan(cmd.Plan)
	if err != nil {
		return nil, errors.NewValidationError("invalid plan", err.Error())
	}

	userEntity, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "sid", cmd.UserSID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	priceID, err := uc.priceIDFor(plan)
	if err != nil {
		uc.logger.Errorw("checkout rejected: billing not configured", "plan", plan.String(), "error", err)
		return nil, err
	}

	successURL := uc.billingCfg.CheckoutSuccessURL
	if !strings.Contains(successURL, checkoutSessionPlaceholder) {
		successURL += "?session_id=" + checkoutSessionPlaceholder
	}

	session, err := uc.gateway.CreateCheckoutSession(
		ctx,
		userEntity.SID(),
		userEntity.Email().String(),
		plan.String(),
		priceID,
		successURL,
		uc.billingCfg.CheckoutCancelURL,
	)
	if err != nil {
		uc.logger.Errorw("failed to create checkout session", "user_id", userEntity.ID(), "plan", plan.String(), "error", err)
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	uc.logger.Infow("checkout session created", "user_id", userEntity.ID(), "plan", plan.String(), "session_id", session.ID)

	return &dto.CheckoutResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

// priceIDFor maps the plan to its configured Stripe price. An unset or
// placeholder price means the deployment is not ready to sell that plan.
func (uc *CreateCheckoutSessionUseCase) priceIDFor(plan vo.Plan) (string, error) {
	var priceID string
	switch plan {
	case vo.PlanMonthly:
		priceID = uc.billingCfg.MonthlyPriceID
	case vo.PlanLifetime:
		priceID = uc.billingCfg.LifetimePriceID
	}

	if priceID == "" || !strings.HasPrefix(priceID, "price_") {
		return "", errors.NewInternalError(fmt.Sprintf("billing is not configured for the %s plan", plan))
	}
	return priceID, nil
}
