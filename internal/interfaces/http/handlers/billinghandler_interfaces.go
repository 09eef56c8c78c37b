package handlers

import (
	"context"

	billingdto "github.com/dreamtalk-inc/dreamtalk/internal/application/billing/dto"
	billingusecases "github.com/dreamtalk-inc/dreamtalk/internal/application/billing/usecases"
)

// Use case interfaces for BillingHandler - enables unit testing with mocks.

type createCheckoutSessionUseCase interface {
	Execute(ctx context.Context, cmd billingusecases.CreateCheckoutSessionCommand) (*billingdto.CheckoutResponse, error)
}

type getCheckoutSessionUseCase interface {
	Execute(ctx context.Context, cmd billingusecases.GetCheckoutSessionCommand) (*billingdto.CheckoutSessionStatusResponse, error)
}

type getEntitlementUseCase interface {
	Execute(ctx context.Context, cmd billingusecases.GetEntitlementCommand) (*billingdto.EntitlementResponse, error)
}

type cancelSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd billingusecases.CancelSubscriptionCommand) (*billingdto.SubscriptionResponse, error)
}

type resumeSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd billingusecases.ResumeSubscriptionCommand) (*billingdto.SubscriptionResponse, error)
}
