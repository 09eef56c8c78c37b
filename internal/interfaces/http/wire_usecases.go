package http

import (
	billingUsecases "github.com/dreamtalk-inc/dreamtalk/internal/application/billing/usecases"
	recordingUsecases "github.com/dreamtalk-inc/dreamtalk/internal/application/recording/usecases"
	userUsecases "github.com/dreamtalk-inc/dreamtalk/internal/application/user/usecases"
)

type allUseCases struct {
	// Auth and profile
	initiateOAuth  *userUsecases.InitiateOAuthLoginUseCase
	handleOAuth    *userUsecases.HandleOAuthCallbackUseCase
	refreshToken   *userUsecases.RefreshTokenUseCase
	logout         *userUsecases.LogoutUseCase
	getCurrentUser *userUsecases.GetCurrentUserUseCase

	// Billing
	createCheckout *billingUsecases.CreateCheckoutSessionUseCase
	getCheckout    *billingUsecases.GetCheckoutSessionUseCase
	getEntitlement *billingUsecases.GetEntitlementUseCase
	cancelSub      *billingUsecases.CancelSubscriptionUseCase
	resumeSub      *billingUsecases.ResumeSubscriptionUseCase
	processWebhook *billingUsecases.ProcessWebhookEventUseCase

	// Recordings and categories
	saveRecording   *recordingUsecases.SaveRecordingUseCase
	listRecordings  *recordingUsecases.ListRecordingsUseCase
	getRecording    *recordingUsecases.GetRecordingUseCase
	deleteRecording *recordingUsecases.DeleteRecordingUseCase
	listCategories  *recordingUsecases.ListCategoriesUseCase
	createCategory  *recordingUsecases.CreateCategoryUseCase
	deleteCategory  *recordingUsecases.DeleteCategoryUseCase
}

func (c *Container) initUseCases() {
	ucs := &allUseCases{}

	ucs.initiateOAuth = userUsecases.NewInitiateOAuthLoginUseCase(c.oauthClient, c.stateStore, c.log)
	ucs.handleOAuth = userUsecases.NewHandleOAuthCallbackUseCase(
		c.repos.users,
		c.repos.oauthAccounts,
		c.repos.sessions,
		c.oauthClient,
		c.stateStore,
		c.jwtSvc,
		c.log,
	)
	ucs.refreshToken = userUsecases.NewRefreshTokenUseCase(c.repos.users, c.repos.sessions, c.jwtSvc, c.log)
	ucs.logout = userUsecases.NewLogoutUseCase(c.repos.sessions, c.log)
	ucs.getCurrentUser = userUsecases.NewGetCurrentUserUseCase(c.repos.users, c.log)

	ucs.createCheckout = billingUsecases.NewCreateCheckoutSessionUseCase(c.repos.users, c.gateway, c.cfg.Billing, c.log)
	ucs.getCheckout = billingUsecases.NewGetCheckoutSessionUseCase(c.gateway, c.log)
	ucs.getEntitlement = billingUsecases.NewGetEntitlementUseCase(c.repos.users, c.repos.subscriptions, c.entCache, c.log)
	ucs.cancelSub = billingUsecases.NewCancelSubscriptionUseCase(
		c.repos.users,
		c.repos.subscriptions,
		c.gateway,
		c.entCache,
		c.emailSvc,
		c.log,
	)
	ucs.resumeSub = billingUsecases.NewResumeSubscriptionUseCase(
		c.repos.users,
		c.repos.subscriptions,
		c.gateway,
		c.entCache,
		c.log,
	)
	ucs.processWebhook = billingUsecases.NewProcessWebhookEventUseCase(
		c.repos.subscriptions,
		c.repos.webhookEvents,
		c.repos.users,
		c.entCache,
		c.emailSvc,
		c.log,
	)

	// The entitlement use case doubles as the access check for recording
	// length limits, so free-tier caps and the billing API can never
	// disagree.
	ucs.saveRecording = recordingUsecases.NewSaveRecordingUseCase(
		c.repos.users,
		c.repos.recordings,
		c.repos.categories,
		c.objects,
		c.transcriber,
		c.summarizer,
		ucs.getEntitlement,
		c.log,
	)
	ucs.listRecordings = recordingUsecases.NewListRecordingsUseCase(c.repos.users, c.repos.recordings, c.repos.categories, c.log)
	ucs.getRecording = recordingUsecases.NewGetRecordingUseCase(c.repos.users, c.repos.recordings, c.repos.categories, c.log)
	ucs.deleteRecording = recordingUsecases.NewDeleteRecordingUseCase(c.repos.users, c.repos.recordings, c.objects, c.log)
	ucs.listCategories = recordingUsecases.NewListCategoriesUseCase(c.repos.users, c.repos.categories, c.log)
	ucs.createCategory = recordingUsecases.NewCreateCategoryUseCase(c.repos.users, c.repos.categories, c.log)
	ucs.deleteCategory = recordingUsecases.NewDeleteCategoryUseCase(c.repos.users, c.repos.categories, c.log)

	c.ucs = ucs
}
