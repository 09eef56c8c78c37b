package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	billingdto "github.com/dreamtalk-inc/dreamtalk/internal/application/billing/dto"
	billingusecases "github.com/dreamtalk-inc/dreamtalk/internal/application/billing/usecases"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/utils"
)

// BillingHandler serves checkout, entitlement, and subscription lifecycle
// endpoints. Entitlement is always derived server-side; the checkout
// session endpoint only reports display state for the success page.
type BillingHandler struct {
	createCheckoutUseCase createCheckoutSessionUseCase
	getCheckoutUseCase    getCheckoutSessionUseCase
	getEntitlementUseCase getEntitlementUseCase
	cancelUseCase         cancelSubscriptionUseCase
	resumeUseCase         resumeSubscriptionUseCase
	logger                logger.Interface
}

func NewBillingHandler(
	createCheckoutUC createCheckoutSessionUseCase,
	getCheckoutUC getCheckoutSessionUseCase,
	getEntitlementUC getEntitlementUseCase,
	cancelUC cancelSubscriptionUseCase,
	resumeUC resumeSubscriptionUseCase,
	logger logger.Interface,
) *BillingHandler {
	return &BillingHandler{
		createCheckoutUseCase: createCheckoutUC,
		getCheckoutUseCase:    getCheckoutUC,
		getEntitlementUseCase: getEntitlementUC,
		cancelUseCase:         cancelUC,
		resumeUseCase:         resumeUC,
		logger:                logger,
	}
}

func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	var req billingdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userSID := c.GetString(constants.ContextKeyUserID)

	resp, err := h.createCheckoutUseCase.Execute(c.Request.Context(), billingusecases.CreateCheckoutSessionCommand{
		UserSID: userSID,
		Plan:    req.Plan,
	})
	if err != nil {
		h.logger.Errorw("failed to create checkout session", "error", err, "user_sid", userSID, "plan", req.Plan)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *BillingHandler) GetCheckoutSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "session ID is required")
		return
	}

	resp, err := h.getCheckoutUseCase.Execute(c.Request.Context(), billingusecases.GetCheckoutSessionCommand{
		SessionID: sessionID,
	})
	if err != nil {
		h.logger.Warnw("failed to get checkout session", "error", err, "session_id", sessionID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *BillingHandler) GetEntitlement(c *gin.Context) {
	userSID := c.GetString(constants.ContextKeyUserID)

	resp, err := h.getEntitlementUseCase.Execute(c.Request.Context(), billingusecases.GetEntitlementCommand{
		UserSID: userSID,
	})
	if err != nil {
		h.logger.Errorw("failed to get entitlement", "error", err, "user_sid", userSID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *BillingHandler) CancelSubscription(c *gin.Context) {
	userSID := c.GetString(constants.ContextKeyUserID)

	resp, err := h.cancelUseCase.Execute(c.Request.Context(), billingusecases.CancelSubscriptionCommand{
		UserSID: userSID,
	})
	if err != nil {
		h.logger.Warnw("failed to cancel subscription", "error", err, "user_sid", userSID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "subscription will end at the period boundary", resp)
}

func (h *BillingHandler) ResumeSubscription(c *gin.Context) {
	userSID := c.GetString(constants.ContextKeyUserID)

	resp, err := h.resumeUseCase.Execute(c.Request.Context(), billingusecases.ResumeSubscriptionCommand{
		UserSID: userSID,
	})
	if err != nil {
		h.logger.Warnw("failed to resume subscription", "error", err, "user_sid", userSID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "subscription resumed", resp)
}
