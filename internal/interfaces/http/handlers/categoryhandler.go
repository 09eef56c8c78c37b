package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	recordingdto "github.com/dreamtalk-inc/dreamtalk/internal/application/recording/dto"
	recordingusecases "github.com/dreamtalk-inc/dreamtalk/internal/application/recording/usecases"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/id"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/utils"
)

// CategoryHandler serves category listing and user-owned category
// management. The seeded defaults come back from List but reject writes.
type CategoryHandler struct {
	listUseCase   listCategoriesUseCase
	createUseCase createCategoryUseCase
	deleteUseCase deleteCategoryUseCase
	logger        logger.Interface
}

func NewCategoryHandler(
	listUC listCategoriesUseCase,
	createUC createCategoryUseCase,
	deleteUC deleteCategoryUseCase,
	logger logger.Interface,
) *CategoryHandler {
	return &CategoryHandler{
		listUseCase:   listUC,
		createUseCase: createUC,
		deleteUseCase: deleteUC,
		logger:        logger,
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userSID := c.GetString(constants.ContextKeyUserID)

	categories, err := h.listUseCase.Execute(c.Request.Context(), recordingusecases.ListCategoriesCommand{
		UserSID: userSID,
	})
	if err != nil {
		h.logger.Errorw("failed to list categories", "error", err, "user_sid", userSID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"categories": categories})
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req recordingdto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userSID := c.GetString(constants.ContextKeyUserID)

	resp, err := h.createUseCase.Execute(c.Request.Context(), recordingusecases.CreateCategoryCommand{
		UserSID: userSID,
		Name:    req.Name,
	})
	if err != nil {
		h.logger.Warnw("failed to create category", "error", err, "user_sid", userSID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, resp, "category created")
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userSID := c.GetString(constants.ContextKeyUserID)

	prefixed, err := utils.ParseSIDParam(c, "id", id.PrefixCategory, "category")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	categorySID, err := id.ParseCategoryID(prefixed)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), recordingusecases.DeleteCategoryCommand{
		UserSID:     userSID,
		CategorySID: categorySID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
