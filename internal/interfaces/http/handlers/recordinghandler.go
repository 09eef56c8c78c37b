package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	recordingusecases "github.com/dreamtalk-inc/dreamtalk/internal/application/recording/usecases"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/id"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/utils"
)

// maxAudioUploadBytes bounds the uploaded audio file size.
const maxAudioUploadBytes = 64 << 20

// RecordingHandler serves voice memo upload, listing, and deletion.
type RecordingHandler struct {
	saveUseCase   saveRecordingUseCase
	listUseCase   listRecordingsUseCase
	getUseCase    getRecordingUseCase
	deleteUseCase deleteRecordingUseCase
	logger        logger.Interface
}

func NewRecordingHandler(
	saveUC saveRecordingUseCase,
	listUC listRecordingsUseCase,
	getUC getRecordingUseCase,
	deleteUC deleteRecordingUseCase,
	logger logger.Interface,
) *RecordingHandler {
	return &RecordingHandler{
		saveUseCase:   saveUC,
		listUseCase:   listUC,
		getUseCase:    getUC,
		deleteUseCase: deleteUC,
		logger:        logger,
	}
}

// SaveRecording accepts a multipart form with the audio file plus optional
// duration_seconds and category_id fields.
func (h *RecordingHandler) SaveRecording(c *gin.Context) {
	userSID := c.GetString(constants.ContextKeyUserID)

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "audio file is required")
		return
	}
	if fileHeader.Size > maxAudioUploadBytes {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "audio file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read audio file")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioUploadBytes+1))
	if err != nil {
		h.logger.Errorw("failed to read uploaded file", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read audio file")
		return
	}
	if len(audio) > maxAudioUploadBytes {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "audio file is too large")
		return
	}

	durationSeconds := 0
	if v := c.PostForm("duration_seconds"); v != "" {
		durationSeconds, err = strconv.Atoi(v)
		if err != nil || durationSeconds < 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid duration_seconds")
			return
		}
	}

	categorySID := ""
	if v := c.PostForm("category_id"); v != "" {
		categorySID, err = id.ParseCategoryID(v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid category ID format")
			return
		}
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	cmd := recordingusecases.SaveRecordingCommand{
		UserSID:         userSID,
		FileName:        fileHeader.Filename,
		MimeType:        mimeType,
		Audio:           audio,
		DurationSeconds: durationSeconds,
		CategorySID:     categorySID,
	}

	resp, err := h.saveUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("failed to save recording", "error", err, "user_sid", userSID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, resp, "recording saved")
}

func (h *RecordingHandler) ListRecordings(c *gin.Context) {
	userSID := c.GetString(constants.ContextKeyUserID)
	pagination := utils.ParsePagination(c)

	categorySID := ""
	if v := c.Query("category_id"); v != "" {
		parsed, err := id.ParseCategoryID(v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid category ID format")
			return
		}
		categorySID = parsed
	}

	resp, err := h.listUseCase.Execute(c.Request.Context(), recordingusecases.ListRecordingsCommand{
		UserSID:     userSID,
		CategorySID: categorySID,
		Page:        pagination.Page,
		PageSize:    pagination.PageSize,
	})
	if err != nil {
		h.logger.Errorw("failed to list recordings", "error", err, "user_sid", userSID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, resp.Recordings, resp.Total, resp.Page, resp.PageSize)
}

func (h *RecordingHandler) GetRecording(c *gin.Context) {
	userSID := c.GetString(constants.ContextKeyUserID)

	recordingSID, err := recordingSIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := h.getUseCase.Execute(c.Request.Context(), recordingusecases.GetRecordingCommand{
		UserSID:      userSID,
		RecordingSID: recordingSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *RecordingHandler) DeleteRecording(c *gin.Context) {
	userSID := c.GetString(constants.ContextKeyUserID)

	recordingSID, err := recordingSIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), recordingusecases.DeleteRecordingCommand{
		UserSID:      userSID,
		RecordingSID: recordingSID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func recordingSIDParam(c *gin.Context) (string, error) {
	prefixed, err := utils.ParseSIDParam(c, "id", id.PrefixRecording, "recording")
	if err != nil {
		return "", err
	}
	return id.ParseRecordingID(prefixed)
}
