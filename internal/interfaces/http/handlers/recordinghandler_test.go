package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordingdto "github.com/dreamtalk-inc/dreamtalk/internal/application/recording/dto"
	recordingusecases "github.com/dreamtalk-inc/dreamtalk/internal/application/recording/usecases"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/handlers/testutil"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
)

type mockSaveRecordingUC struct {
	result *recordingdto.RecordingResponse
	err    error
	gotCmd recordingusecases.SaveRecordingCommand
}

func (m *mockSaveRecordingUC) Execute(ctx context.Context, cmd recordingusecases.SaveRecordingCommand) (*recordingdto.RecordingResponse, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockListRecordingsUC struct {
	result *recordingdto.ListRecordingsResponse
	err    error
	gotCmd recordingusecases.ListRecordingsCommand
}

func (m *mockListRecordingsUC) Execute(ctx context.Context, cmd recordingusecases.ListRecordingsCommand) (*recordingdto.ListRecordingsResponse, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockGetRecordingUC struct {
	result *recordingdto.RecordingResponse
	err    error
}

func (m *mockGetRecordingUC) Execute(ctx context.Context, cmd recordingusecases.GetRecordingCommand) (*recordingdto.RecordingResponse, error) {
	return m.result, m.err
}

type mockDeleteRecordingUC struct {
	err    error
	gotCmd recordingusecases.DeleteRecordingCommand
}

func (m *mockDeleteRecordingUC) Execute(ctx context.Context, cmd recordingusecases.DeleteRecordingCommand) error {
	m.gotCmd = cmd
	return m.err
}

func newTestRecordingHandler(
	saveUC saveRecordingUseCase,
	listUC listRecordingsUseCase,
	getUC getRecordingUseCase,
	deleteUC deleteRecordingUseCase,
) *RecordingHandler {
	return NewRecordingHandler(saveUC, listUC, getUC, deleteUC, testutil.NewMockLogger())
}

// newMultipartContext builds a multipart upload request with an audio part
// and optional extra form fields.
func newMultipartContext(t *testing.T, fileName string, audio []byte, fields map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if fileName != "" {
		part, err := mw.CreateFormFile("audio", fileName)
		require.NoError(t, err)
		_, err = part.Write(audio)
		require.NoError(t, err)
	}

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recordings", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func sampleRecordingResponse() *recordingdto.RecordingResponse {
	return &recordingdto.RecordingResponse{
		ID:              "rec_xK9mP2vL3nQa",
		Title:           "shower_idea",
		AudioURL:        "https://cdn.example.com/audio/abc",
		MimeType:        "audio/mp4",
		DurationSeconds: 30,
		CreatedAt:       time.Now().UTC(),
	}
}

func TestSaveRecordingHandler_UploadsAudio(t *testing.T) {
	saveUC := &mockSaveRecordingUC{result: sampleRecordingResponse()}
	h := newTestRecordingHandler(saveUC, nil, nil, nil)

	c, w := newMultipartContext(t, "shower_idea.m4a", []byte("fake-audio"), map[string]string{
		"duration_seconds": "30",
		"category_id":      "cat_xK9mP2vL3nQa",
	})
	testutil.SetAuthContext(c, "usrtest000001")

	h.SaveRecording(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "usrtest000001", saveUC.gotCmd.UserSID)
	assert.Equal(t, "shower_idea.m4a", saveUC.gotCmd.FileName)
	assert.Equal(t, []byte("fake-audio"), saveUC.gotCmd.Audio)
	assert.Equal(t, 30, saveUC.gotCmd.DurationSeconds)
	assert.Equal(t, "xK9mP2vL3nQa", saveUC.gotCmd.CategorySID)
}

func TestSaveRecordingHandler_MissingAudio(t *testing.T) {
	saveUC := &mockSaveRecordingUC{}
	h := newTestRecordingHandler(saveUC, nil, nil, nil)

	c, w := newMultipartContext(t, "", nil, map[string]string{"duration_seconds": "30"})
	testutil.SetAuthContext(c, "usrtest000001")

	h.SaveRecording(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveRecordingHandler_InvalidCategoryID(t *testing.T) {
	h := newTestRecordingHandler(&mockSaveRecordingUC{}, nil, nil, nil)

	c, w := newMultipartContext(t, "dream.m4a", []byte("audio"), map[string]string{
		"category_id": "not-a-category-id",
	})
	testutil.SetAuthContext(c, "usrtest000001")

	h.SaveRecording(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveRecordingHandler_FreeCapExceeded(t *testing.T) {
	saveUC := &mockSaveRecordingUC{err: recording.ErrFreeRecordingTooLong}
	h := newTestRecordingHandler(saveUC, nil, nil, nil)

	c, w := newMultipartContext(t, "long.m4a", []byte("audio"), map[string]string{
		"duration_seconds": "500",
	})
	testutil.SetAuthContext(c, "usrtest000001")

	h.SaveRecording(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListRecordingsHandler_ParsesQuery(t *testing.T) {
	listUC := &mockListRecordingsUC{
		result: &recordingdto.ListRecordingsResponse{
			Recordings: []*recordingdto.RecordingResponse{sampleRecordingResponse()},
			Total:      1,
			Page:       2,
			PageSize:   10,
		},
	}
	h := newTestRecordingHandler(nil, listUC, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/recordings", nil)
	testutil.SetAuthContext(c, "usrtest000001")
	testutil.SetQueryParams(c, map[string]string{
		"page":        "2",
		"page_size":   "10",
		"category_id": "cat_xK9mP2vL3nQa",
	})

	h.ListRecordings(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, listUC.gotCmd.Page)
	assert.Equal(t, 10, listUC.gotCmd.PageSize)
	assert.Equal(t, "xK9mP2vL3nQa", listUC.gotCmd.CategorySID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, string(resp.Data), `"total":1`)
}

func TestGetRecordingHandler_ReturnsRecording(t *testing.T) {
	getUC := &mockGetRecordingUC{result: sampleRecordingResponse()}
	h := newTestRecordingHandler(nil, nil, getUC, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/recordings/rec_xK9mP2vL3nQa", nil)
	testutil.SetAuthContext(c, "usrtest000001")
	testutil.SetURLParam(c, "id", "rec_xK9mP2vL3nQa")

	h.GetRecording(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetRecordingHandler_WrongPrefix(t *testing.T) {
	h := newTestRecordingHandler(nil, nil, &mockGetRecordingUC{}, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/recordings/cat_xK9mP2vL3nQa", nil)
	testutil.SetAuthContext(c, "usrtest000001")
	testutil.SetURLParam(c, "id", "cat_xK9mP2vL3nQa")

	h.GetRecording(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecordingHandler_NotFound(t *testing.T) {
	getUC := &mockGetRecordingUC{err: errors.NewNotFoundError("recording not found")}
	h := newTestRecordingHandler(nil, nil, getUC, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/recordings/rec_xK9mP2vL3nQa", nil)
	testutil.SetAuthContext(c, "usrtest000001")
	testutil.SetURLParam(c, "id", "rec_xK9mP2vL3nQa")

	h.GetRecording(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRecordingHandler_NoContent(t *testing.T) {
	deleteUC := &mockDeleteRecordingUC{}
	h := newTestRecordingHandler(nil, nil, nil, deleteUC)

	c, w := testutil.NewTestContext(http.MethodDelete, "/recordings/rec_xK9mP2vL3nQa", nil)
	testutil.SetAuthContext(c, "usrtest000001")
	testutil.SetURLParam(c, "id", "rec_xK9mP2vL3nQa")

	h.DeleteRecording(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "xK9mP2vL3nQa", deleteUC.gotCmd.RecordingSID)
}
