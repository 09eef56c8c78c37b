package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/config"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// ElevenLabsClient implements Transcriber against the ElevenLabs
// speech-to-text API.
type ElevenLabsClient struct {
	apiKey  string
	baseURL string
	modelID string
	client  *http.Client
	logger  logger.Interface
}

type sttResponse struct {
	Text string `json:"text"`
}

type sttError struct {
	Detail struct {
		Message string `json:"message"`
	} `json:"detail"`
}

// NewElevenLabsClient creates a new ElevenLabs speech-to-text client
func NewElevenLabsClient(cfg config.TranscriptionConfig, log logger.Interface) *ElevenLabsClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &ElevenLabsClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		modelID: cfg.ModelID,
		client:  &http.Client{Timeout: timeout},
		logger:  log,
	}
}

// Transcribe uploads the audio and returns the transcript text
func (c *ElevenLabsClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("model_id", c.modelID); err != nil {
		return "", fmt.Errorf("failed to write model_id field: %w", err)
	}

	part, err := writer.CreateFormFile("file", fileNameForMime(mimeType))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/speech-to-text", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp sttError
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Detail.Message != "" {
			return "", fmt.Errorf("transcription API error (%d): %s", resp.StatusCode, errResp.Detail.Message)
		}
		return "", fmt.Errorf("transcription API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var sttResp sttResponse
	if err := json.Unmarshal(respBody, &sttResp); err != nil {
		return "", fmt.Errorf("failed to parse transcription response: %w", err)
	}

	c.logger.Debugw("audio transcribed", "chars", len(sttResp.Text))
	return sttResp.Text, nil
}

func fileNameForMime(mimeType string) string {
	switch mimeType {
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return "audio.m4a"
	case "audio/mpeg", "audio/mp3":
		return "audio.mp3"
	case "audio/wav", "audio/x-wav":
		return "audio.wav"
	case "audio/webm":
		return "audio.webm"
	case "audio/ogg":
		return "audio.ogg"
	default:
		return "audio.bin"
	}
}
