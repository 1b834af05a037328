package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/deepanshu-striker/inter-chat/internal/core"
	"github.com/deepanshu-striker/inter-chat/internal/models"
	"github.com/deepanshu-striker/inter-chat/internal/speech"
)

// SpeechHandler handles the transcription and synthesis endpoints.
type SpeechHandler struct {
	transcription core.TranscriptionService
	synthesizer   speech.Synthesizer
	quota         core.QuotaService
	// meterTranscription charges one response unit per successful
	// transcript when enabled.
	meterTranscription bool
	logger             *zap.Logger
}

// NewSpeechHandler creates a new SpeechHandler.
func NewSpeechHandler(
	transcription core.TranscriptionService,
	synthesizer speech.Synthesizer,
	quota core.QuotaService,
	meterTranscription bool,
	logger *zap.Logger,
) *SpeechHandler {
	return &SpeechHandler{
		transcription:      transcription,
		synthesizer:        synthesizer,
		quota:              quota,
		meterTranscription: meterTranscription,
		logger:             logger,
	}
}

// Transcribe handles POST /transcribe. The route sits behind the Firebase
// auth middleware, which rejects requests without a valid identity with 401
// and puts the UID in the context. The upload is a multipart "file" field.
func (h *SpeechHandler) Transcribe(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User identity not found in request context"})
		return
	}

	var account *models.User
	if h.meterTranscription {
		acct, err := h.quota.Check(c.Request.Context(), userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		account = acct
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing audio upload", Details: err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unreadable audio upload", Details: err.Error()})
		return
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unreadable audio upload", Details: err.Error()})
		return
	}

	transcript, err := h.transcription.Transcribe(c.Request.Context(), audio, fileHeader.Filename)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if account != nil {
		if _, err := h.quota.Commit(c.Request.Context(), account); err != nil {
			h.logger.Warn("failed to record transcription consumption",
				zap.String("userID", userID),
				zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, models.TranscribeResponse{Transcript: transcript})
}

// Synthesize handles POST /synthesize and returns raw MP3 bytes. Empty text
// yields an empty audio body rather than an error.
func (h *SpeechHandler) Synthesize(c *gin.Context) {
	var req models.SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	if req.Text == "" {
		c.Data(http.StatusOK, "audio/mpeg", []byte{})
		return
	}

	audio, err := h.synthesizer.Synthesize(c.Request.Context(), req.Text, req.VoiceID)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Speech synthesis failed", Details: err.Error()})
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
