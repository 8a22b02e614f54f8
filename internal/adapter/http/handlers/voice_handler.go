package handlers

import (
	"errors"
	"io"
	"net/http"

	response "evergreen_estimator/internal/adapter/http/dto/response"
	"evergreen_estimator/internal/usecase"
	"evergreen_estimator/pkg"

	"github.com/gin-gonic/gin"
)

// maxClipBytes bounds the uploaded clip; anything bigger than a few minutes
// of compressed audio is not a dictation.
const maxClipBytes = 15 << 20

// VoiceHandler accepts a recorded audio clip and applies the parsed result
// to the estimate as one atomic batch.
type VoiceHandler struct {
	usecase usecase.IVoiceUseCase
}

func NewVoiceHandler(uc usecase.IVoiceUseCase) *VoiceHandler {
	return &VoiceHandler{usecase: uc}
}

// ProcessClip reads the multipart "audio" file and runs the voice pipeline.
func (h *VoiceHandler) ProcessClip(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("MISSING_AUDIO", "Multipart field 'audio' is required", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	defer file.Close()

	if header.Size > maxClipBytes {
		appErr := pkg.NewDomainErrorSimple("AUDIO_TOO_LARGE", "Audio clip exceeds the size limit", http.StatusRequestEntityTooLarge)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, maxClipBytes))
	if err != nil {
		appErr := pkg.NewDomainError("AUDIO_READ_FAILED", "Failed reading audio clip", err, http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	outcome, err := h.usecase.ProcessClip(c.Request.Context(), c.Param("id"), audio, header.Header.Get("Content-Type"))
	if err != nil {
		appErr := mapVoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromVoiceOutcome(outcome))
}

func mapVoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrEmptyAudio):
		return pkg.NewDomainErrorSimple("EMPTY_AUDIO", "Audio clip is empty", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNoVoiceContent):
		return pkg.NewDomainErrorSimple("NO_VOICE_CONTENT", "No relevant information found in the clip", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrVoiceServiceFailure):
		return pkg.NewDomainError("VOICE_SERVICE_FAILURE", "Voice transcription or parsing failed", err, http.StatusBadGateway)
	default:
		return mapEstimateError(err)
	}
}
