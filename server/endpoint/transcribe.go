package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medbotlabs/medscribe/errors"
	"github.com/medbotlabs/medscribe/logger"
	"github.com/medbotlabs/medscribe/server"
	"github.com/medbotlabs/medscribe/transcription"
)

// Transcribe handles POST /transcribe: stage the upload, run ASR, return
// the full transcription with time-aligned segments.
func (h *Handlers) Transcribe(c *gin.Context) {
	path, filename, cleanup, err := h.stageUpload(c)
	defer cleanup()
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	start := time.Now()
	resp, err := h.opts.Transcriber.Transcribe(ctx, transcription.TranscriptionRequest{AudioPath: path})
	h.recordOp(ctx, "transcription", start, err)
	if err != nil {
		if !errors.IsAppError(err) {
			err = errors.Transcription(err)
		}
		server.RespondWithError(c, err)
		return
	}

	h.log.Info("transcription complete", logger.Fields(
		"filename", filename,
		"language", resp.Language,
		"segments", len(resp.Segments),
	))

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"filename":      filename,
		"transcription": resp.Text,
		"language":      resp.Language,
		"segments":      resp.Segments,
	})
}

// TranscribeSimple handles POST /transcribe/simple: same pipeline, text-only
// response.
func (h *Handlers) TranscribeSimple(c *gin.Context) {
	path, _, cleanup, err := h.stageUpload(c)
	defer cleanup()
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	start := time.Now()
	resp, err := h.opts.Transcriber.Transcribe(ctx, transcription.TranscriptionRequest{AudioPath: path})
	h.recordOp(ctx, "transcription", start, err)
	if err != nil {
		if !errors.IsAppError(err) {
			err = errors.Transcription(err)
		}
		server.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": resp.Text})
}
