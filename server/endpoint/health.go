package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medbotlabs/medscribe/version"
)

// Root is the original health check: a fixed banner with the loaded ASR
// model. Clinic frontends poll it to decide whether recording can start.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":       "MedScribe API is running",
		"status":        "healthy",
		"whisper_model": h.opts.WhisperModel,
	})
}

// Health reports per-capability availability: transcription is required,
// diarization and note generation are optional. The endpoint stays 200 as
// long as transcription works; optional capabilities only flip the overall
// status to degraded.
func (h *Handlers) Health(c *gin.Context) {
	ctx := c.Request.Context()

	capabilities := gin.H{
		"transcription": h.opts.Transcriber != nil && h.opts.Transcriber.IsAvailable(ctx),
		"diarization":   h.opts.Diarizer != nil && h.opts.Diarizer.IsAvailable(ctx),
		"clinical_note": h.opts.Generator != nil,
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if capabilities["transcription"] != true {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else if capabilities["diarization"] != true || capabilities["clinical_note"] != true {
		status = "degraded"
	}

	c.JSON(httpStatus, gin.H{
		"status":       status,
		"service":      "medscribe",
		"version":      version.Version,
		"capabilities": capabilities,
	})
}
