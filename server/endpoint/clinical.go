package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medbotlabs/medscribe/errors"
	"github.com/medbotlabs/medscribe/server"
)

type clinicalNoteRequest struct {
	Transcript          string `json:"transcript"`
	FormattedTranscript string `json:"formatted_transcript"`
}

// GenerateClinicalNote handles POST /generate-clinical-note: turn a
// transcript into a structured SOAP note. The speaker-labeled transcript is
// preferred when the client supplies both.
func (h *Handlers) GenerateClinicalNote(c *gin.Context) {
	if h.opts.Generator == nil {
		server.RespondWithError(c, errors.MissingCredential("DO_AI_API_KEY"))
		return
	}

	var req clinicalNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidInput("Request body must be JSON with a transcript"))
		return
	}

	ctx := c.Request.Context()
	start := time.Now()
	note, err := h.opts.Generator.Generate(ctx, req.Transcript, req.FormattedTranscript)
	h.recordOp(ctx, "clinical_note", start, err)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"clinical_note": note.Content,
		"model":         note.Model,
	})
}
