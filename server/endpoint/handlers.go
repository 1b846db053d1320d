package endpoint

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medbotlabs/medscribe/audio"
	"github.com/medbotlabs/medscribe/clinical"
	"github.com/medbotlabs/medscribe/diarization"
	"github.com/medbotlabs/medscribe/errors"
	"github.com/medbotlabs/medscribe/logger"
	"github.com/medbotlabs/medscribe/observability"
	"github.com/medbotlabs/medscribe/transcription"
)

// Options carries the collaborators handlers need. Diarizer and Generator
// are optional capabilities; when absent the corresponding endpoints answer
// with the matching error instead of being unregistered, so clients get a
// clear reason rather than a 404.
type Options struct {
	Log          *logger.Logger
	Store        *audio.TempStore
	Transcoder   *audio.Transcoder
	Transcriber  transcription.Provider
	Diarizer     diarization.Provider
	Generator    *clinical.Generator
	Metrics      *observability.Metrics
	WhisperModel string
}

// Handlers holds the API handler set.
type Handlers struct {
	opts Options
	log  *logger.Logger
}

// New creates the handler set.
func New(opts Options) *Handlers {
	log := opts.Log
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Handlers{opts: opts, log: log.WithComponent("endpoint")}
}

// Register mounts all routes on the engine.
func (h *Handlers) Register(e *gin.Engine) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.POST("/transcribe", h.Transcribe)
	e.POST("/transcribe/simple", h.TranscribeSimple)
	e.POST("/transcribe/diarize", h.TranscribeDiarize)
	e.POST("/generate-clinical-note", h.GenerateClinicalNote)
}

// stageUpload validates the multipart upload and writes it to the temp
// store. The returned cleanup must be deferred by the caller; it is safe to
// call even when staging partially failed.
func (h *Handlers) stageUpload(c *gin.Context) (path, filename string, cleanup func(), err error) {
	cleanup = func() {}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", "", cleanup, errors.InvalidInput("Audio file is required (multipart field 'file')")
	}
	filename = fileHeader.Filename

	if err := audio.ValidateFormat(filename); err != nil {
		return "", filename, cleanup, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", filename, cleanup, errors.Storage("open uploaded file", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", filename, cleanup, errors.Storage("read uploaded file", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path, err = h.opts.Store.Save(content, ext)
	if err != nil {
		return "", filename, cleanup, err
	}

	h.log.Debug("upload staged", logger.Fields("filename", filename, "bytes", len(content)))
	return path, filename, func() { h.opts.Store.Remove(path) }, nil
}

// recordOp reports an operation outcome to the metrics pipeline, if one is
// configured.
func (h *Handlers) recordOp(ctx context.Context, op string, start time.Time, err error) {
	if h.opts.Metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	h.opts.Metrics.RecordOperation(ctx, "medscribe", op, status, time.Since(start))
}
