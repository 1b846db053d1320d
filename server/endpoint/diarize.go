package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/medbotlabs/medscribe/alignment"
	"github.com/medbotlabs/medscribe/diarization"
	"github.com/medbotlabs/medscribe/errors"
	"github.com/medbotlabs/medscribe/logger"
	"github.com/medbotlabs/medscribe/server"
	"github.com/medbotlabs/medscribe/transcription"
)

// TranscribeDiarize handles POST /transcribe/diarize: stage the upload,
// transcode to mono 16 kHz WAV, run ASR and diarization concurrently, then
// align segments to speakers. ASR reads the original upload; diarization
// needs the converted WAV, so a failed transcode aborts before either model
// runs.
func (h *Handlers) TranscribeDiarize(c *gin.Context) {
	if h.opts.Diarizer == nil {
		server.RespondWithError(c, errors.ServiceUnavailable(
			"Speaker diarization",
			"Please set HUGGINGFACE_TOKEN environment variable."))
		return
	}

	path, filename, cleanup, err := h.stageUpload(c)
	defer cleanup()
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()

	wavPath, err := h.opts.Transcoder.ToWAV(ctx, path)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if wavPath != path {
		defer h.opts.Store.Remove(wavPath)
	}

	var (
		asr   *transcription.TranscriptionResponse
		turns *diarization.DiarizationResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		resp, err := h.opts.Transcriber.Transcribe(gctx, transcription.TranscriptionRequest{
			AudioPath:      path,
			WordTimestamps: true,
		})
		h.recordOp(gctx, "transcription", start, err)
		if err != nil {
			if errors.IsAppError(err) {
				return err
			}
			return errors.Transcription(err)
		}
		asr = resp
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		resp, err := h.opts.Diarizer.Diarize(gctx, diarization.DiarizationRequest{AudioPath: wavPath})
		h.recordOp(gctx, "diarization", start, err)
		if err != nil {
			if errors.IsAppError(err) {
				return err
			}
			return errors.Internal(err)
		}
		turns = resp
		return nil
	})
	if err := g.Wait(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	result := alignment.Align(asr.Segments, turns.Turns)

	h.log.Info("diarized transcription complete", logger.Fields(
		"filename", filename,
		"segments", len(result.Segments),
		"num_speakers", result.NumSpeakers,
	))

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"filename":             filename,
		"full_text":            asr.Text,
		"formatted_transcript": result.FormattedTranscript,
		"segments":             result.Segments,
		"num_speakers":         result.NumSpeakers,
		"speakers":             result.Speakers,
	})
}
