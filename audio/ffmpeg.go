package audio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/medbotlabs/medscribe/errors"
	"github.com/medbotlabs/medscribe/logger"
	"github.com/medbotlabs/medscribe/process"
	"github.com/medbotlabs/medscribe/resilience"
)

const maxConcurrentTranscodes = 4

// Transcoder converts uploads to the mono 16 kHz WAV the diarization
// pipeline requires. Concurrent ffmpeg runs are capped by a bulkhead so a
// burst of uploads cannot starve the host.
type Transcoder struct {
	binary   string
	bulkhead *resilience.Bulkhead
	log      *logger.Logger
}

// NewTranscoder creates a Transcoder. An empty binary means "ffmpeg"
// resolved via PATH.
func NewTranscoder(binary string, log *logger.Logger) *Transcoder {
	if binary == "" {
		binary = "ffmpeg"
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Transcoder{
		binary: binary,
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "ffmpeg",
			MaxConcurrent: maxConcurrentTranscodes,
			MaxWait:       30 * time.Second,
		}),
		log: log.WithComponent("audio.transcoder"),
	}
}

// ToWAV transcodes src into a mono 16 kHz WAV next to it and returns the
// new path. Files that are already .wav pass through untouched. A failed
// transcode is a TRANSCODE_ERROR; callers must abort diarization on it.
func (t *Transcoder) ToWAV(ctx context.Context, src string) (string, error) {
	if strings.EqualFold(filepath.Ext(src), ".wav") {
		return src, nil
	}

	dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".wav"
	result, err := resilience.ExecuteWithResult(t.bulkhead, ctx, func() (*process.Result, error) {
		return process.Run(ctx, process.Command{
			Binary: t.binary,
			Args:   []string{"-y", "-i", src, "-ac", "1", "-ar", "16000", dst},
		})
	})
	if err != nil {
		// ffmpeg may die after creating the output; a partial WAV must not
		// outlive the request.
		_ = os.Remove(dst)
		if result != nil && len(result.Stderr) > 0 {
			t.log.Error("ffmpeg transcode failed", logger.Fields(
				"src", src,
				"exit_code", result.ExitCode,
				"stderr", tail(string(result.Stderr), 512),
			))
		}
		return "", errors.Transcode(err)
	}

	t.log.Debug("transcoded upload to wav", logger.Fields("src", src, "dst", dst, "duration", result.Duration.String()))
	return dst, nil
}

// tail keeps the last n bytes of s; ffmpeg puts the actual failure reason
// at the end of a long banner.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
