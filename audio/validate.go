package audio

import (
	"path/filepath"
	"strings"

	"github.com/medbotlabs/medscribe/errors"
)

// SupportedExtensions lists the upload formats the service accepts, in the
// order they are reported back to clients on rejection.
var SupportedExtensions = []string{".mp3", ".mp4", ".mpeg", ".mpga", ".m4a", ".wav", ".webm", ".ogg"}

var supportedSet = func() map[string]bool {
	m := make(map[string]bool, len(SupportedExtensions))
	for _, ext := range SupportedExtensions {
		m[ext] = true
	}
	return m
}()

// ValidateFormat checks the filename's extension against the allow-list.
// Comparison is case-insensitive; a missing or unsupported extension yields
// an UNSUPPORTED_FORMAT error.
func ValidateFormat(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedSet[ext] {
		return errors.UnsupportedFormat(ext, SupportedExtensions)
	}
	return nil
}
