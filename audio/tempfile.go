package audio

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/medbotlabs/medscribe/errors"
	"github.com/medbotlabs/medscribe/logger"
)

// TempStore stages uploaded audio on local disk for the duration of one
// request. Every Save must be paired with a deferred Remove.
type TempStore struct {
	dir string
	log *logger.Logger
}

// NewTempStore creates a store writing under dir. An empty dir means
// os.TempDir.
func NewTempStore(dir string, log *logger.Logger) *TempStore {
	if dir == "" {
		dir = os.TempDir()
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &TempStore{dir: dir, log: log.WithComponent("audio.tempstore")}
}

// Save writes the payload to a uniquely named file with the given suffix
// (e.g. ".mp3") and returns its path. Empty payloads are rejected before
// touching disk; a write that leaves no readable, non-empty file behind is
// a storage error.
func (s *TempStore) Save(data []byte, suffix string) (string, error) {
	if len(data) == 0 {
		return "", errors.EmptyUpload()
	}

	path := filepath.Join(s.dir, uuid.NewString()+suffix)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", errors.Storage("write upload to temp file", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Storage("verify temp file", err)
	}
	if info.Size() == 0 {
		_ = os.Remove(path)
		return "", errors.Storage("temp file is empty after write", nil)
	}

	return path, nil
}

// Remove deletes a staged file. Failures are logged, not returned: cleanup
// must never mask the request's real outcome.
func (s *TempStore) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove temp audio file", logger.Fields("path", path, "error", err.Error()))
	}
}
