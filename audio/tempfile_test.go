package audio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/medbotlabs/medscribe/errors"
	"github.com/medbotlabs/medscribe/logger"
)

func TestTempStore_Save_Success(t *testing.T) {
	store := NewTempStore(t.TempDir(), logger.NewDefault("test"))

	path, err := store.Save([]byte("audio bytes"), ".mp3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Remove(path)

	if !strings.HasSuffix(path, ".mp3") {
		t.Errorf("expected .mp3 suffix, got %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "audio bytes" {
		t.Errorf("saved content mismatch: %q", data)
	}
}

func TestTempStore_Save_UniquePaths(t *testing.T) {
	store := NewTempStore(t.TempDir(), logger.NewDefault("test"))

	a, err := store.Save([]byte("x"), ".wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := store.Save([]byte("x"), ".wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Errorf("expected unique paths, both were %s", a)
	}
}

func TestTempStore_Save_EmptyPayload(t *testing.T) {
	store := NewTempStore(t.TempDir(), logger.NewDefault("test"))

	_, err := store.Save(nil, ".mp3")
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeEmptyUpload {
		t.Fatalf("expected EMPTY_UPLOAD, got %v", err)
	}
}

func TestTempStore_Remove_DeletesFile(t *testing.T) {
	store := NewTempStore(t.TempDir(), logger.NewDefault("test"))

	path, err := store.Save([]byte("x"), ".wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.Remove(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to be gone, stat err: %v", err)
	}
}

func TestTempStore_Remove_MissingFileIsQuiet(t *testing.T) {
	store := NewTempStore(t.TempDir(), logger.NewDefault("test"))
	store.Remove(filepath.Join(t.TempDir(), "never-existed.wav"))
	store.Remove("")
}
