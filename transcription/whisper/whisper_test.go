package whisper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/medbotlabs/medscribe/transcription"
)

func newTestProvider(t *testing.T, cfg Config) *Provider {
	t.Helper()
	p, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.wav")
	if err := os.WriteFile(path, []byte("RIFFfake"), 0o644); err != nil {
		t.Fatalf("write temp audio: %v", err)
	}
	return path
}

func TestTranscribe_Success(t *testing.T) {
	var gotModel, gotFP16, gotWordTS string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotFP16 = r.FormValue("fp16")
		gotWordTS = r.FormValue("word_timestamps")
		json.NewEncoder(w).Encode(map[string]any{
			"text":     "hello there",
			"language": "en",
			"segments": []map[string]any{
				{"start": 0.0, "end": 2.0, "text": " hello"},
				{"start": 2.0, "end": 4.0, "text": " there"},
			},
		})
	}))
	defer srv.Close()

	p := newTestProvider(t, Config{URL: srv.URL})
	resp, err := p.Transcribe(context.Background(), newRequest(writeTempAudio(t), true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "hello there" {
		t.Errorf("expected full text, got %q", resp.Text)
	}
	if resp.Language != "en" {
		t.Errorf("expected language en, got %q", resp.Language)
	}
	if len(resp.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(resp.Segments))
	}
	if resp.Segments[1].Start != 2.0 || resp.Segments[1].End != 4.0 {
		t.Errorf("unexpected segment timing: %+v", resp.Segments[1])
	}
	if gotModel != "base" {
		t.Errorf("expected default model base, got %q", gotModel)
	}
	if gotFP16 != "false" {
		t.Errorf("expected fp16=false always sent, got %q", gotFP16)
	}
	if gotWordTS != "true" {
		t.Errorf("expected word_timestamps=true, got %q", gotWordTS)
	}
}

func TestTranscribe_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"text": "  ", "segments": []any{}})
	}))
	defer srv.Close()

	p := newTestProvider(t, Config{URL: srv.URL})
	if _, err := p.Transcribe(context.Background(), newRequest(writeTempAudio(t), false)); err == nil {
		t.Error("expected error for empty transcription result")
	}
}

func TestTranscribe_SidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestProvider(t, Config{URL: srv.URL})
	if _, err := p.Transcribe(context.Background(), newRequest(writeTempAudio(t), false)); err == nil {
		t.Error("expected error for sidecar failure")
	}
}

func TestTranscribe_MissingFile(t *testing.T) {
	p := newTestProvider(t, Config{URL: "http://localhost:1"})
	if _, err := p.Transcribe(context.Background(), newRequest("/nonexistent/audio.wav", false)); err == nil {
		t.Error("expected error for missing audio file")
	}
}

func TestTranscribe_MissingLanguageDefaultsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"text": "hi", "segments": []any{}})
	}))
	defer srv.Close()

	p := newTestProvider(t, Config{URL: srv.URL})
	resp, err := p.Transcribe(context.Background(), newRequest(writeTempAudio(t), false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Language != "unknown" {
		t.Errorf("expected language unknown, got %q", resp.Language)
	}
}

func TestTranscribe_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestProvider(t, Config{URL: srv.URL})
	audioPath := writeTempAudio(t)

	for i := 0; i < 5; i++ {
		if _, err := p.Transcribe(context.Background(), newRequest(audioPath, false)); err == nil {
			t.Fatalf("call %d: expected error from failing sidecar", i)
		}
	}
	if hits != 5 {
		t.Fatalf("expected 5 sidecar calls before the circuit opens, got %d", hits)
	}

	_, err := p.Transcribe(context.Background(), newRequest(audioPath, false))
	if err == nil || !strings.Contains(err.Error(), "circuit breaker is open") {
		t.Fatalf("expected fail-fast circuit error, got %v", err)
	}
	if hits != 5 {
		t.Errorf("open circuit must not reach the sidecar, got %d calls", hits)
	}
}

func TestIsAvailable_HealthStates(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer healthy.Close()

	p := newTestProvider(t, Config{URL: healthy.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("expected available for healthy sidecar")
	}

	down := newTestProvider(t, Config{URL: "http://localhost:1"})
	if down.IsAvailable(context.Background()) {
		t.Error("expected unavailable for unreachable sidecar")
	}
}

func newRequest(path string, wordTS bool) transcription.TranscriptionRequest {
	return transcription.TranscriptionRequest{AudioPath: path, WordTimestamps: wordTS}
}
