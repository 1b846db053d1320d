// Package clinical turns a consultation transcript into a structured SOAP
// note via an LLM provider.
package clinical

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medbotlabs/medscribe/errors"
	"github.com/medbotlabs/medscribe/llm"
	"github.com/medbotlabs/medscribe/logger"
)

const (
	noteMaxTokens   = 2000
	noteTemperature = 0.3
)

// Note is a generated clinical note.
type Note struct {
	Content string
	Model   string
}

// Generator produces SOAP notes from consultation transcripts.
type Generator struct {
	provider llm.Provider
	log      *logger.Logger
}

// NewGenerator creates a Generator backed by the given LLM provider.
func NewGenerator(p llm.Provider, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Generator{provider: p, log: log.WithComponent("clinical")}
}

// Generate produces a clinical note. The speaker-labeled transcript is
// preferred over the plain one when both are present; at least one must be
// non-empty.
func (g *Generator) Generate(ctx context.Context, transcript, formattedTranscript string) (*Note, error) {
	input := formattedTranscript
	if input == "" {
		input = transcript
	}
	if input == "" {
		return nil, errors.InvalidInput("Transcript is required")
	}

	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Generate a clinical note from this consultation transcript:\n\n%s", input)},
		},
		MaxTokens:   noteMaxTokens,
		Temperature: noteTemperature,
	})
	if err != nil {
		return nil, err
	}
	if resp.Content == "" {
		return nil, errors.Upstream("inference", http.StatusBadGateway,
			fmt.Errorf("no clinical note generated"))
	}

	g.log.Info("clinical note generated", logger.Fields("model", resp.Model, "tokens", resp.Usage.TotalTokens))
	return &Note{Content: resp.Content, Model: resp.Model}, nil
}
