package llm

import (
	"context"
	"errors"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"github.com/yoockh/folio/config"
	"google.golang.org/api/iterator"
)

const (
	defaultGeminiModel = "gemini-1.5-flash"
	resumeInstruction  = "You write concise, factual resume copy in the first person. Never invent employers, dates or numbers."
)

// VertexGemini drafts resume copy with a Gemini model on Vertex AI.
type VertexGemini struct {
	client *vertexgenai.Client
	model  *vertexgenai.GenerativeModel
}

func NewVertexGemini(ctx context.Context, cfg config.VertexConfig) (*VertexGemini, error) {
	if !cfg.Enabled() {
		return nil, errors.New("VERTEX_PROJECT_ID is not set")
	}
	c, err := vertexgenai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, err
	}

	name := cfg.Model
	if name == "" {
		name = defaultGeminiModel
	}
	m := c.GenerativeModel(name)
	m.SetTemperature(0.4)
	m.SetMaxOutputTokens(400)
	m.SystemInstruction = &vertexgenai.Content{
		Parts: []vertexgenai.Part{vertexgenai.Text(resumeInstruction)},
	}
	return &VertexGemini{client: c, model: m}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) StreamAnswer(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	out := make(chan string, 32)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)

		it := v.model.GenerateContentStream(ctx, vertexgenai.Text(prompt))
		for {
			resp, err := it.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				errs <- err
				return
			}
			for _, t := range textParts(resp) {
				select {
				case out <- t:
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				}
			}
		}
	}()

	return out, errs
}

// textParts flattens the non-empty text parts of every candidate.
func textParts(resp *vertexgenai.GenerateContentResponse) []string {
	var out []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok && t != "" {
				out = append(out, string(t))
			}
		}
	}
	return out
}
