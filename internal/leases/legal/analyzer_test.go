package legal

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"

	"landlord_portal_backend/internal/leases/domain"
	"landlord_portal_backend/platform/apperr"
	"landlord_portal_backend/platform/logger"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	prompt string
	model  string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompt += p.Text
		}
	}
	return f.resp, f.err
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestAnalyze(t *testing.T) {
	models := &fakeModels{resp: textResponse(
		&genai.Part{Text: "thinking...", Thought: true},
		&genai.Part{Text: "# Lease Review\n"},
		&genai.Part{Text: "## Summary\nLooks fine."},
	)}
	analyzer := &Analyzer{models: models, model: "test-model", log: logger.Discard()}

	lease := domain.Lease{
		Premises: domain.PremisesInfo{Address: "1 Main St", State: "TX"},
		Clauses:  domain.ClauseSet{Custom: []string{"No grills on the balcony."}},
	}
	got, err := analyzer.Analyze(context.Background(), lease)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got != "# Lease Review\n## Summary\nLooks fine." {
		t.Fatalf("unexpected analysis %q", got)
	}
	if models.model != "test-model" {
		t.Fatalf("expected configured model, got %q", models.model)
	}
	if !strings.Contains(models.prompt, "State: TX") || !strings.Contains(models.prompt, "1. No grills on the balcony.") {
		t.Fatalf("prompt missing lease details: %s", models.prompt)
	}
}

func TestAnalyzeFailures(t *testing.T) {
	tests := []struct {
		name   string
		models *fakeModels
	}{
		{"upstream error", &fakeModels{err: errors.New("quota exceeded")}},
		{"empty response", &fakeModels{resp: &genai.GenerateContentResponse{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &Analyzer{models: tt.models, model: defaultModel, log: logger.Discard()}
			if _, err := analyzer.Analyze(context.Background(), domain.Lease{}); !apperr.Is(err, apperr.KindUnavailable) {
				t.Fatalf("expected unavailable error, got %v", err)
			}
		})
	}
}
