// Package legal asks a Gemini model for a plain-language review of a lease.
// The answer uses "#" headings and **bold**/*italic* markers so it can be
// exported as a Word document.
package legal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"landlord_portal_backend/internal/leases/domain"
	"landlord_portal_backend/platform/apperr"
	"landlord_portal_backend/platform/config"
	"landlord_portal_backend/platform/logger"
)

const defaultModel = "gemini-2.5-flash"

// contentGenerator is the part of genai.Models the analyzer uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Analyzer produces the legal-analysis text for a lease.
type Analyzer struct {
	models contentGenerator
	model  string
	log    *logger.Logger
}

// NewAnalyzer connects to the Gemini API. It returns nil when no API key is
// configured; callers treat a nil analyzer as "feature disabled".
func NewAnalyzer(ctx context.Context, cfg config.GeminiConfig, log *logger.Logger) (*Analyzer, error) {
	if !cfg.IsGeminiEnabled() {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.GetGeminiModel()
	if model == "" {
		model = defaultModel
	}
	return &Analyzer{models: client.Models, model: model, log: log}, nil
}

// Model names the Gemini model used for reviews.
func (a *Analyzer) Model() string {
	return a.model
}

// Analyze reviews lease for enforceability and missing protections.
func (a *Analyzer) Analyze(ctx context.Context, lease domain.Lease) (string, error) {
	prompt, err := buildPrompt(lease)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to prepare lease for analysis", err)
	}

	resp, err := a.models.GenerateContent(ctx, a.model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.2),
	})
	if err != nil {
		a.log.UpstreamError("gemini", "legal_analysis", 0, err)
		return "", apperr.Unavailable("legal analysis is temporarily unavailable", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", apperr.Unavailable("legal analysis returned no content", nil)
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			out.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(out.String())
}

func buildPrompt(lease domain.Lease) (string, error) {
	terms, err := json.MarshalIndent(lease, "", "  ")
	if err != nil {
		return "", err
	}

	state := lease.Premises.State
	if state == "" {
		state = "unspecified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "State: %s\n", state)
	b.WriteString("Lease terms (JSON):\n")
	b.Write(terms)
	b.WriteString("\n\nResolved clauses:\n")
	for i, clause := range domain.ResolveClauses(lease.Clauses) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, clause)
	}
	return b.String(), nil
}

const systemPrompt = `You review residential lease agreements for US landlords.
Write a concise analysis with these sections, using "#" for the title and "##" for sections:
# Lease Review
## Summary
## Potential Issues
## Missing Protections
## State-Specific Notes
Use "- " bullets, **bold** for key terms and *italic* for statute names.
Flag fees, deposits or notice periods that commonly exceed state limits.
End with one line stating this is not legal advice.`
