// Package llm wraps the Anthropic API for bias classification of quiz
// feedback and generation of corrective educational content.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/quizforge/quizmod-backend/internal/config"
	"github.com/quizforge/quizmod-backend/internal/domain"
)

// Client calls the Anthropic API. Safe for concurrent use.
type Client struct {
	api anthropic.Client
	cfg config.LLMConfig
	log *slog.Logger
}

// New creates a Client from configuration.
func New(cfg config.LLMConfig, log *slog.Logger) *Client {
	return &Client{
		api: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg: cfg,
		log: log.With("adapter", "llm"),
	}
}

// biasResponseJSON is the shape the classifier prompt asks the model for.
type biasResponseJSON struct {
	HasBias         bool     `json:"has_bias"`
	BiasTypes       []string `json:"bias_types"`
	Severity        string   `json:"severity"`
	SpecificIssues  []string `json:"specific_issues"`
	Recommendations []string `json:"recommendations"`
	ConfidenceScore float64  `json:"confidence_score"`
}

// ClassifyBias analyzes one piece of user feedback about educational quiz
// content and returns a structured bias analysis. The user ID is carried
// for log attribution only and never enters the prompt. Callers decide how
// to treat errors; this method never fabricates a verdict on failure.
func (c *Client) ClassifyBias(ctx context.Context, concept, feedbackText, userID string) (*domain.BiasAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ClassifyTimeout)
	defer cancel()

	prompt := buildClassifyPrompt(concept, feedbackText)

	text, err := c.complete(ctx, prompt, c.cfg.ClassifyMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("classify bias for %q: %w", concept, err)
	}

	jsonStr, err := extractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("classify bias for %q: %w", concept, err)
	}
	if !json.Valid([]byte(jsonStr)) {
		return nil, fmt.Errorf("classify bias for %q: response is not valid JSON", concept)
	}

	var raw biasResponseJSON
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("classify bias for %q: decode response: %w", concept, err)
	}

	severity := domain.BiasSeverity(strings.ToLower(raw.Severity))
	if !severity.IsValid() {
		severity = domain.SeverityLow
	}

	analysis := &domain.BiasAnalysis{
		HasBias:         raw.HasBias,
		BiasTypes:       raw.BiasTypes,
		Severity:        severity,
		SpecificIssues:  raw.SpecificIssues,
		Recommendations: raw.Recommendations,
		Confidence:      raw.ConfidenceScore,
		AnalyzedAt:      time.Now().UTC(),
	}

	c.log.InfoContext(ctx, "bias classification complete",
		slog.String("concept", concept),
		slog.String("user_id", userID),
		slog.Bool("has_bias", analysis.HasBias),
		slog.String("severity", string(analysis.Severity)),
		slog.Float64("confidence", analysis.Confidence),
	)

	return analysis, nil
}

// GenerateCorrectiveContent produces replacement teaching material for a
// concept whose content was found biased. The output covers beginner,
// intermediate and advanced difficulty tiers.
func (c *Client) GenerateCorrectiveContent(ctx context.Context, concept string, analysis *domain.BiasAnalysis) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.GenerateTimeout)
	defer cancel()

	prompt := buildCorrectivePrompt(concept, analysis)

	text, err := c.complete(ctx, prompt, c.cfg.GenerateMaxTokens)
	if err != nil {
		return "", fmt.Errorf("generate corrective content for %q: %w", concept, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("generate corrective content for %q: empty response", concept)
	}

	c.log.InfoContext(ctx, "corrective content generated",
		slog.String("concept", concept),
		slog.Int("length", len(text)),
	)

	return text, nil
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm api call: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return msg.Content[0].Text, nil
}

func buildClassifyPrompt(concept, feedbackText string) string {
	return fmt.Sprintf(`You are an expert in educational content bias detection. Analyze the following user feedback about an educational quiz for children.

Concept: %s
User Feedback: %s

Analyze for the following types of bias:
1. Gender bias - Does the content stereotype or exclude any gender?
2. Cultural bias - Is the content culturally insensitive or exclusive?
3. Age appropriateness - Is the content suitable for the age group?
4. Stereotypes - Does the content perpetuate harmful stereotypes?
5. Accessibility - Are there concerns about content accessibility?
6. Economic bias - Does it assume certain economic backgrounds?

Provide your analysis in JSON format:
{
    "has_bias": true/false,
    "bias_types": ["gender", "cultural", etc.],
    "severity": "low/medium/high",
    "specific_issues": ["detailed description of each issue"],
    "recommendations": ["specific suggestions to fix the bias"],
    "confidence_score": 0.0-1.0
}

Output ONLY the JSON, no markdown, no explanations.`, concept, feedbackText)
}

func buildCorrectivePrompt(concept string, analysis *domain.BiasAnalysis) string {
	return fmt.Sprintf(`You are an expert in creating inclusive, unbiased educational content for children.

A bias has been detected in educational content about: %s

Bias Details:
- Types: %s
- Severity: %s
- Issues: %s
- Recommendations: %s

Create improved, bias-free educational content about %s that:
1. Is inclusive of all genders, cultures, and backgrounds
2. Avoids stereotypes
3. Uses diverse examples and characters
4. Is accessible to all learners
5. Maintains age-appropriate language

Provide content for three difficulty levels:
- Beginner (ages 6-9)
- Intermediate (ages 10-12)
- Advanced (ages 13-17)

Format each section clearly with the difficulty level as a header.`,
		concept,
		strings.Join(analysis.BiasTypes, ", "),
		analysis.Severity,
		strings.Join(analysis.SpecificIssues, ", "),
		strings.Join(analysis.Recommendations, ", "),
		concept,
	)
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
