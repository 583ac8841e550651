package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nichewire/nichewire-backend/internal/domain"
)

const (
	defaultTargetWordCount = 1500
	defaultTone            = "technical"
)

// AIGenerator produces draft blog posts through an external model API
type AIGenerator interface {
	GeneratePost(ctx context.Context, req *domain.GenerateRequest) (*domain.GeneratedPost, error)
	GenerateOutline(ctx context.Context, topic string) (*domain.OutlineResponse, error)
}

// aiGenerator calls an OpenAI-compatible chat completions endpoint
type aiGenerator struct {
	baseURL    string // e.g. "https://generativelanguage.googleapis.com/v1beta/openai"
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAIGenerator creates a new AIGenerator
func NewAIGenerator(baseURL, apiKey, model string) AIGenerator {
	return &aiGenerator{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// GeneratePost asks the model for a complete post and backfills any fields
// the model left out
func (g *aiGenerator) GeneratePost(ctx context.Context, req *domain.GenerateRequest) (*domain.GeneratedPost, error) {
	wordCount := req.TargetWordCount
	if wordCount == 0 {
		wordCount = defaultTargetWordCount
	}
	tone := req.Tone
	if tone == "" {
		tone = defaultTone
	}
	codeExamples := true
	if req.IncludeCodeExamples != nil {
		codeExamples = *req.IncludeCodeExamples
	}

	prompt := buildPostPrompt(req.Topic, req.Keywords, wordCount, tone, codeExamples)

	rawText, err := g.callProvider(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}

	jsonText := extractJSONObject(rawText)
	if jsonText == "" {
		return nil, fmt.Errorf("could not find JSON in model response")
	}

	var generated domain.GeneratedPost
	if err := json.Unmarshal([]byte(jsonText), &generated); err != nil {
		return nil, fmt.Errorf("could not parse model response: %w", err)
	}
	if generated.Title == "" || generated.Content == "" {
		return nil, fmt.Errorf("model response missing title or content")
	}

	// Backfill fields the model skipped
	if generated.Excerpt == "" {
		generated.Excerpt = makeMetaDescription(generated.Content)
	}
	if generated.SEODescription == "" {
		generated.SEODescription = generated.Excerpt
	}
	if len(generated.SuggestedKeywords) == 0 {
		generated.SuggestedKeywords = req.Keywords
	}

	return &generated, nil
}

// GenerateOutline asks the model for a markdown outline only
func (g *aiGenerator) GenerateOutline(ctx context.Context, topic string) (*domain.OutlineResponse, error) {
	prompt := fmt.Sprintf(`Create a detailed outline for a technical blog post about: %q

Include:
- Main title
- Introduction points
- 5-7 main sections with H2 headings
- 2-3 subsections for each main section (H3)
- Conclusion points
- Suggested call-to-action

Format as a simple markdown outline.`, topic)

	rawText, err := g.callProvider(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("outline request failed: %w", err)
	}

	return &domain.OutlineResponse{Outline: rawText}, nil
}

func buildPostPrompt(topic string, keywords []string, wordCount int, tone string, codeExamples bool) string {
	codeLine := "Include practical code examples"
	if !codeExamples {
		codeLine = "No code examples needed"
	}

	return fmt.Sprintf(`Write a technical blog post about: %q

Requirements:
- Target word count: %d words
- Tone: %s
- Target keywords: %s
- %s
- Use Markdown formatting
- Include proper headings (H2, H3)
- Add a brief introduction and conclusion
- SEO-optimized content
- Natural placement for affiliate links to hosting/tools (mark with [AFFILIATE: product-name])

Format the response as JSON:
{
  "title": "Compelling title with primary keyword",
  "content": "Full markdown content",
  "excerpt": "Brief 1-2 sentence summary",
  "seoTitle": "SEO-optimized title (max 60 chars)",
  "seoDescription": "Meta description (max 160 chars)",
  "suggestedKeywords": ["keyword1", "keyword2"]
}`, topic, wordCount, tone, strings.Join(keywords, ", "), codeLine)
}

// callProvider sends one user message to the chat completions endpoint
func (g *aiGenerator) callProvider(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := g.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider error (%d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response JSON: %w", err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no text in model response")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// extractJSONObject pulls the first top-level JSON object out of the reply,
// tolerating code fences and surrounding prose
func extractJSONObject(rawText string) string {
	start := strings.Index(rawText, "{")
	end := strings.LastIndex(rawText, "}")
	if start < 0 || end <= start {
		return ""
	}
	return rawText[start : end+1]
}

// makeMetaDescription derives a short plain-text summary from markdown content
func makeMetaDescription(content string) string {
	text := content
	for _, marker := range []string{"#", "*", "`", ">"} {
		text = strings.ReplaceAll(text, marker, "")
	}
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "\n"); idx > 0 {
		text = text[:idx]
	}
	return truncate(text, 160)
}

// truncate cuts s to at most n runes, never splitting a multi-byte character
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
