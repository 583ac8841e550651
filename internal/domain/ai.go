package domain

// GenerateRequest is the request body for AI post generation
type GenerateRequest struct {
	Topic               string   `json:"topic" binding:"required"`
	Keywords            []string `json:"keywords"`
	TargetWordCount     int      `json:"target_word_count"`
	Tone                string   `json:"tone" binding:"omitempty,oneof=professional casual technical"`
	IncludeCodeExamples *bool    `json:"include_code_examples"`
}

// GeneratedPost is the structured output of AI post generation
type GeneratedPost struct {
	Title             string   `json:"title"`
	Content           string   `json:"content"`
	Excerpt           string   `json:"excerpt"`
	SEOTitle          string   `json:"seoTitle"`
	SEODescription    string   `json:"seoDescription"`
	SuggestedKeywords []string `json:"suggestedKeywords"`
}

// OutlineRequest is the request body for AI outline generation
type OutlineRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// OutlineResponse is the AI outline result
type OutlineResponse struct {
	Outline string `json:"outline"`
}
