package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/showquiz/tvtrivia/internal/ai"
)

const defaultModel = "gpt-4.1-mini"

// Client calls the OpenAI chat-completion API
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	http    *http.Client
}

// New creates an OpenAI client. baseURL and model fall back to defaults
// when empty.
func New(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

var _ ai.Provider = (*Client)(nil)

// GenerateQuestions produces a validated trivia question list
func (c *Client) GenerateQuestions(ctx context.Context, req ai.GenerateBankRequest) ([]ai.GeneratedQuestion, error) {
	systemPrompt := "You are an expert TV canon researcher and trivia editor. " +
		"Accuracy is more important than creativity. Return valid JSON only, no markdown."

	raw, err := c.chatJSON(ctx, systemPrompt, questionPrompt(req), 0.7)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Questions []ai.GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("invalid question payload: %w", err)
	}
	if parsed.Questions == nil {
		return nil, errors.New("response did not include questions array")
	}

	var valid []ai.GeneratedQuestion
	for _, q := range parsed.Questions {
		if isValidQuestion(q) {
			valid = append(valid, q)
		}
	}
	return valid, nil
}

// PopularShows lists 20 popular shows for a decade
func (c *Client) PopularShows(ctx context.Context, decade string) ([]string, error) {
	systemPrompt := "You are a TV historian assistant. Return JSON only, no markdown, no extra text."
	userPrompt := strings.Join([]string{
		fmt.Sprintf("Generate the 20 most popular scripted TV shows first released in the %s.", decade),
		"Prioritize US mainstream audience familiarity for trivia game play.",
		"Do not include duplicates, reality shows, or non-TV media.",
		`Return JSON: {"shows":["Show 1","Show 2",...]} with exactly 20 unique show titles and list fewer if 20 were not provided.`,
	}, "\n")

	raw, err := c.chatJSON(ctx, systemPrompt, userPrompt, 0.4)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Shows []string `json:"shows"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("invalid shows payload: %w", err)
	}
	if parsed.Shows == nil {
		return nil, errors.New("response did not include shows array")
	}

	seen := make(map[string]bool)
	var unique []string
	for _, show := range parsed.Shows {
		show = strings.TrimSpace(show)
		if show == "" || seen[show] {
			continue
		}
		seen[show] = true
		unique = append(unique, show)
	}

	if len(unique) < 20 {
		return nil, fmt.Errorf("provider returned %d unique shows, want 20", len(unique))
	}
	return unique[:20], nil
}

// chatJSON performs a JSON-mode chat completion and returns the raw content
func (c *Client) chatJSON(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	if c.APIKey == "" {
		return "", errors.New("missing OPENAI_API_KEY")
	}

	payload := map[string]any{
		"model": c.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"temperature":     temperature,
		"response_format": map[string]string{"type": "json_object"},
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("openai status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func questionPrompt(req ai.GenerateBankRequest) string {
	mix := req.DifficultyMix
	return strings.Join([]string{
		fmt.Sprintf("Generate a strict trivia object for each question requested across these shows: %s.",
			strings.Join(req.Shows, ", ")),
		fmt.Sprintf("Generate exactly %d questions per show and keep difficulty per show to easy=%d, medium=%d, hard=%d.",
			req.QuestionsPerShow, mix.Easy, mix.Medium, mix.Hard),
		"For each question object, use this exact requirement block:",
		fmt.Sprintf(`Generate ONE open-answer trivia question about the TV show "{{SHOW_NAME}}" (%s).

REQUIREMENTS:

1. The question must:
   - Have a single clearly correct answer.
   - Be unambiguous.
   - Be verifiable from a specific episode.
   - Not rely on vague interpretation.
   - Not require subjective judgment.

2. The answer must:
   - Be a short open-answer response (not multiple choice).
   - Be specific enough for grading.
   - Not require listing more than 3 items.

3. Include canonical metadata:
   - Season number
   - Episode number
   - Episode title
   - 1-2 sentence evidence summary describing the exact scene

4. Provide grading support:
   - Provide an array of acceptable answer variants.
   - Indicate grading type (exact, fuzzy, contains, multi-part, numeric).

5. Provide:
   - Difficulty level (easy, medium, hard)
   - factual_confidence score (1-10)
   - ambiguity_risk (low, medium, high)

6. Perform internal verification:
   - Briefly explain why the answer is correct.
   - If uncertain about any detail, state "UNCERTAIN" and stop.`, req.Decade),
		`Return strict JSON in this shape (and include "show" for each object):`,
		`{
  "questions": [
    {
      "show": "",
      "question": "",
      "answer_type": "",
      "accepted_answers": [],
      "difficulty": "",
      "season": "",
      "episode_number": "",
      "episode_title": "",
      "evidence_summary": "",
      "internal_reasoning_check": "",
      "factual_confidence": 0,
      "ambiguity_risk": ""
    }
  ]
}`,
		"Do not include uncertain items. If any item is uncertain, omit it and continue.",
		fmt.Sprintf("Difficulty per show must follow easy=%d, medium=%d, hard=%d.", mix.Easy, mix.Medium, mix.Hard),
		fmt.Sprintf("Use this seed for deterministic variety: %d.", req.Seed),
	}, "\n")
}

func isValidQuestion(q ai.GeneratedQuestion) bool {
	if q.Show == "" || q.Question == "" {
		return false
	}

	switch q.AnswerType {
	case "exact", "fuzzy", "contains", "multi-part", "numeric":
	default:
		return false
	}

	hasAnswer := false
	for _, answer := range q.AcceptedAnswers {
		if strings.TrimSpace(answer) != "" {
			hasAnswer = true
			break
		}
	}
	if !hasAnswer {
		return false
	}

	if !q.Difficulty.Valid() {
		return false
	}

	if q.Season == "" || q.EpisodeNumber == "" || q.EpisodeTitle == "" || q.EvidenceSummary == "" {
		return false
	}

	if q.InternalReasoningCheck == "" ||
		strings.Contains(strings.ToUpper(q.InternalReasoningCheck), "UNCERTAIN") {
		return false
	}

	if q.FactualConfidence < 1 || q.FactualConfidence > 10 {
		return false
	}

	switch q.AmbiguityRisk {
	case "low", "medium", "high":
	default:
		return false
	}

	return true
}
