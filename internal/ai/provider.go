package ai

import (
	"context"

	"github.com/showquiz/tvtrivia/internal/model"
)

// DifficultyMix sets how many questions of each level to generate per show
type DifficultyMix struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// DefaultDifficultyMix splits a bank evenly across levels
func DefaultDifficultyMix() DifficultyMix {
	return DifficultyMix{Easy: 10, Medium: 10, Hard: 10}
}

// GenerateBankRequest describes a question-bank generation job
type GenerateBankRequest struct {
	Decade           string
	Shows            []string
	QuestionsPerShow int
	DifficultyMix    DifficultyMix
	Seed             int64
}

// GeneratedQuestion is the raw provider output before it is turned into
// a model.Question. Provider responses that fail validation are dropped,
// never installed.
type GeneratedQuestion struct {
	Show                   string           `json:"show"`
	Question               string           `json:"question"`
	AnswerType             string           `json:"answer_type"`
	AcceptedAnswers        []string         `json:"accepted_answers"`
	Difficulty             model.Difficulty `json:"difficulty"`
	Season                 string           `json:"season"`
	EpisodeNumber          string           `json:"episode_number"`
	EpisodeTitle           string           `json:"episode_title"`
	EvidenceSummary        string           `json:"evidence_summary"`
	InternalReasoningCheck string           `json:"internal_reasoning_check"`
	FactualConfidence      float64          `json:"factual_confidence"`
	AmbiguityRisk          string           `json:"ambiguity_risk"`
}

// Provider generates trivia content via an external language model
type Provider interface {
	// GenerateQuestions produces a validated question list for the request
	GenerateQuestions(ctx context.Context, req GenerateBankRequest) ([]GeneratedQuestion, error)

	// PopularShows lists 20 popular shows first aired in the given decade
	PopularShows(ctx context.Context, decade string) ([]string, error)
}
