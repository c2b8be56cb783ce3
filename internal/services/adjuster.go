package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cv-match/internal/llm"
	"cv-match/internal/models"
)

// Weights is the fixed weight vector blended over the five adjusted scores.
// Its sum-to-1.0 invariant is enforced at configuration time, not here.
type Weights struct {
	Experience float64
	Skills     float64
	Education  float64
	Languages  float64
	JobFit     float64
}

// Map exposes the vector as the plain mapping embedded in the prompt.
func (w Weights) Map() map[string]float64 {
	return map[string]float64{
		"experience": w.Experience,
		"skills":     w.Skills,
		"education":  w.Education,
		"languages":  w.Languages,
		"job_fit":    w.JobFit,
	}
}

// Aggregate computes the final weighted score. The adjustment model is not
// contractually bounded, so the result is defensively clamped to [0,100].
func (w Weights) Aggregate(scores *ScoringData) float64 {
	final := w.Experience*scores.Experience +
		w.Skills*scores.Skills +
		w.Education*scores.Education +
		w.Languages*scores.Languages +
		w.JobFit*scores.JobFit

	if final < 0 {
		return 0
	}
	if final > 100 {
		return 100
	}

	return final
}

// ScoringData is the fixed schema returned by the adjustment model: five
// adjusted dimension scores plus the recruiter commentary.
type ScoringData struct {
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
	Education  float64 `json:"education"`
	Languages  float64 `json:"languages"`
	JobFit     float64 `json:"job_fit"`

	ScoreComments []string `json:"score_comments"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	MissingSkills []string `json:"missing_skills"`
	Summary       string   `json:"summary"`
}

// AdjusterService runs the LLM adjustment stage and the weighted aggregation.
type AdjusterService interface {
	// Adjust returns the adjusted score set and the final weighted score.
	// With no provider configured it degrades to (nil, 0, nil) instead of
	// failing the run.
	Adjust(ctx context.Context, offer *models.JobOffer, profile *CandidateProfile, deterministic DeterministicScores) (*ScoringData, float64, error)
}

type adjusterService struct {
	client        llm.Client
	weights       Weights
	promptBuilder *PromptBuilder
}

func NewAdjusterService(client llm.Client, weights Weights) AdjusterService {
	return &adjusterService{
		client:        client,
		weights:       weights,
		promptBuilder: NewPromptBuilder(),
	}
}

// Adjust implements AdjusterService.
func (a *adjusterService) Adjust(ctx context.Context, offer *models.JobOffer, profile *CandidateProfile, deterministic DeterministicScores) (*ScoringData, float64, error) {
	if a.client == nil {
		log.Println("⚠️  No adjustment model provider configured, scoring degraded to 0")
		return nil, 0.0, nil
	}

	prompt, err := a.buildPrompt(offer, profile, deterministic)
	if err != nil {
		return nil, 0, err
	}

	response, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrAdjustment, err)
	}

	var scores ScoringData
	if err := parseJSONResponse(response, &scores); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrAdjustment, err)
	}

	final := a.weights.Aggregate(&scores)
	log.Printf("✅ Computation completed with the result: %.2f/100\n", final)

	return &scores, final, nil
}

func (a *adjusterService) buildPrompt(offer *models.JobOffer, profile *CandidateProfile, deterministic DeterministicScores) (string, error) {
	jobRequirements, err := json.Marshal(offer.Attributes())
	if err != nil {
		return "", fmt.Errorf("failed to encode job requirements: %w", err)
	}

	candidateData, err := json.Marshal(profile.Attributes())
	if err != nil {
		return "", fmt.Errorf("failed to encode candidate data: %w", err)
	}

	deterministicScores, err := json.Marshal(deterministic)
	if err != nil {
		return "", fmt.Errorf("failed to encode deterministic scores: %w", err)
	}

	weights, err := json.Marshal(a.weights.Map())
	if err != nil {
		return "", fmt.Errorf("failed to encode weights: %w", err)
	}

	return a.promptBuilder.BuildAdjustmentPrompt(
		string(jobRequirements),
		string(candidateData),
		string(deterministicScores),
		string(weights),
	), nil
}
