package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"cv-match/internal/llm"
	"cv-match/internal/repositories"
)

// CandidateProfile is the fixed schema returned by the extraction model.
// Numeric fields are coerced to 0 when the model returns nothing parseable,
// so downstream arithmetic never sees missing values.
type CandidateProfile struct {
	Name           string   `json:"name"`
	Website        string   `json:"website"`
	PhoneNumber    string   `json:"phone_number"`
	Email          string   `json:"email"`
	Description    string   `json:"description"`
	Skills         []string `json:"skills"`
	Diploma        string   `json:"diploma"`
	DiplomaRanking int      `json:"diploma_ranking"`
	YearExperience int      `json:"year_experience"`
	Experiences    []string `json:"experiences"`
	Languages      []string `json:"languages"`
	Certifications []string `json:"certifications"`

	RawText string `json:"-"`
}

// Attributes flattens the profile into the plain mapping handed to the
// adjustment prompt, list fields comma-joined.
func (p *CandidateProfile) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"description":     p.Description,
		"skills":          strings.Join(p.Skills, ", "),
		"diploma":         p.Diploma,
		"year_experience": p.YearExperience,
		"experiences":     strings.Join(p.Experiences, ", "),
		"languages":       strings.Join(p.Languages, ", "),
		"certifications":  strings.Join(p.Certifications, ", "),
	}
}

// ExtractorService runs the semantic field extraction stage.
type ExtractorService interface {
	Extract(ctx context.Context, cvID uuid.UUID, rawText string) (*CandidateProfile, error)
}

type extractorService struct {
	client        llm.Client
	cvRepo        repositories.CVRepository
	promptBuilder *PromptBuilder
}

// NewExtractorService builds the extractor. A nil client is allowed and
// produces empty profiles (degraded mode).
func NewExtractorService(client llm.Client, cvRepo repositories.CVRepository) ExtractorService {
	return &extractorService{
		client:        client,
		cvRepo:        cvRepo,
		promptBuilder: NewPromptBuilder(),
	}
}

// Extract implements ExtractorService. On success the profile is persisted
// onto the CV record so later runs could reuse it without re-extraction.
func (e *extractorService) Extract(ctx context.Context, cvID uuid.UUID, rawText string) (*CandidateProfile, error) {
	if e.client == nil {
		log.Println("⚠️  No extraction model provider configured, returning empty profile")
		return &CandidateProfile{RawText: rawText}, nil
	}

	prompt := e.promptBuilder.BuildExtractionPrompt(rawText)

	response, err := e.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	var profile CandidateProfile
	if err := parseJSONResponse(response, &profile); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	if profile.DiplomaRanking < 0 {
		profile.DiplomaRanking = 0
	}
	if profile.YearExperience < 0 {
		profile.YearExperience = 0
	}
	profile.RawText = rawText

	if err := e.persist(cvID, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (e *extractorService) persist(cvID uuid.UUID, profile *CandidateProfile) error {
	experiences, err := json.Marshal(profile.Experiences)
	if err != nil {
		return fmt.Errorf("failed to encode experiences: %w", err)
	}

	certifications, err := json.Marshal(profile.Certifications)
	if err != nil {
		return fmt.Errorf("failed to encode certifications: %w", err)
	}

	update := &repositories.ProfileUpdate{
		Name:           profile.Name,
		Website:        profile.Website,
		PhoneNumber:    profile.PhoneNumber,
		Email:          profile.Email,
		Description:    profile.Description,
		Skills:         strings.Join(profile.Skills, ", "),
		Diploma:        profile.Diploma,
		DiplomaRanking: profile.DiplomaRanking,
		YearExperience: profile.YearExperience,
		Experiences:    datatypes.JSON(experiences),
		Languages:      strings.Join(profile.Languages, ", "),
		Certifications: datatypes.JSON(certifications),
		RawText:        profile.RawText,
	}

	if err := e.cvRepo.SaveProfile(cvID, update); err != nil {
		return fmt.Errorf("failed to cache extracted profile: %w", err)
	}

	return nil
}
