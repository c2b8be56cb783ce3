package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"cv-match/internal/models"
	"cv-match/internal/repositories"
)

// MatcherService runs one full scoring pipeline: raw text extraction,
// semantic extraction, deterministic scoring, LLM adjustment, weighted
// aggregation, then the matching upsert. One blocking flow per call.
type MatcherService interface {
	Score(ctx context.Context, jobOfferID, cvID uuid.UUID) (*models.Matching, error)
}

// scoreDetails is the persisted payload: the adjusted score set, with the
// deterministic sub-scores kept alongside as an auditable input.
type scoreDetails struct {
	ScoringData
	Deterministic DeterministicScores `json:"deterministic_scores"`
}

type matcherService struct {
	offerRepo    repositories.JobOfferRepository
	cvRepo       repositories.CVRepository
	matchingRepo repositories.MatchingRepository
	parser       DocumentParser
	extractor    ExtractorService
	adjuster     AdjusterService
	vector       VectorService
}

// NewMatcherService wires the pipeline. vector may be nil; indexing is then
// skipped.
func NewMatcherService(
	offerRepo repositories.JobOfferRepository,
	cvRepo repositories.CVRepository,
	matchingRepo repositories.MatchingRepository,
	parser DocumentParser,
	extractor ExtractorService,
	adjuster AdjusterService,
	vector VectorService,
) MatcherService {
	return &matcherService{
		offerRepo:    offerRepo,
		cvRepo:       cvRepo,
		matchingRepo: matchingRepo,
		parser:       parser,
		extractor:    extractor,
		adjuster:     adjuster,
		vector:       vector,
	}
}

// Score implements MatcherService. No partial matching is ever persisted:
// the upsert only happens once both score sets are fully computed.
func (m *matcherService) Score(ctx context.Context, jobOfferID, cvID uuid.UUID) (*models.Matching, error) {
	offer, err := m.offerRepo.FindByID(jobOfferID)
	if err != nil {
		return nil, err
	}

	cv, err := m.cvRepo.FindByID(cvID)
	if err != nil {
		return nil, err
	}

	log.Printf("🔄 Scoring CV %s against job offer %s\n", cv.ID, offer.ID)

	rawText, err := m.parser.ExtractText(cv.FilePath)
	if err != nil {
		return nil, err
	}

	profile, err := m.extractor.Extract(ctx, cv.ID, rawText)
	if err != nil {
		return nil, err
	}

	deterministic := ComputeDeterministicScores(profile, offer)
	log.Printf("📊 Deterministic scores: experience=%.1f skills=%.1f diploma=%.1f\n",
		deterministic.Experience, deterministic.Skills, deterministic.Diploma)

	adjusted, finalScore, err := m.adjuster.Adjust(ctx, offer, profile, deterministic)
	if err != nil {
		return nil, err
	}

	details, err := encodeDetails(adjusted, deterministic)
	if err != nil {
		// The model call already succeeded; the wasted call is worth a log line.
		log.Printf("❌ Discarding adjustment result for CV %s: %v\n", cv.ID, err)
		return nil, err
	}

	matching := &models.Matching{
		ID:           uuid.New(),
		JobOfferID:   offer.ID,
		CVID:         cv.ID,
		Score:        finalScore,
		ScoreDetails: details,
		EvaluatedAt:  time.Now(),
	}

	if err := m.matchingRepo.Upsert(matching); err != nil {
		return nil, err
	}

	m.indexProfile(ctx, cv, profile)

	log.Printf("✅ CV %s scored %.2f/100 on job offer %s\n", cv.ID, finalScore, offer.ID)
	return matching, nil
}

func encodeDetails(adjusted *ScoringData, deterministic DeterministicScores) (datatypes.JSON, error) {
	if adjusted == nil {
		// Degraded mode: empty detail payload.
		return datatypes.JSON([]byte("{}")), nil
	}

	payload, err := json.Marshal(scoreDetails{
		ScoringData:   *adjusted,
		Deterministic: deterministic,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	return datatypes.JSON(payload), nil
}

// indexProfile pushes the freshly extracted profile into the vector store.
// Best effort: search staleness is acceptable, a failed scoring run is not.
func (m *matcherService) indexProfile(ctx context.Context, cv *models.CV, profile *CandidateProfile) {
	if m.vector == nil || profile == nil {
		return
	}

	if err := m.vector.IndexCV(ctx, cv.ID, cv.Title, profile); err != nil {
		log.Printf("⚠️  Failed to index CV %s for search: %v\n", cv.ID, err)
	}
}
