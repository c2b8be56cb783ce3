package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cv-match/internal/models"
)

type MatchingRepository interface {
	Upsert(matching *models.Matching) error
	FindByJobOffer(jobOfferID uuid.UUID, minScore float64) ([]models.Matching, error)
	FindByCV(cvID uuid.UUID, minScore float64) ([]models.Matching, error)
}

type matchingRepository struct {
	db *gorm.DB
}

func NewMatchingRepository(db *gorm.DB) MatchingRepository {
	return &matchingRepository{db: db}
}

// Upsert implements MatchingRepository. Keyed by (job_offer_id, cv_id):
// a re-run replaces the prior score for the pair in place.
func (r *matchingRepository) Upsert(matching *models.Matching) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_offer_id"}, {Name: "cv_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score",
			"score_details",
			"evaluated_at",
		}),
	}).Create(matching).Error

	if err != nil {
		return fmt.Errorf("failed to upsert matching: %w", err)
	}

	return nil
}

// FindByJobOffer implements MatchingRepository.
func (r *matchingRepository) FindByJobOffer(jobOfferID uuid.UUID, minScore float64) ([]models.Matching, error) {
	var matchings []models.Matching
	query := r.db.
		Preload("CV").
		Where("job_offer_id = ?", jobOfferID).
		Order("score DESC")

	if minScore > 0 {
		query = query.Where("score >= ?", minScore)
	}

	if err := query.Find(&matchings).Error; err != nil {
		return nil, fmt.Errorf("failed to list matchings for job offer: %w", err)
	}

	return matchings, nil
}

// FindByCV implements MatchingRepository.
func (r *matchingRepository) FindByCV(cvID uuid.UUID, minScore float64) ([]models.Matching, error) {
	var matchings []models.Matching
	query := r.db.
		Preload("JobOffer").
		Where("cv_id = ?", cvID).
		Order("score DESC")

	if minScore > 0 {
		query = query.Where("score >= ?", minScore)
	}

	if err := query.Find(&matchings).Error; err != nil {
		return nil, fmt.Errorf("failed to list matchings for cv: %w", err)
	}

	return matchings, nil
}
