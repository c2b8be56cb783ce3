package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cv-match/internal/models"
)

type JobOfferRepository interface {
	Create(offer *models.JobOffer) error
	FindByID(id uuid.UUID) (*models.JobOffer, error)
	FindAll() ([]models.JobOffer, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

type jobOfferRepository struct {
	db *gorm.DB
}

func NewJobOfferRepository(db *gorm.DB) JobOfferRepository {
	return &jobOfferRepository{db: db}
}

// Create implements JobOfferRepository.
func (r *jobOfferRepository) Create(offer *models.JobOffer) error {
	if err := r.db.Create(offer).Error; err != nil {
		return fmt.Errorf("failed to create job offer: %w", err)
	}

	return nil
}

// FindByID implements JobOfferRepository.
func (r *jobOfferRepository) FindByID(id uuid.UUID) (*models.JobOffer, error) {
	var offer models.JobOffer
	if err := r.db.Where("id = ?", id).First(&offer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job offer not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find job offer: %w", err)
	}

	return &offer, nil
}

// FindAll implements JobOfferRepository.
func (r *jobOfferRepository) FindAll() ([]models.JobOffer, error) {
	var offers []models.JobOffer
	if err := r.db.Order("created_at DESC").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to list job offers: %w", err)
	}

	return offers, nil
}

// Update implements JobOfferRepository.
func (r *jobOfferRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.JobOffer{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update job offer: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("job offer not found")
	}

	return nil
}

// Delete implements JobOfferRepository.
func (r *jobOfferRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.JobOffer{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job offer: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("job offer not found")
	}

	return nil
}
