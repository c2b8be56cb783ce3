package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cv-match/internal/models"
)

type CVRepository interface {
	Create(cv *models.CV) error
	FindByID(id uuid.UUID) (*models.CV, error)
	FindAll() ([]models.CV, error)
	Delete(id uuid.UUID) error
	SaveProfile(id uuid.UUID, profile *ProfileUpdate) error
}

// ProfileUpdate carries the full extracted-profile cache written onto a CV
// record after a successful semantic extraction.
type ProfileUpdate struct {
	Name           string
	Website        string
	PhoneNumber    string
	Email          string
	Description    string
	Skills         string
	Diploma        string
	DiplomaRanking int
	YearExperience int
	Experiences    datatypes.JSON
	Languages      string
	Certifications datatypes.JSON
	RawText        string
}

type cvRepository struct {
	db *gorm.DB
}

func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

// Create implements CVRepository.
func (r *cvRepository) Create(cv *models.CV) error {
	if err := r.db.Create(cv).Error; err != nil {
		return fmt.Errorf("failed to create cv: %w", err)
	}

	return nil
}

// FindByID implements CVRepository.
func (r *cvRepository) FindByID(id uuid.UUID) (*models.CV, error) {
	var cv models.CV
	if err := r.db.Where("id = ?", id).First(&cv).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cv not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find cv: %w", err)
	}

	return &cv, nil
}

// FindAll implements CVRepository.
func (r *cvRepository) FindAll() ([]models.CV, error) {
	var cvs []models.CV
	if err := r.db.Order("created_at DESC").Find(&cvs).Error; err != nil {
		return nil, fmt.Errorf("failed to list cvs: %w", err)
	}

	return cvs, nil
}

// Delete implements CVRepository.
func (r *cvRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.CV{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cv: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("cv not found")
	}

	return nil
}

// SaveProfile implements CVRepository. The whole cache is replaced,
// last write wins.
func (r *cvRepository) SaveProfile(id uuid.UUID, profile *ProfileUpdate) error {
	result := r.db.Model(&models.CV{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":            profile.Name,
			"website":         profile.Website,
			"phone_number":    profile.PhoneNumber,
			"email":           profile.Email,
			"description":     profile.Description,
			"skills":          profile.Skills,
			"diploma":         profile.Diploma,
			"diploma_ranking": profile.DiplomaRanking,
			"year_experience": profile.YearExperience,
			"experiences":     profile.Experiences,
			"languages":       profile.Languages,
			"certifications":  profile.Certifications,
			"raw_text":        profile.RawText,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to save extracted profile: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("cv not found")
	}

	return nil
}
