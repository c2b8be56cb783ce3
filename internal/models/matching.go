package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Matching is the single live result for one (job offer, cv) pair.
// Re-scoring the same pair replaces the row, it never appends.
type Matching struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobOfferID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_matchings_offer_cv" json:"job_offer_id"`
	CVID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_matchings_offer_cv" json:"cv_id"`
	Score        float64        `gorm:"not null" json:"score"`
	ScoreDetails datatypes.JSON `gorm:"type:jsonb" json:"score_details"`
	EvaluatedAt  time.Time      `gorm:"type:timestamp;default:now()" json:"evaluated_at"`

	// Relations
	JobOffer JobOffer `gorm:"foreignKey:JobOfferID;constraint:OnDelete:CASCADE" json:"-"`
	CV       CV       `gorm:"foreignKey:CVID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Matching) TableName() string {
	return "matchings"
}
