package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CV struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title            string    `gorm:"type:text;not null" json:"title"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"uploaded_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Extracted profile cache. Overwritten in full on every successful
	// semantic extraction, never partially.
	Name           string         `gorm:"type:text" json:"name"`
	Website        string         `gorm:"type:text" json:"website"`
	PhoneNumber    string         `gorm:"type:text" json:"phone_number"`
	Email          string         `gorm:"type:text" json:"email"`
	Description    string         `gorm:"type:text" json:"description"`
	Skills         string         `gorm:"type:text" json:"skills"`
	Diploma        string         `gorm:"type:text" json:"diploma"`
	DiplomaRanking int            `gorm:"default:0" json:"diploma_ranking"`
	YearExperience int            `gorm:"default:0" json:"year_experience"`
	Experiences    datatypes.JSON `gorm:"type:jsonb" json:"experiences"`
	Languages      string         `gorm:"type:text" json:"languages"`
	Certifications datatypes.JSON `gorm:"type:jsonb" json:"certifications"`
	RawText        string         `gorm:"type:text" json:"raw_text,omitempty"`
}

func (CV) TableName() string {
	return "cvs"
}
