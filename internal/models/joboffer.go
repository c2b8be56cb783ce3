package models

import (
	"time"

	"github.com/google/uuid"
)

type JobOffer struct {
	ID                     uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title                  string       `gorm:"type:text;not null" json:"title"`
	Description            string       `gorm:"type:text" json:"description"`
	RequiredSkills         string       `gorm:"type:text" json:"required_skills"`
	CompanyName            string       `gorm:"type:text" json:"company_name"`
	Location               string       `gorm:"type:text" json:"location"`
	StartDate              *time.Time   `gorm:"type:date" json:"start_date,omitempty"`
	RequiredLanguages      string       `gorm:"type:text" json:"required_languages"`
	RequiredDiploma        string       `gorm:"type:text" json:"required_diploma"`
	RequiredDiplomaRanking int          `gorm:"default:0" json:"required_diploma_ranking"`
	RequiredExperience     int          `gorm:"default:0" json:"required_experience"`
	ContractType           ContractType `gorm:"type:text" json:"contract_type"`
	WorkType               WorkType     `gorm:"type:text" json:"work_type"`
	CreatedAt              time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt              time.Time    `gorm:"type:timestamp;default:now()" json:"updated_at"`
	ExpiresAt              *time.Time   `gorm:"type:timestamp" json:"expires_at,omitempty"`
	IsExpired              bool         `gorm:"default:false" json:"is_expired"`
}

func (JobOffer) TableName() string {
	return "job_offers"
}

// Attributes flattens the offer into the plain mapping handed to the
// adjustment prompt. Scoring-irrelevant bookkeeping fields are left out.
func (o *JobOffer) Attributes() map[string]interface{} {
	startDate := ""
	if o.StartDate != nil {
		startDate = o.StartDate.Format("2006-01-02")
	}

	return map[string]interface{}{
		"title":               o.Title,
		"description":         o.Description,
		"required_skills":     o.RequiredSkills,
		"company_name":        o.CompanyName,
		"location":            o.Location,
		"start_date":          startDate,
		"required_languages":  o.RequiredLanguages,
		"required_diploma":    o.RequiredDiploma,
		"required_experience": o.RequiredExperience,
		"contract_type":       o.ContractType.Label(),
		"work_type":           o.WorkType.Label(),
	}
}
