package models

import (
	"encoding/json"
	"time"
)

type JobOfferRequest struct {
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	RequiredSkills         string     `json:"required_skills"`
	CompanyName            string     `json:"company_name"`
	Location               string     `json:"location"`
	StartDate              *time.Time `json:"start_date"`
	RequiredLanguages      string     `json:"required_languages"`
	RequiredDiploma        string     `json:"required_diploma"`
	RequiredDiplomaRanking int        `json:"required_diploma_ranking"`
	RequiredExperience     int        `json:"required_experience"`
	ContractType           string     `json:"contract_type"`
	WorkType               string     `json:"work_type"`
	ExpiresAt              *time.Time `json:"expires_at"`
}

type UploadCVResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}

type ScoreRequest struct {
	JobOfferID string `json:"job_offer_id"`
}

type ScoreResponse struct {
	MatchingID   string          `json:"matching_id"`
	Score        float64         `json:"score"`
	ScoreDetails json.RawMessage `json:"score_details"`
	EvaluatedAt  time.Time       `json:"evaluated_at"`
	JobOffer     *JobOffer       `json:"job_offer"`
	CV           *CV             `json:"cv"`
}

type MatchingResponse struct {
	ID           string          `json:"id"`
	Score        float64         `json:"score"`
	ScoreDetails json.RawMessage `json:"score_details"`
	EvaluatedAt  time.Time       `json:"evaluated_at"`
	JobOffer     *JobOffer       `json:"job_offer,omitempty"`
	CV           *CV             `json:"cv,omitempty"`
}

type CVSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}
