package services

import (
	"strings"

	"cv-match/internal/models"
)

// DeterministicScores are the three objective sub-scores computed by fixed
// arithmetic rules, no model involvement. Recomputed on every scoring run.
type DeterministicScores struct {
	Experience float64 `json:"experience_score"`
	Skills     float64 `json:"skill_score"`
	Diploma    float64 `json:"diploma_score"`
}

// ComputeDeterministicScores derives the three sub-scores from the extracted
// profile and the offer requirements. Pure, always succeeds.
func ComputeDeterministicScores(profile *CandidateProfile, offer *models.JobOffer) DeterministicScores {
	return DeterministicScores{
		Experience: scoreExperience(profile.YearExperience, offer.RequiredExperience),
		Skills:     scoreSkills(profile.Skills, offer.RequiredSkills),
		Diploma:    scoreDiploma(profile.DiplomaRanking, offer.RequiredDiplomaRanking),
	}
}

// scoreExperience: 100 when the offer has no minimum or the candidate meets
// it, otherwise a linear rule of three.
func scoreExperience(candidateYears, requiredYears int) float64 {
	if requiredYears <= 0 {
		return 100.0
	}

	if candidateYears >= requiredYears {
		return 100.0
	}

	return (float64(candidateYears) / float64(requiredYears)) * 100.0
}

// scoreSkills intersects the candidate's skill set with the comma-separated
// required skills, case-insensitively. The denominator is deliberately the
// candidate's skill count rather than the required count: a candidate whose
// every listed skill is relevant scores higher than one padding the list.
func scoreSkills(candidateSkills []string, requiredSkills string) float64 {
	if strings.TrimSpace(requiredSkills) == "" {
		return 100.0
	}

	candidate := make(map[string]struct{}, len(candidateSkills))
	for _, skill := range candidateSkills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" {
			candidate[skill] = struct{}{}
		}
	}

	if len(candidate) == 0 {
		return 0.0
	}

	matches := 0
	seen := make(map[string]struct{})
	for _, skill := range strings.Split(requiredSkills, ",") {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}

		if _, ok := candidate[skill]; ok {
			matches++
		}
	}

	return (float64(matches) / float64(len(candidate))) * 100.0
}

// scoreDiploma compares diploma ranks (PhD=8, Master/Engineer=5, Bachelor=3,
// BTS/DUT=2, High School Diploma=1). An unset required rank means any
// candidate satisfies the offer.
func scoreDiploma(candidateRank, requiredRank int) float64 {
	if requiredRank <= 0 {
		return 100.0
	}

	if candidateRank >= requiredRank {
		return 100.0
	}

	if candidateRank < 0 {
		candidateRank = 0
	}

	return (float64(candidateRank) / float64(requiredRank)) * 100.0
}
