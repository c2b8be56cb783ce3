package services

import (
	"testing"

	"cv-match/internal/models"
)

func TestScoreExperience(t *testing.T) {
	cases := []struct {
		name      string
		candidate int
		required  int
		want      float64
	}{
		{"no minimum required", 3, 0, 100.0},
		{"negative requirement treated as no minimum", 0, -2, 100.0},
		{"zero years against no minimum", 0, 0, 100.0},
		{"exactly meets requirement", 4, 4, 100.0},
		{"exceeds requirement", 10, 4, 100.0},
		{"half of requirement", 2, 4, 50.0},
		{"quarter of requirement", 1, 4, 25.0},
		{"no experience at all", 0, 5, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scoreExperience(tc.candidate, tc.required)
			if got != tc.want {
				t.Fatalf("scoreExperience(%d, %d) = %v, want %v", tc.candidate, tc.required, got, tc.want)
			}
		})
	}
}

func TestScoreSkills(t *testing.T) {
	cases := []struct {
		name      string
		candidate []string
		required  string
		want      float64
	}{
		{"no required skills", []string{"go", "python"}, "", 100.0},
		{"blank required skills", []string{"go"}, "   ", 100.0},
		{"zero candidate skills", nil, "Python, Rust", 0.0},
		{"empty candidate skills", []string{}, "Python", 0.0},
		{"case insensitive full match", []string{"Python"}, "python", 100.0},
		{"one of two candidate skills relevant", []string{"python", "go"}, "Python, Rust", 50.0},
		{"whitespace around required skills", []string{"go"}, "  Go ,  Rust  ", 100.0},
		{"no overlap", []string{"php", "laravel"}, "Go, Rust", 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scoreSkills(tc.candidate, tc.required)
			if got != tc.want {
				t.Fatalf("scoreSkills(%v, %q) = %v, want %v", tc.candidate, tc.required, got, tc.want)
			}
		})
	}
}

// The skill denominator is the candidate's skill count, not the required
// count. A focused two-skill candidate beats a ten-skill generalist even when
// both cover every required skill.
func TestScoreSkillsRewardsFocusedCandidates(t *testing.T) {
	required := "Go, Postgres"

	focused := scoreSkills([]string{"Go", "Postgres"}, required)
	generalist := scoreSkills([]string{"Go", "Postgres", "PHP", "Excel", "Photoshop"}, required)

	if focused != 100.0 {
		t.Fatalf("focused candidate = %v, want 100", focused)
	}
	if generalist != 40.0 {
		t.Fatalf("generalist candidate = %v, want 40", generalist)
	}
}

func TestScoreDiploma(t *testing.T) {
	cases := []struct {
		name      string
		candidate int
		required  int
		want      float64
	}{
		{"requirement unset", 0, 0, 100.0},
		{"requirement unset with high rank", 8, 0, 100.0},
		{"negative requirement treated as unset", 3, -1, 100.0},
		{"exactly meets requirement", 5, 5, 100.0},
		{"exceeds requirement", 8, 5, 100.0},
		{"bachelor against master", 3, 5, 60.0},
		{"unknown diploma against requirement", 0, 5, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scoreDiploma(tc.candidate, tc.required)
			if got != tc.want {
				t.Fatalf("scoreDiploma(%d, %d) = %v, want %v", tc.candidate, tc.required, got, tc.want)
			}
		})
	}
}

func TestComputeDeterministicScores(t *testing.T) {
	profile := &CandidateProfile{
		Skills:         []string{"python", "go"},
		DiplomaRanking: 3,
		YearExperience: 2,
	}
	offer := &models.JobOffer{
		RequiredSkills:         "Python, Rust",
		RequiredDiplomaRanking: 5,
		RequiredExperience:     4,
	}

	scores := ComputeDeterministicScores(profile, offer)

	if scores.Experience != 50.0 {
		t.Fatalf("experience = %v, want 50", scores.Experience)
	}
	if scores.Skills != 50.0 {
		t.Fatalf("skills = %v, want 50", scores.Skills)
	}
	if scores.Diploma != 60.0 {
		t.Fatalf("diploma = %v, want 60", scores.Diploma)
	}
}
