package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"cv-match/internal/models"
	"cv-match/internal/repositories"
)

type fakeCVRepo struct {
	cvs          map[uuid.UUID]*models.CV
	savedProfile *repositories.ProfileUpdate
	savedID      uuid.UUID
	saveErr      error
}

func newFakeCVRepo() *fakeCVRepo {
	return &fakeCVRepo{cvs: make(map[uuid.UUID]*models.CV)}
}

func (f *fakeCVRepo) Create(cv *models.CV) error {
	f.cvs[cv.ID] = cv
	return nil
}

func (f *fakeCVRepo) FindByID(id uuid.UUID) (*models.CV, error) {
	cv, ok := f.cvs[id]
	if !ok {
		return nil, fmt.Errorf("cv not found")
	}
	return cv, nil
}

func (f *fakeCVRepo) FindAll() ([]models.CV, error) {
	var all []models.CV
	for _, cv := range f.cvs {
		all = append(all, *cv)
	}
	return all, nil
}

func (f *fakeCVRepo) Delete(id uuid.UUID) error {
	delete(f.cvs, id)
	return nil
}

func (f *fakeCVRepo) SaveProfile(id uuid.UUID, profile *repositories.ProfileUpdate) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedID = id
	f.savedProfile = profile
	return nil
}

const extractionResponse = `{
	"name": "Jane Doe",
	"website": "https://janedoe.dev",
	"phone_number": "+33 6 00 00 00 00",
	"email": "jane@doe.dev",
	"description": "Backend engineer",
	"skills": ["Go", "Postgres"],
	"diploma": "Master",
	"diploma_ranking": 5,
	"year_experience": 7,
	"experiences": ["Led backend development at Acme for 5 years."],
	"languages": ["English", "French"],
	"certifications": ["CKA"]
}`

func TestExtractorParsesAndPersistsProfile(t *testing.T) {
	stub := &stubClient{response: "```json\n" + extractionResponse + "\n```"}
	repo := newFakeCVRepo()
	extractor := NewExtractorService(stub, repo)

	cvID := uuid.New()
	profile, err := extractor.Extract(context.Background(), cvID, "raw cv text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Name != "Jane Doe" {
		t.Fatalf("unexpected name: %q", profile.Name)
	}
	if profile.YearExperience != 7 || profile.DiplomaRanking != 5 {
		t.Fatalf("unexpected numeric fields: %+v", profile)
	}
	if profile.RawText != "raw cv text" {
		t.Fatalf("raw text not carried: %q", profile.RawText)
	}

	// Extraction caches the profile onto the CV record.
	if repo.savedID != cvID {
		t.Fatalf("profile saved for %s, want %s", repo.savedID, cvID)
	}
	if repo.savedProfile == nil || repo.savedProfile.Skills != "Go, Postgres" {
		t.Fatalf("unexpected saved profile: %+v", repo.savedProfile)
	}
}

func TestExtractorCoercesNegativeNumbers(t *testing.T) {
	stub := &stubClient{response: `{"name":"X","diploma_ranking":-3,"year_experience":-1}`}
	extractor := NewExtractorService(stub, newFakeCVRepo())

	profile, err := extractor.Extract(context.Background(), uuid.New(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.DiplomaRanking != 0 || profile.YearExperience != 0 {
		t.Fatalf("negative numerics not coerced to 0: %+v", profile)
	}
}

func TestExtractorWithoutProviderReturnsEmptyProfile(t *testing.T) {
	repo := newFakeCVRepo()
	extractor := NewExtractorService(nil, repo)

	profile, err := extractor.Extract(context.Background(), uuid.New(), "raw text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Name != "" || len(profile.Skills) != 0 || profile.YearExperience != 0 {
		t.Fatalf("expected empty profile, got %+v", profile)
	}
	if repo.savedProfile != nil {
		t.Fatalf("degraded mode must not persist a profile")
	}
}

func TestExtractorPropagatesModelError(t *testing.T) {
	stub := &stubClient{err: errors.New("network down")}
	extractor := NewExtractorService(stub, newFakeCVRepo())

	_, err := extractor.Extract(context.Background(), uuid.New(), "text")
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractorRejectsMalformedResponse(t *testing.T) {
	stub := &stubClient{response: "I could not find any structure here"}
	repo := newFakeCVRepo()
	extractor := NewExtractorService(stub, repo)

	_, err := extractor.Extract(context.Background(), uuid.New(), "text")
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
	if repo.savedProfile != nil {
		t.Fatalf("no partial profile may be persisted on failure")
	}
}

func TestExtractJSONStripsMarkdownFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"fenced object", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"object with chatter", "Sure! Here you go:\n{\"a\":1}\nHope it helps.", `{"a":1}`},
		{"array", `[1,2]`, `[1,2]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.in); got != tc.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
