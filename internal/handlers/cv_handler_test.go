package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"cv-match/internal/models"
	"cv-match/internal/repositories"
	"cv-match/internal/services"
)

type memCVRepo struct {
	cvs map[uuid.UUID]*models.CV
}

func newMemCVRepo() *memCVRepo {
	return &memCVRepo{cvs: make(map[uuid.UUID]*models.CV)}
}

func (m *memCVRepo) Create(cv *models.CV) error {
	m.cvs[cv.ID] = cv
	return nil
}

func (m *memCVRepo) FindByID(id uuid.UUID) (*models.CV, error) {
	cv, ok := m.cvs[id]
	if !ok {
		return nil, fmt.Errorf("cv not found")
	}
	return cv, nil
}

func (m *memCVRepo) FindAll() ([]models.CV, error) {
	all := make([]models.CV, 0, len(m.cvs))
	for _, cv := range m.cvs {
		all = append(all, *cv)
	}
	return all, nil
}

func (m *memCVRepo) Delete(id uuid.UUID) error {
	if _, ok := m.cvs[id]; !ok {
		return fmt.Errorf("cv not found")
	}
	delete(m.cvs, id)
	return nil
}

func (m *memCVRepo) SaveProfile(id uuid.UUID, profile *repositories.ProfileUpdate) error {
	return nil
}

type stubMatcher struct {
	matching *models.Matching
	err      error
}

func (s *stubMatcher) Score(ctx context.Context, jobOfferID, cvID uuid.UUID) (*models.Matching, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.matching, nil
}

func cvTestApp(cvRepo *memCVRepo, offerRepo *memOfferRepo, matcher services.MatcherService, storage services.StorageService) *fiber.App {
	app := fiber.New()
	handler := NewCVHandler(cvRepo, offerRepo, &memMatchingRepo{}, storage, matcher, nil, 1<<20)

	app.Post("/cvs", handler.HandleUpload)
	app.Post("/cvs/search", handler.HandleSearch)
	app.Post("/cvs/:id/score", handler.HandleScore)

	return app
}

func TestHandleScore(t *testing.T) {
	cvRepo := newMemCVRepo()
	cv := &models.CV{ID: uuid.New(), Title: "Jane Doe", FilePath: "uploads/cv.pdf"}
	cvRepo.Create(cv)

	offerRepo := newMemOfferRepo()
	offer := &models.JobOffer{ID: uuid.New(), Title: "Backend Engineer"}
	offerRepo.Create(offer)

	matcher := &stubMatcher{matching: &models.Matching{
		ID:           uuid.New(),
		JobOfferID:   offer.ID,
		CVID:         cv.ID,
		Score:        76.25,
		ScoreDetails: datatypes.JSON([]byte(`{"skills":80}`)),
		EvaluatedAt:  time.Now(),
	}}

	app := cvTestApp(cvRepo, offerRepo, matcher, services.NewStorageService(t.TempDir()))

	resp := postJSON(t, app, "/cvs/"+cv.ID.String()+"/score", models.ScoreRequest{
		JobOfferID: offer.ID.String(),
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body models.ScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Score != 76.25 {
		t.Fatalf("score = %v, want 76.25", body.Score)
	}
	if body.JobOffer == nil || body.CV == nil {
		t.Fatal("response must embed the offer and the cv")
	}
}

func TestHandleScoreErrorMapping(t *testing.T) {
	cvRepo := newMemCVRepo()
	cv := &models.CV{ID: uuid.New(), FilePath: "uploads/cv.pdf"}
	cvRepo.Create(cv)

	offerRepo := newMemOfferRepo()
	offer := &models.JobOffer{ID: uuid.New(), Title: "X"}
	offerRepo.Create(offer)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"empty document", fmt.Errorf("%w: cv.pdf", services.ErrNoTextContent), fiber.StatusUnprocessableEntity},
		{"bad format", fmt.Errorf("%w: .txt", services.ErrUnsupportedFormat), fiber.StatusUnprocessableEntity},
		{"extraction failure", fmt.Errorf("%w: timeout", services.ErrExtraction), fiber.StatusBadGateway},
		{"adjustment failure", fmt.Errorf("%w: timeout", services.ErrAdjustment), fiber.StatusBadGateway},
		{"unknown failure", fmt.Errorf("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := cvTestApp(cvRepo, offerRepo, &stubMatcher{err: tc.err}, services.NewStorageService(t.TempDir()))

			resp := postJSON(t, app, "/cvs/"+cv.ID.String()+"/score", models.ScoreRequest{
				JobOfferID: offer.ID.String(),
			})
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
		})
	}
}

func TestHandleScoreUnknownIDs(t *testing.T) {
	app := cvTestApp(newMemCVRepo(), newMemOfferRepo(), &stubMatcher{}, services.NewStorageService(t.TempDir()))

	resp := postJSON(t, app, "/cvs/"+uuid.NewString()+"/score", models.ScoreRequest{
		JobOfferID: uuid.NewString(),
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	resp = postJSON(t, app, "/cvs/"+uuid.NewString()+"/score", models.ScoreRequest{
		JobOfferID: "not-a-uuid",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleUpload(t *testing.T) {
	cvRepo := newMemCVRepo()
	app := cvTestApp(cvRepo, newMemOfferRepo(), &stubMatcher{}, services.NewStorageService(t.TempDir()))

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("title", "Jane Doe")
	part, err := writer.CreateFormFile("file", "resume.pdf")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("%PDF-1.4 fake"))
	writer.Close()

	req := httptest.NewRequest("POST", "/cvs", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var body models.UploadCVResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Title != "Jane Doe" || body.OriginalName != "resume.pdf" {
		t.Fatalf("unexpected response: %+v", body)
	}
	if len(cvRepo.cvs) != 1 {
		t.Fatal("cv record not persisted")
	}
}

func TestHandleUploadRejectsUnsupportedFormat(t *testing.T) {
	app := cvTestApp(newMemCVRepo(), newMemOfferRepo(), &stubMatcher{}, services.NewStorageService(t.TempDir()))

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("plain text"))
	writer.Close()

	req := httptest.NewRequest("POST", "/cvs", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleSearchWithoutVectorStore(t *testing.T) {
	app := cvTestApp(newMemCVRepo(), newMemOfferRepo(), &stubMatcher{}, services.NewStorageService(t.TempDir()))

	resp := postJSON(t, app, "/cvs/search", models.CVSearchRequest{Query: "golang backend"})
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}
