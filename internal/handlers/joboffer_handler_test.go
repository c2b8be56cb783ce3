package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cv-match/internal/models"
	"cv-match/internal/services"
)

type memOfferRepo struct {
	offers map[uuid.UUID]*models.JobOffer
}

func newMemOfferRepo() *memOfferRepo {
	return &memOfferRepo{offers: make(map[uuid.UUID]*models.JobOffer)}
}

func (m *memOfferRepo) Create(offer *models.JobOffer) error {
	m.offers[offer.ID] = offer
	return nil
}

func (m *memOfferRepo) FindByID(id uuid.UUID) (*models.JobOffer, error) {
	offer, ok := m.offers[id]
	if !ok {
		return nil, fmt.Errorf("job offer not found")
	}
	return offer, nil
}

func (m *memOfferRepo) FindAll() ([]models.JobOffer, error) {
	all := make([]models.JobOffer, 0, len(m.offers))
	for _, offer := range m.offers {
		all = append(all, *offer)
	}
	return all, nil
}

func (m *memOfferRepo) Update(id uuid.UUID, updates map[string]interface{}) error {
	offer, ok := m.offers[id]
	if !ok {
		return fmt.Errorf("job offer not found")
	}
	if title, ok := updates["title"].(string); ok {
		offer.Title = title
	}
	return nil
}

func (m *memOfferRepo) Delete(id uuid.UUID) error {
	if _, ok := m.offers[id]; !ok {
		return fmt.Errorf("job offer not found")
	}
	delete(m.offers, id)
	return nil
}

type memMatchingRepo struct {
	matchings []models.Matching
}

func (m *memMatchingRepo) Upsert(matching *models.Matching) error {
	m.matchings = append(m.matchings, *matching)
	return nil
}

func (m *memMatchingRepo) FindByJobOffer(jobOfferID uuid.UUID, minScore float64) ([]models.Matching, error) {
	var out []models.Matching
	for _, matching := range m.matchings {
		if matching.JobOfferID == jobOfferID && matching.Score >= minScore {
			out = append(out, matching)
		}
	}
	return out, nil
}

func (m *memMatchingRepo) FindByCV(cvID uuid.UUID, minScore float64) ([]models.Matching, error) {
	var out []models.Matching
	for _, matching := range m.matchings {
		if matching.CVID == cvID && matching.Score >= minScore {
			out = append(out, matching)
		}
	}
	return out, nil
}

type stubWorker struct {
	queued int
	offers []uuid.UUID
}

func (s *stubWorker) Start(ctx context.Context)           {}
func (s *stubWorker) Stop()                               {}
func (s *stubWorker) EnqueueTask(task services.MatchTask) {}

func (s *stubWorker) EnqueueOffer(id uuid.UUID) (int, error) {
	s.offers = append(s.offers, id)
	return s.queued, nil
}

func offerTestApp(offerRepo *memOfferRepo, matchingRepo *memMatchingRepo, worker *stubWorker) *fiber.App {
	app := fiber.New()
	handler := NewJobOfferHandler(offerRepo, matchingRepo, worker)

	app.Post("/job-offers", handler.HandleCreate)
	app.Get("/job-offers/:id", handler.HandleGet)
	app.Get("/job-offers/:id/matched-cvs", handler.HandleMatchedCVs)
	app.Post("/job-offers/:id/rescore", handler.HandleRescore)
	app.Delete("/job-offers/:id", handler.HandleDelete)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHandleCreateJobOffer(t *testing.T) {
	repo := newMemOfferRepo()
	app := offerTestApp(repo, &memMatchingRepo{}, &stubWorker{})

	resp := postJSON(t, app, "/job-offers", map[string]interface{}{
		"title":               "Backend Engineer",
		"required_skills":     "Go, Postgres",
		"contract_type":       "LONG_TERM",
		"work_type":           "REMOTE",
		"required_experience": 4,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var created models.JobOffer
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Title != "Backend Engineer" || created.ContractType != models.ContractLongTerm {
		t.Fatalf("unexpected offer: %+v", created)
	}
	if len(repo.offers) != 1 {
		t.Fatalf("offer not persisted")
	}
}

func TestHandleCreateJobOfferValidation(t *testing.T) {
	app := offerTestApp(newMemOfferRepo(), &memMatchingRepo{}, &stubWorker{})

	cases := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"missing title", map[string]interface{}{"required_skills": "Go"}},
		{"bad contract type", map[string]interface{}{"title": "X", "contract_type": "GIG"}},
		{"bad work type", map[string]interface{}{"title": "X", "work_type": "MOON"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, app, "/job-offers", tc.payload)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestHandleMatchedCVsFiltersByMinScore(t *testing.T) {
	repo := newMemOfferRepo()
	offer := &models.JobOffer{ID: uuid.New(), Title: "Backend Engineer"}
	repo.Create(offer)

	matchingRepo := &memMatchingRepo{}
	for _, score := range []float64{42.0, 87.5} {
		matchingRepo.Upsert(&models.Matching{
			ID:         uuid.New(),
			JobOfferID: offer.ID,
			CVID:       uuid.New(),
			Score:      score,
		})
	}

	app := offerTestApp(repo, matchingRepo, &stubWorker{})

	req := httptest.NewRequest("GET", "/job-offers/"+offer.ID.String()+"/matched-cvs?min_score=60", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var matched []models.MatchingResponse
	if err := json.NewDecoder(resp.Body).Decode(&matched); err != nil {
		t.Fatal(err)
	}
	if len(matched) != 1 || matched[0].Score != 87.5 {
		t.Fatalf("unexpected matchings: %+v", matched)
	}
}

func TestHandleRescore(t *testing.T) {
	repo := newMemOfferRepo()
	offer := &models.JobOffer{ID: uuid.New(), Title: "Backend Engineer"}
	repo.Create(offer)

	worker := &stubWorker{queued: 5}
	app := offerTestApp(repo, &memMatchingRepo{}, worker)

	req := httptest.NewRequest("POST", "/job-offers/"+offer.ID.String()+"/rescore", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["queued_cvs"] != float64(5) {
		t.Fatalf("queued_cvs = %v, want 5", body["queued_cvs"])
	}
	if len(worker.offers) != 1 || worker.offers[0] != offer.ID {
		t.Fatalf("rescore not queued for the offer")
	}
}

func TestHandleGetUnknownOffer(t *testing.T) {
	app := offerTestApp(newMemOfferRepo(), &memMatchingRepo{}, &stubWorker{})

	req := httptest.NewRequest("GET", "/job-offers/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/job-offers/not-a-uuid", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
