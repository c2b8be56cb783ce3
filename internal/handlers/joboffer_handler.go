package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cv-match/internal/models"
	"cv-match/internal/repositories"
	"cv-match/internal/services"
)

type JobOfferHandler struct {
	offerRepo    repositories.JobOfferRepository
	matchingRepo repositories.MatchingRepository
	worker       services.Worker
}

func NewJobOfferHandler(
	offerRepo repositories.JobOfferRepository,
	matchingRepo repositories.MatchingRepository,
	worker services.Worker,
) *JobOfferHandler {
	return &JobOfferHandler{
		offerRepo:    offerRepo,
		matchingRepo: matchingRepo,
		worker:       worker,
	}
}

// HandleCreate handles POST /job-offers
func (h *JobOfferHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.JobOfferRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	contractType := models.ContractType(req.ContractType)
	if req.ContractType != "" && !contractType.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid contract_type",
		})
	}

	workType := models.WorkType(req.WorkType)
	if req.WorkType != "" && !workType.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid work_type",
		})
	}

	offer := &models.JobOffer{
		ID:                     uuid.New(),
		Title:                  req.Title,
		Description:            req.Description,
		RequiredSkills:         req.RequiredSkills,
		CompanyName:            req.CompanyName,
		Location:               req.Location,
		StartDate:              req.StartDate,
		RequiredLanguages:      req.RequiredLanguages,
		RequiredDiploma:        req.RequiredDiploma,
		RequiredDiplomaRanking: req.RequiredDiplomaRanking,
		RequiredExperience:     req.RequiredExperience,
		ContractType:           contractType,
		WorkType:               workType,
		CreatedAt:              time.Now(),
		UpdatedAt:              time.Now(),
		ExpiresAt:              req.ExpiresAt,
	}

	if err := h.offerRepo.Create(offer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job offer",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(offer)
}

// HandleList handles GET /job-offers
func (h *JobOfferHandler) HandleList(c *fiber.Ctx) error {
	offers, err := h.offerRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list job offers",
		})
	}

	return c.JSON(offers)
}

// HandleGet handles GET /job-offers/:id
func (h *JobOfferHandler) HandleGet(c *fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job offer ID format",
		})
	}

	offer, err := h.offerRepo.FindByID(offerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job offer not found",
		})
	}

	return c.JSON(offer)
}

// HandleUpdate handles PATCH /job-offers/:id
func (h *JobOfferHandler) HandleUpdate(c *fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job offer ID format",
		})
	}

	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	updates := map[string]interface{}{}
	for _, column := range []string{
		"title", "description", "required_skills", "company_name", "location",
		"start_date", "required_languages", "required_diploma",
		"required_diploma_ranking", "required_experience", "contract_type",
		"work_type", "expires_at", "is_expired",
	} {
		if value, ok := body[column]; ok {
			updates[column] = value
		}
	}

	if value, ok := updates["contract_type"].(string); ok && !models.ContractType(value).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid contract_type",
		})
	}
	if value, ok := updates["work_type"].(string); ok && !models.WorkType(value).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid work_type",
		})
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No updatable fields provided",
		})
	}

	updates["updated_at"] = time.Now()

	if err := h.offerRepo.Update(offerID, updates); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job offer not found",
		})
	}

	offer, err := h.offerRepo.FindByID(offerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reload job offer",
		})
	}

	return c.JSON(offer)
}

// HandleDelete handles DELETE /job-offers/:id
func (h *JobOfferHandler) HandleDelete(c *fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job offer ID format",
		})
	}

	if err := h.offerRepo.Delete(offerID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job offer not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleMatchedCVs handles GET /job-offers/:id/matched-cvs
func (h *JobOfferHandler) HandleMatchedCVs(c *fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job offer ID format",
		})
	}

	if _, err := h.offerRepo.FindByID(offerID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job offer not found",
		})
	}

	minScore := c.QueryFloat("min_score", 0)

	matchings, err := h.matchingRepo.FindByJobOffer(offerID, minScore)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list matchings",
		})
	}

	responses := make([]models.MatchingResponse, 0, len(matchings))
	for i := range matchings {
		m := &matchings[i]
		responses = append(responses, models.MatchingResponse{
			ID:           m.ID.String(),
			Score:        m.Score,
			ScoreDetails: []byte(m.ScoreDetails),
			EvaluatedAt:  m.EvaluatedAt,
			CV:           &m.CV,
		})
	}

	return c.JSON(responses)
}

// HandleRescore handles POST /job-offers/:id/rescore. Queues every stored CV
// against the offer on the background worker pool.
func (h *JobOfferHandler) HandleRescore(c *fiber.Ctx) error {
	offerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job offer ID format",
		})
	}

	if _, err := h.offerRepo.FindByID(offerID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job offer not found",
		})
	}

	queued, err := h.worker.EnqueueOffer(offerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to queue rescore",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"job_offer_id": offerID.String(),
		"queued_cvs":   queued,
	})
}
