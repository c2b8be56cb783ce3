package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cv-match/internal/models"
	"cv-match/internal/repositories"
	"cv-match/internal/services"
)

type CVHandler struct {
	cvRepo       repositories.CVRepository
	offerRepo    repositories.JobOfferRepository
	matchingRepo repositories.MatchingRepository
	storage      services.StorageService
	matcher      services.MatcherService
	vector       services.VectorService
	maxFileSize  int64
}

func NewCVHandler(
	cvRepo repositories.CVRepository,
	offerRepo repositories.JobOfferRepository,
	matchingRepo repositories.MatchingRepository,
	storage services.StorageService,
	matcher services.MatcherService,
	vector services.VectorService,
	maxFileSize int64,
) *CVHandler {
	return &CVHandler{
		cvRepo:       cvRepo,
		offerRepo:    offerRepo,
		matchingRepo: matchingRepo,
		storage:      storage,
		matcher:      matcher,
		vector:       vector,
		maxFileSize:  maxFileSize,
	}
}

// HandleUpload handles POST /cvs (multipart form: title + file)
func (h *CVHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	title := c.FormValue("title")
	if title == "" {
		title = file.Filename
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storage.SaveFile(file)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported file format. Accepted: .pdf, .docx, .doc",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CV file: %v", err),
		})
	}

	cv := models.CV{
		ID:               uuid.New(),
		Title:            title,
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.cvRepo.Create(&cv); err != nil {
		// Cleanup the stored file if the database insert fails
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save CV record",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadCVResponse{
		ID:           cv.ID.String(),
		Title:        cv.Title,
		Filename:     cv.Filename,
		OriginalName: cv.OriginalFileName,
	})
}

// HandleList handles GET /cvs
func (h *CVHandler) HandleList(c *fiber.Ctx) error {
	cvs, err := h.cvRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list CVs",
		})
	}

	return c.JSON(cvs)
}

// HandleGet handles GET /cvs/:id
func (h *CVHandler) HandleGet(c *fiber.Ctx) error {
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	cv, err := h.cvRepo.FindByID(cvID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV not found",
		})
	}

	return c.JSON(cv)
}

// HandleDelete handles DELETE /cvs/:id
func (h *CVHandler) HandleDelete(c *fiber.Ctx) error {
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	cv, err := h.cvRepo.FindByID(cvID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV not found",
		})
	}

	if err := h.cvRepo.Delete(cvID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete CV",
		})
	}

	// Best effort cleanup
	h.storage.DeleteFile(cv.Filename)
	if h.vector != nil {
		h.vector.DeleteCV(c.Context(), cvID)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleScore handles POST /cvs/:id/score. Runs the full scoring pipeline
// synchronously; the caller bears the model latency.
func (h *CVHandler) HandleScore(c *fiber.Ctx) error {
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	var req models.ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	offerID, err := uuid.Parse(req.JobOfferID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_offer_id format",
		})
	}

	cv, err := h.cvRepo.FindByID(cvID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV not found",
		})
	}

	offer, err := h.offerRepo.FindByID(offerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job offer not found",
		})
	}

	matching, err := h.matcher.Score(c.Context(), offer.ID, cv.ID)
	if err != nil {
		return scoringError(c, err)
	}

	// Reload: the pipeline cached the extracted profile on the CV record.
	if refreshed, err := h.cvRepo.FindByID(cvID); err == nil {
		cv = refreshed
	}

	return c.JSON(models.ScoreResponse{
		MatchingID:   matching.ID.String(),
		Score:        matching.Score,
		ScoreDetails: []byte(matching.ScoreDetails),
		EvaluatedAt:  matching.EvaluatedAt,
		JobOffer:     offer,
		CV:           cv,
	})
}

// HandleMatchedJobOffers handles GET /cvs/:id/matched-job-offers
func (h *CVHandler) HandleMatchedJobOffers(c *fiber.Ctx) error {
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	if _, err := h.cvRepo.FindByID(cvID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV not found",
		})
	}

	minScore := c.QueryFloat("min_score", 0)

	matchings, err := h.matchingRepo.FindByCV(cvID, minScore)
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
			JobOffer:     &m.JobOffer,
		})
	}

	return c.JSON(responses)
}

// HandleSearch handles POST /cvs/search (semantic profile search)
func (h *CVHandler) HandleSearch(c *fiber.Ctx) error {
	if h.vector == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "CV search is not configured",
		})
	}

	var req models.CVSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	limit := req.Limit
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	results, err := h.vector.SearchCVs(c.Context(), req.Query, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search CVs",
		})
	}

	return c.JSON(results)
}

// scoringError maps pipeline failures to a single terminal error per stage.
func scoringError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnsupportedFormat),
		errors.Is(err, services.ErrNoTextContent):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrExtraction),
		errors.Is(err, services.ErrAdjustment):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to compute score",
		})
	}
}
