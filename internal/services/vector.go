package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"cv-match/internal/llm"
)

// VectorService keeps a semantic index of extracted CV profiles so
// recruiters can search candidates with free-text queries.
type VectorService interface {
	InitCollection() error
	IndexCV(ctx context.Context, cvID uuid.UUID, title string, profile *CandidateProfile) error
	SearchCVs(ctx context.Context, query string, limit int) ([]CVSearchResult, error)
	DeleteCV(ctx context.Context, cvID uuid.UUID) error
}

type CVSearchResult struct {
	CVID    string  `json:"cv_id"`
	Title   string  `json:"title"`
	Score   float32 `json:"score"`
	Snippet string  `json:"snippet"`
}

type vectorService struct {
	client         *qdrant.Client
	embedder       llm.Embedder
	collectionName string
	vectorSize     uint64
}

func NewVectorService(urlStr, apiKey, collectionName string, vectorSize uint64, embedder llm.Embedder) (VectorService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, unless the URL says otherwise.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &vectorService{
		client:         client,
		embedder:       embedder,
		collectionName: collectionName,
		vectorSize:     vectorSize,
	}, nil
}

// InitCollection implements VectorService.
func (v *vectorService) InitCollection() error {
	ctx := context.Background()

	exists, err := v.client.CollectionExists(ctx, v.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = v.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: v.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     v.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// IndexCV implements VectorService. The point ID is derived from the CV ID
// so re-extraction overwrites the previous vector instead of accumulating.
func (v *vectorService) IndexCV(ctx context.Context, cvID uuid.UUID, title string, profile *CandidateProfile) error {
	text := profileText(title, profile)
	if text == "" {
		return nil
	}

	embedding, err := v.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed profile: %w", err)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(cvID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"cv_id": cvID.String(),
			"title": title,
			"text":  text,
		}),
	}

	_, err = v.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: v.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchCVs implements VectorService.
func (v *vectorService) SearchCVs(ctx context.Context, query string, limit int) ([]CVSearchResult, error) {
	embedding, err := v.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	points, err := v.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: v.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []CVSearchResult
	for _, point := range points {
		result := CVSearchResult{Score: point.Score}

		if value, ok := point.Payload["cv_id"]; ok {
			if s, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
				result.CVID = s.StringValue
			}
		}
		if value, ok := point.Payload["title"]; ok {
			if s, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
				result.Title = s.StringValue
			}
		}
		if value, ok := point.Payload["text"]; ok {
			if s, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
				result.Snippet = s.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteCV implements VectorService.
func (v *vectorService) DeleteCV(ctx context.Context, cvID uuid.UUID) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("cv_id", cvID.String()),
		},
	}

	_, err := v.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: v.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete cv vector: %w", err)
	}

	return nil
}

// profileText builds the short searchable digest of an extracted profile.
func profileText(title string, profile *CandidateProfile) string {
	parts := []string{
		title,
		profile.Description,
		strings.Join(profile.Skills, ", "),
		strings.Join(profile.Experiences, "\n"),
		strings.Join(profile.Certifications, ", "),
	}

	var kept []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}

	return strings.Join(kept, "\n")
}
