package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

type ProfileIndexService interface {
	InitCollection() error
	UpsertProfile(ctx context.Context, userID string, summary string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, excludeUserID string, limit int) ([]SimilarProfile, error)
	DeleteProfile(ctx context.Context, userID string) error
}

// SimilarProfile is one hit from the profile similarity search.
type SimilarProfile struct {
	UserID  string  `json:"userId"`
	Summary string  `json:"summary"`
	Score   float32 `json:"score"`
}

type profileIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewProfileIndexService(urlStr, apiKey, collectionName string) (ProfileIndexService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
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

	return &profileIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 dimension
	}, nil
}

// InitCollection implements ProfileIndexService.
func (q *profileIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertProfile implements ProfileIndexService. Re-analyzing a profile
// replaces its previous point rather than accumulating duplicates.
func (q *profileIndexService) UpsertProfile(ctx context.Context, userID string, summary string, embedding []float32) error {
	if err := q.DeleteProfile(ctx, userID); err != nil {
		log.Printf("⚠️  Failed to clear previous index entry for %s: %v\n", userID, err)
	}

	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"user_id": userID,
			"summary": summary,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements ProfileIndexService.
func (q *profileIndexService) SearchSimilar(ctx context.Context, queryEmbedding []float32, excludeUserID string, limit int) ([]SimilarProfile, error) {
	var filter *qdrant.Filter
	if excludeUserID != "" {
		filter = &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewMatch("user_id", excludeUserID),
			},
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []SimilarProfile
	for _, point := range searchResult {
		payload := point.Payload

		result := SimilarProfile{
			Score: point.Score,
		}

		if userID, ok := payload["user_id"]; ok {
			if val, ok := userID.GetKind().(*qdrant.Value_StringValue); ok {
				result.UserID = val.StringValue
			}
		}

		if summary, ok := payload["summary"]; ok {
			if val, ok := summary.GetKind().(*qdrant.Value_StringValue); ok {
				result.Summary = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteProfile implements ProfileIndexService.
func (q *profileIndexService) DeleteProfile(ctx context.Context, userID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("user_id", userID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete profile from index: %w", err)
	}

	return nil
}
