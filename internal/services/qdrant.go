package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
)

type QdrantService interface {
	InitCollection() error
	UpsertStudent(ctx context.Context, studentID string, faculty, category, text string, embedding []float32) error
	SearchStudents(ctx context.Context, queryEmbedding []float32, faculty string, limit int) ([]StudentHit, error)
	DeleteStudent(ctx context.Context, studentID string) error
}

// StudentHit is one similarity match from the profile index.
type StudentHit struct {
	StudentID string
	Score     float32
	Faculty   string
	Category  string
	Text      string
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QdrantService, error) {
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

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection() error {
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

// UpsertStudent implements QdrantService. The point id is the student id so
// reindexing replaces the previous vector instead of accumulating copies.
func (q *qdrantService) UpsertStudent(ctx context.Context, studentID string, faculty, category, text string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(studentID),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"student_id": studentID,
			"faculty":    faculty,
			"category":   category,
			"text":       text,
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

// SearchStudents implements QdrantService.
func (q *qdrantService) SearchStudents(ctx context.Context, queryEmbedding []float32, faculty string, limit int) ([]StudentHit, error) {
	var filter *qdrant.Filter
	if faculty != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("faculty", faculty),
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

	var hits []StudentHit
	for _, point := range searchResult {
		payload := point.Payload

		hit := StudentHit{Score: point.Score}

		if id, ok := payload["student_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				hit.StudentID = val.StringValue
			}
		}
		if fac, ok := payload["faculty"]; ok {
			if val, ok := fac.GetKind().(*qdrant.Value_StringValue); ok {
				hit.Faculty = val.StringValue
			}
		}
		if cat, ok := payload["category"]; ok {
			if val, ok := cat.GetKind().(*qdrant.Value_StringValue); ok {
				hit.Category = val.StringValue
			}
		}
		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				hit.Text = val.StringValue
			}
		}

		hits = append(hits, hit)
	}

	return hits, nil
}

// DeleteStudent implements QdrantService.
func (q *qdrantService) DeleteStudent(ctx context.Context, studentID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("student_id", studentID),
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
		return fmt.Errorf("failed to delete student: %w", err)
	}

	return nil
}
