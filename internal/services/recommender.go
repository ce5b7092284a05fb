package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"ndu/talent-platform/internal/repositories"
)

// RecommendationCount is how many improvement suggestions a profile gets.
const RecommendationCount = 3

type RecommenderService interface {
	Recommend(ctx context.Context, studentID uuid.UUID) ([]string, error)
}

type recommenderService struct {
	aggregator    AggregatorService
	geminiService GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewRecommenderService(
	aggregator AggregatorService,
	geminiService GeminiService,
	maxRetries int,
) RecommenderService {
	return &recommenderService{
		aggregator:    aggregator,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

type recommendationResponse struct {
	Recommendations []string `json:"recommendations"`
}

// Recommend implements RecommenderService.
func (r *recommenderService) Recommend(ctx context.Context, studentID uuid.UUID) ([]string, error) {
	snapshot, err := r.aggregator.Aggregate(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate profile: %w", err)
	}
	if snapshot == nil {
		return nil, fmt.Errorf("student %s: %w", studentID, repositories.ErrNotFound)
	}

	profileJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize profile: %w", err)
	}

	prompt := r.promptBuilder.BuildRecommendationPrompt(string(profileJSON))

	response, err := r.geminiService.GenerateTextWithRetry(ctx, prompt, 0.5, r.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	var parsed recommendationResponse
	if err := parseJSONResponse(response, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}

	if len(parsed.Recommendations) != RecommendationCount {
		return nil, fmt.Errorf("expected %d recommendations, got %d",
			RecommendationCount, len(parsed.Recommendations))
	}

	return parsed.Recommendations, nil
}
