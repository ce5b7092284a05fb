package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/google/uuid"

	"ndu/talent-platform/internal/repositories"
)

// ScoreResult is the parsed scoring response. The score is relative to the
// cohort passed on that call; repeated calls over an unchanged cohort are
// not guaranteed to return the same number (the model is non-deterministic).
type ScoreResult struct {
	TalentScore float64 `json:"talent_score"`
	Reasoning   string  `json:"reasoning"`
}

type ScorerService interface {
	// RecomputeScore builds the cohort, scores targetID against it and
	// persists the result. At most one recomputation runs per student;
	// concurrent triggers coalesce onto the in-flight call.
	RecomputeScore(ctx context.Context, targetID uuid.UUID) (*ScoreResult, error)
}

type scoreCall struct {
	done   chan struct{}
	result *ScoreResult
	err    error
}

type scorerService struct {
	studentRepo   repositories.StudentRepository
	cohortService CohortService
	geminiService GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int

	mu       sync.Mutex
	inflight map[uuid.UUID]*scoreCall
}

func NewScorerService(
	studentRepo repositories.StudentRepository,
	cohortService CohortService,
	geminiService GeminiService,
	maxRetries int,
) ScorerService {
	return &scorerService{
		studentRepo:   studentRepo,
		cohortService: cohortService,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		inflight:      make(map[uuid.UUID]*scoreCall),
	}
}

// RecomputeScore implements ScorerService.
func (s *scorerService) RecomputeScore(ctx context.Context, targetID uuid.UUID) (*ScoreResult, error) {
	s.mu.Lock()
	if call, ok := s.inflight[targetID]; ok {
		s.mu.Unlock()
		select {
		case <-call.done:
			return call.result, call.err
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		}
	}

	call := &scoreCall{done: make(chan struct{})}
	s.inflight[targetID] = call
	s.mu.Unlock()

	call.result, call.err = s.recompute(ctx, targetID)

	s.mu.Lock()
	delete(s.inflight, targetID)
	s.mu.Unlock()
	close(call.done)

	return call.result, call.err
}

func (s *scorerService) recompute(ctx context.Context, targetID uuid.UUID) (*ScoreResult, error) {
	log.Printf("🔄 Recomputing talent score for student %s\n", targetID)

	cohort, err := s.cohortService.BuildCohort(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to build cohort: %w", err)
	}

	found := false
	for _, entry := range cohort {
		if entry.ID == targetID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("student %s: %w", targetID, repositories.ErrNotFound)
	}

	cohortJSON, err := json.Marshal(cohort)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize cohort: %w", err)
	}

	prompt := s.promptBuilder.BuildTalentScorePrompt(targetID.String(), string(cohortJSON))

	response, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate score: %w", err)
	}

	var result ScoreResult
	if err := parseJSONResponse(response, &result); err != nil {
		return nil, fmt.Errorf("failed to parse score response: %w", err)
	}

	validated, err := validateScore(result.TalentScore)
	if err != nil {
		return nil, fmt.Errorf("rejected score response: %w", err)
	}
	result.TalentScore = validated

	if err := s.studentRepo.UpdateScore(targetID, result.TalentScore, result.Reasoning); err != nil {
		return nil, fmt.Errorf("failed to persist score: %w", err)
	}

	log.Printf("✅ Talent score for student %s updated to %.1f\n", targetID, result.TalentScore)
	return &result, nil
}

// validateScore rejects non-finite model output and clamps the rest to
// [0,100]; the upstream schema constraint alone is not trusted before a
// value reaches the store.
func validateScore(score float64) (float64, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("non-finite talent score %v", score)
	}
	if score < 0 {
		return 0, nil
	}
	if score > 100 {
		return 100, nil
	}
	return score, nil
}
