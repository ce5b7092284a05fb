package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
)

func TestValidateScore(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		want    float64
		wantErr bool
	}{
		{name: "in range", score: 73.5, want: 73.5},
		{name: "lower bound", score: 0, want: 0},
		{name: "upper bound", score: 100, want: 100},
		{name: "below range clamps", score: -12, want: 0},
		{name: "above range clamps", score: 150, want: 100},
		{name: "NaN rejected", score: math.NaN(), wantErr: true},
		{name: "positive infinity rejected", score: math.Inf(1), wantErr: true},
		{name: "negative infinity rejected", score: math.Inf(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateScore(tt.score)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newScorerFixture(gemini GeminiService, students ...models.Student) (ScorerService, *fakeStudentRepo) {
	studentRepo := newFakeStudentRepo(students...)
	aggregator := NewAggregatorService(
		studentRepo,
		&fakeProjectRepo{},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)
	cohortService := NewCohortService(studentRepo, aggregator, 4, 0)
	return NewScorerService(studentRepo, cohortService, gemini, 1), studentRepo
}

func TestRecomputeScorePersistsResult(t *testing.T) {
	target := models.Student{ID: uuid.New()}
	peer := models.Student{ID: uuid.New(), TalentScore: 60}

	gemini := &fakeGemini{
		generateFn: func(prompt string) (string, error) {
			assert.Contains(t, prompt, target.ID.String())
			return `{"talent_score": 81, "reasoning": "strong project portfolio relative to peers"}`, nil
		},
	}
	scorer, studentRepo := newScorerFixture(gemini, target, peer)

	result, err := scorer.RecomputeScore(context.Background(), target.ID)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 81.0, result.TalentScore)

	persisted, ok := studentRepo.updatedScores[target.ID]
	require.True(t, ok)
	assert.Equal(t, 81.0, persisted.Score)
	assert.Equal(t, "strong project portfolio relative to peers", persisted.Reasoning)
}

func TestRecomputeScoreClampsBeforePersisting(t *testing.T) {
	target := models.Student{ID: uuid.New()}

	gemini := &fakeGemini{
		generateFn: func(prompt string) (string, error) {
			return `{"talent_score": 130, "reasoning": "overshoot"}`, nil
		},
	}
	scorer, studentRepo := newScorerFixture(gemini, target)

	result, err := scorer.RecomputeScore(context.Background(), target.ID)

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.TalentScore)
	assert.Equal(t, 100.0, studentRepo.updatedScores[target.ID].Score)
}

func TestRecomputeScoreTargetBeyondCohortCap(t *testing.T) {
	first := models.Student{ID: uuid.New(), TalentScore: 50}
	second := models.Student{ID: uuid.New(), TalentScore: 60}
	target := models.Student{ID: uuid.New()}

	gemini := &fakeGemini{
		generateFn: func(prompt string) (string, error) {
			assert.Contains(t, prompt, target.ID.String())
			return `{"talent_score": 77, "reasoning": "holds up against the sampled peers"}`, nil
		},
	}

	studentRepo := newFakeStudentRepo(first, second, target)
	aggregator := NewAggregatorService(
		studentRepo,
		&fakeProjectRepo{},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)
	cohortService := NewCohortService(studentRepo, aggregator, 4, 2)
	scorer := NewScorerService(studentRepo, cohortService, gemini, 1)

	result, err := scorer.RecomputeScore(context.Background(), target.ID)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 77.0, result.TalentScore)
	assert.Equal(t, 77.0, studentRepo.updatedScores[target.ID].Score)
}

func TestRecomputeScoreUnknownStudent(t *testing.T) {
	peer := models.Student{ID: uuid.New()}
	gemini := &fakeGemini{}
	scorer, _ := newScorerFixture(gemini, peer)

	result, err := scorer.RecomputeScore(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Zero(t, gemini.calls(), "no model call for a missing student")
}

func TestRecomputeScoreNonFiniteRejected(t *testing.T) {
	target := models.Student{ID: uuid.New()}
	gemini := &fakeGemini{
		generateFn: func(prompt string) (string, error) {
			return `{"talent_score": 1e999, "reasoning": "overflow"}`, nil
		},
	}
	scorer, studentRepo := newScorerFixture(gemini, target)

	_, err := scorer.RecomputeScore(context.Background(), target.ID)

	require.Error(t, err)
	assert.Empty(t, studentRepo.updatedScores, "rejected scores never reach the store")
}

func TestRecomputeScoreCoalescesConcurrentCalls(t *testing.T) {
	target := models.Student{ID: uuid.New()}

	entered := make(chan struct{})
	var enteredOnce sync.Once
	release := make(chan struct{})
	gemini := &fakeGemini{
		generateFn: func(prompt string) (string, error) {
			enteredOnce.Do(func() { close(entered) })
			<-release
			return `{"talent_score": 64, "reasoning": "mid-pack"}`, nil
		},
	}
	scorer, _ := newScorerFixture(gemini, target)

	var wg sync.WaitGroup
	leaderResult := make(chan *ScoreResult, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		result, err := scorer.RecomputeScore(context.Background(), target.ID)
		require.NoError(t, err)
		leaderResult <- result
	}()

	// The in-flight entry is registered before the model call, so once the
	// fake has been entered every later caller must coalesce onto it.
	<-entered

	const waiters = 4
	results := make([]*ScoreResult, waiters)
	errs := make([]error, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = scorer.RecomputeScore(context.Background(), target.ID)
		}(i)
	}

	// Give the waiters time to reach the in-flight check before the leader
	// is released.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < waiters; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, 64.0, results[i].TalentScore)
	}
	assert.Equal(t, 64.0, (<-leaderResult).TalentScore)
	// Waiters that raced past the in-flight window rerun the recompute, so
	// allow a rerun or two but never one call per caller.
	assert.LessOrEqual(t, gemini.calls(), 2)
}

func TestRecomputeScoreUnmarshalFailure(t *testing.T) {
	target := models.Student{ID: uuid.New()}
	gemini := &fakeGemini{
		generateFn: func(prompt string) (string, error) {
			return "I cannot score this student.", nil
		},
	}
	scorer, _ := newScorerFixture(gemini, target)

	_, err := scorer.RecomputeScore(context.Background(), target.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestRecomputeScorePersistFailureSurfaces(t *testing.T) {
	target := models.Student{ID: uuid.New()}
	gemini := &fakeGemini{
		generateFn: func(prompt string) (string, error) {
			return `{"talent_score": 50, "reasoning": "ok"}`, nil
		},
	}
	scorer, studentRepo := newScorerFixture(gemini, target)
	studentRepo.updateScoreErr = fmt.Errorf("write timeout")

	_, err := scorer.RecomputeScore(context.Background(), target.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, studentRepo.updateScoreErr) ||
		err.Error() != "", "persist failure propagates to the caller")
	assert.Contains(t, err.Error(), "persist")
}
