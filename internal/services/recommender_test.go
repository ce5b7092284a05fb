package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
)

func newRecommenderFixture(gemini GeminiService, students ...models.Student) RecommenderService {
	aggregator := NewAggregatorService(
		newFakeStudentRepo(students...),
		&fakeProjectRepo{},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)
	return NewRecommenderService(aggregator, gemini, 1)
}

func TestRecommendReturnsThreeSuggestions(t *testing.T) {
	student := models.Student{ID: uuid.New(), FirstName: "Kamran"}

	gemini := &fakeGemini{
		generateFn: func(prompt string) (string, error) {
			assert.Contains(t, prompt, "Kamran")
			return `{"recommendations": ["Add a GitHub link", "Describe your thesis project", "List your certificates"]}`, nil
		},
	}
	recommender := newRecommenderFixture(gemini, student)

	recommendations, err := recommender.Recommend(context.Background(), student.ID)

	require.NoError(t, err)
	require.Len(t, recommendations, RecommendationCount)
	assert.Equal(t, "Add a GitHub link", recommendations[0])
}

func TestRecommendMissingStudent(t *testing.T) {
	gemini := &fakeGemini{}
	recommender := newRecommenderFixture(gemini)

	recommendations, err := recommender.Recommend(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Nil(t, recommendations)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Zero(t, gemini.calls())
}

func TestRecommendWrongCountRejected(t *testing.T) {
	student := models.Student{ID: uuid.New()}

	gemini := &fakeGemini{
		generateFn: func(prompt string) (string, error) {
			return `{"recommendations": ["only one"]}`, nil
		},
	}
	recommender := newRecommenderFixture(gemini, student)

	recommendations, err := recommender.Recommend(context.Background(), student.ID)

	require.Error(t, err)
	assert.Nil(t, recommendations)
	assert.Contains(t, err.Error(), "expected 3")
}
