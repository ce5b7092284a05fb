package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
)

func newCohortFixture(students ...models.Student) CohortService {
	studentRepo := newFakeStudentRepo(students...)
	aggregator := NewAggregatorService(
		studentRepo,
		&fakeProjectRepo{},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)
	return NewCohortService(studentRepo, aggregator, 4, 0)
}

func TestBuildCohortPreservesEnumerationOrder(t *testing.T) {
	students := []models.Student{
		{ID: uuid.New(), TalentScore: 70},
		{ID: uuid.New(), TalentScore: 55},
		{ID: uuid.New(), TalentScore: 90},
	}

	cohort, err := newCohortFixture(students...).BuildCohort(context.Background(), students[0].ID)

	require.NoError(t, err)
	require.Len(t, cohort, len(students))
	for i, entry := range cohort {
		assert.Equal(t, students[i].ID, entry.ID)
		assert.Equal(t, students[i].TalentScore, entry.TalentScore)
	}
}

func TestBuildCohortCapsPool(t *testing.T) {
	students := make([]models.Student, 10)
	for i := range students {
		students[i] = models.Student{ID: uuid.New()}
	}

	studentRepo := newFakeStudentRepo(students...)
	aggregator := NewAggregatorService(
		studentRepo,
		&fakeProjectRepo{},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)
	cohortService := NewCohortService(studentRepo, aggregator, 4, 6)

	cohort, err := cohortService.BuildCohort(context.Background(), students[0].ID)

	require.NoError(t, err)
	assert.Len(t, cohort, 6)
}

func TestBuildCohortKeepsTargetUnderCap(t *testing.T) {
	students := make([]models.Student, 10)
	for i := range students {
		students[i] = models.Student{ID: uuid.New()}
	}
	target := students[9]

	studentRepo := newFakeStudentRepo(students...)
	aggregator := NewAggregatorService(
		studentRepo,
		&fakeProjectRepo{},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)
	cohortService := NewCohortService(studentRepo, aggregator, 4, 6)

	cohort, err := cohortService.BuildCohort(context.Background(), target.ID)

	require.NoError(t, err)
	require.Len(t, cohort, 6)
	found := false
	for _, entry := range cohort {
		if entry.ID == target.ID {
			found = true
		}
	}
	assert.True(t, found, "capped pool must still contain the target")
}

func TestBuildCohortExcludesArchived(t *testing.T) {
	active := models.Student{ID: uuid.New(), Status: models.StudentStatusApproved}
	archived := models.Student{ID: uuid.New(), Status: models.StudentStatusArchived}

	cohort, err := newCohortFixture(active, archived).BuildCohort(context.Background(), active.ID)

	require.NoError(t, err)
	require.Len(t, cohort, 1)
	assert.Equal(t, active.ID, cohort[0].ID)
}

func TestBuildCohortEnumerationFailure(t *testing.T) {
	studentRepo := newFakeStudentRepo()
	studentRepo.findAllErr = errors.New("db down")
	aggregator := NewAggregatorService(
		studentRepo,
		&fakeProjectRepo{},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)

	cohort, err := NewCohortService(studentRepo, aggregator, 4, 0).BuildCohort(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Nil(t, cohort)
}

func TestBuildCohortStudentDeletedMidBuild(t *testing.T) {
	student := models.Student{ID: uuid.New(), TalentScore: 42}

	// Enumeration sees the student, aggregation no longer does
	studentRepo := newFakeStudentRepo(student)
	studentRepo.findByIDFn = func(id uuid.UUID) (*models.Student, error) {
		return nil, repositories.ErrNotFound
	}
	aggregator := NewAggregatorService(
		studentRepo,
		&fakeProjectRepo{},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)

	cohort, err := NewCohortService(studentRepo, aggregator, 4, 0).BuildCohort(context.Background(), student.ID)

	require.NoError(t, err)
	require.Len(t, cohort, 1)
	assert.Equal(t, student.ID, cohort[0].ID)
	assert.Equal(t, 42.0, cohort[0].TalentScore)
	assert.NotNil(t, cohort[0].Projects)
}

func TestBuildCohortSerializesEmptySlices(t *testing.T) {
	student := models.Student{ID: uuid.New()}

	cohort, err := newCohortFixture(student).BuildCohort(context.Background(), student.ID)
	require.NoError(t, err)

	payload, err := json.Marshal(cohort)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"skills":[]`)
	assert.Contains(t, string(payload), `"projects":[]`)
	assert.NotContains(t, string(payload), "null")
}
