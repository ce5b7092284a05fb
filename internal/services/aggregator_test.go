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
)

func TestAggregateMissingStudent(t *testing.T) {
	aggregator := NewAggregatorService(
		newFakeStudentRepo(),
		&fakeProjectRepo{},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)

	snapshot, err := aggregator.Aggregate(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestAggregateChildFetchFailure(t *testing.T) {
	student := models.Student{ID: uuid.New(), FirstName: "Aysel"}

	aggregator := NewAggregatorService(
		newFakeStudentRepo(student),
		&fakeProjectRepo{err: errors.New("connection reset")},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)

	snapshot, err := aggregator.Aggregate(context.Background(), student.ID)

	require.Error(t, err)
	assert.Nil(t, snapshot)
	assert.Contains(t, err.Error(), "projects")
}

func TestAggregateEmptyCollectionsAreNonNil(t *testing.T) {
	student := models.Student{ID: uuid.New(), FirstName: "Murad"}

	aggregator := NewAggregatorService(
		newFakeStudentRepo(student),
		&fakeProjectRepo{},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)

	snapshot, err := aggregator.Aggregate(context.Background(), student.ID)

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.NotNil(t, snapshot.Projects)
	assert.NotNil(t, snapshot.Achievements)
	assert.NotNil(t, snapshot.Certificates)

	// The prompt payload must show empty arrays, not nulls
	payload, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"projects":[]`)
	assert.Contains(t, string(payload), `"achievements":[]`)
	assert.Contains(t, string(payload), `"certificates":[]`)
}

func TestAggregateIdempotentOverUnchangedProfile(t *testing.T) {
	student := models.Student{ID: uuid.New(), FirstName: "Tural", TalentScore: 67}
	projects := []models.Project{
		{ID: uuid.New(), OwnerID: student.ID, OwnerType: models.OwnerTypeStudent, Title: "Sensor network"},
	}

	aggregator := NewAggregatorService(
		newFakeStudentRepo(student),
		&fakeProjectRepo{projects: projects},
		&fakeAchievementRepo{},
		&fakeCertificateRepo{},
	)

	first, err := aggregator.Aggregate(context.Background(), student.ID)
	require.NoError(t, err)
	second, err := aggregator.Aggregate(context.Background(), student.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregateCollectsOwnedRecords(t *testing.T) {
	student := models.Student{ID: uuid.New(), FirstName: "Leyla"}
	other := uuid.New()

	projects := []models.Project{
		{ID: uuid.New(), OwnerID: student.ID, OwnerType: models.OwnerTypeStudent, Title: "Robotics club site"},
		{ID: uuid.New(), OwnerID: other, OwnerType: models.OwnerTypeStudent, Title: "Someone else's"},
	}
	achievements := []models.Achievement{
		{ID: uuid.New(), StudentID: student.ID, Name: "Olympiad finalist"},
	}

	aggregator := NewAggregatorService(
		newFakeStudentRepo(student),
		&fakeProjectRepo{projects: projects},
		&fakeAchievementRepo{achievements: achievements},
		&fakeCertificateRepo{},
	)

	snapshot, err := aggregator.Aggregate(context.Background(), student.ID)

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	require.Len(t, snapshot.Projects, 1)
	assert.Equal(t, "Robotics club site", snapshot.Projects[0].Title)
	require.Len(t, snapshot.Achievements, 1)
	assert.Empty(t, snapshot.Certificates)
}
