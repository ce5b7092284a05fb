package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndu/talent-platform/internal/models"
)

func TestEnqueueStudentCreatesJob(t *testing.T) {
	jobRepo := &fakeScoreJobRepo{}
	worker := NewWorker(jobRepo, nil, 1)

	studentID := uuid.New()
	job, err := worker.EnqueueStudent(studentID)

	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, studentID, job.StudentID)
	assert.Equal(t, models.ScoreJobQueued, job.Status)
	require.Len(t, jobRepo.created, 1)
}

func TestEnqueueStudentDeduplicatesActiveJobs(t *testing.T) {
	jobRepo := &fakeScoreJobRepo{active: true}
	worker := NewWorker(jobRepo, nil, 1)

	job, err := worker.EnqueueStudent(uuid.New())

	require.NoError(t, err)
	assert.Nil(t, job)
	assert.Empty(t, jobRepo.created, "no duplicate row while a job is queued or running")
}

func TestEnqueueStudentActiveCheckFailure(t *testing.T) {
	jobRepo := &fakeScoreJobRepo{activeErr: errors.New("db down")}
	worker := NewWorker(jobRepo, nil, 1)

	job, err := worker.EnqueueStudent(uuid.New())

	require.Error(t, err)
	assert.Nil(t, job)
	assert.Empty(t, jobRepo.created)
}
