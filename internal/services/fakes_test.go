package services

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
)

var errFakeUnimplemented = errors.New("fake: not implemented")

type fakeStudentRepo struct {
	students        []models.Student
	findAllErr      error
	findByIDFn      func(id uuid.UUID) (*models.Student, error)
	findWithStories func() ([]models.Student, error)

	updatedScores map[uuid.UUID]struct {
		Score     float64
		Reasoning string
	}
	updateScoreErr error
}

func newFakeStudentRepo(students ...models.Student) *fakeStudentRepo {
	return &fakeStudentRepo{
		students: students,
		updatedScores: make(map[uuid.UUID]struct {
			Score     float64
			Reasoning string
		}),
	}
}

func (f *fakeStudentRepo) Create(student *models.Student) error { return errFakeUnimplemented }

func (f *fakeStudentRepo) FindByID(id uuid.UUID) (*models.Student, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	for i := range f.students {
		if f.students[i].ID == id {
			student := f.students[i]
			return &student, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeStudentRepo) FindAll(filter repositories.StudentFilter) ([]models.Student, error) {
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	return f.students, nil
}

func (f *fakeStudentRepo) FindWithStories() ([]models.Student, error) {
	if f.findWithStories != nil {
		return f.findWithStories()
	}
	var withStories []models.Student
	for _, s := range f.students {
		if s.SuccessStory != nil && *s.SuccessStory != "" {
			withStories = append(withStories, s)
		}
	}
	return withStories, nil
}

func (f *fakeStudentRepo) FindRankings(limit int) ([]models.Student, error) {
	return nil, errFakeUnimplemented
}

func (f *fakeStudentRepo) Update(student *models.Student) error { return errFakeUnimplemented }

func (f *fakeStudentRepo) UpdateStatus(id uuid.UUID, status models.StudentStatus) error {
	return errFakeUnimplemented
}

func (f *fakeStudentRepo) UpdateScore(id uuid.UUID, score float64, reasoning string) error {
	if f.updateScoreErr != nil {
		return f.updateScoreErr
	}
	f.updatedScores[id] = struct {
		Score     float64
		Reasoning string
	}{score, reasoning}
	return nil
}

func (f *fakeStudentRepo) Delete(id uuid.UUID) error { return errFakeUnimplemented }

type fakeProjectRepo struct {
	projects []models.Project
	err      error
}

func (f *fakeProjectRepo) Create(project *models.Project) error { return errFakeUnimplemented }
func (f *fakeProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	return nil, errFakeUnimplemented
}
func (f *fakeProjectRepo) FindByOwner(ownerID uuid.UUID, ownerType models.OwnerType) ([]models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	var owned []models.Project
	for _, p := range f.projects {
		if p.OwnerID == ownerID && p.OwnerType == ownerType {
			owned = append(owned, p)
		}
	}
	return owned, nil
}
func (f *fakeProjectRepo) FindOpenings() ([]models.Project, error) { return nil, errFakeUnimplemented }
func (f *fakeProjectRepo) Update(project *models.Project) error    { return errFakeUnimplemented }
func (f *fakeProjectRepo) Delete(id uuid.UUID) error               { return errFakeUnimplemented }

type fakeAchievementRepo struct {
	achievements []models.Achievement
	err          error
}

func (f *fakeAchievementRepo) Create(achievement *models.Achievement) error {
	return errFakeUnimplemented
}
func (f *fakeAchievementRepo) FindByID(id uuid.UUID) (*models.Achievement, error) {
	return nil, errFakeUnimplemented
}
func (f *fakeAchievementRepo) FindByStudent(studentID uuid.UUID) ([]models.Achievement, error) {
	if f.err != nil {
		return nil, f.err
	}
	var owned []models.Achievement
	for _, a := range f.achievements {
		if a.StudentID == studentID {
			owned = append(owned, a)
		}
	}
	return owned, nil
}
func (f *fakeAchievementRepo) Delete(id uuid.UUID) error { return errFakeUnimplemented }

type fakeCertificateRepo struct {
	certificates []models.Certificate
	err          error
}

func (f *fakeCertificateRepo) Create(certificate *models.Certificate) error {
	return errFakeUnimplemented
}
func (f *fakeCertificateRepo) FindByID(id uuid.UUID) (*models.Certificate, error) {
	return nil, errFakeUnimplemented
}
func (f *fakeCertificateRepo) FindByStudent(studentID uuid.UUID) ([]models.Certificate, error) {
	if f.err != nil {
		return nil, f.err
	}
	var owned []models.Certificate
	for _, c := range f.certificates {
		if c.StudentID == studentID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}
func (f *fakeCertificateRepo) Delete(id uuid.UUID) error { return errFakeUnimplemented }

type fakeScoreJobRepo struct {
	active    bool
	activeErr error
	created   []*models.ScoreJob
	createErr error
}

func (f *fakeScoreJobRepo) Create(job *models.ScoreJob) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, job)
	return nil
}
func (f *fakeScoreJobRepo) FindByID(id uuid.UUID) (*models.ScoreJob, error) {
	return nil, errFakeUnimplemented
}
func (f *fakeScoreJobRepo) FindPendingJobs(limit int) ([]models.ScoreJob, error) {
	return nil, nil
}
func (f *fakeScoreJobRepo) HasActiveJob(studentID uuid.UUID) (bool, error) {
	return f.active, f.activeErr
}
func (f *fakeScoreJobRepo) UpdateStatus(id uuid.UUID, status models.ScoreJobStatus) error {
	return nil
}
func (f *fakeScoreJobRepo) UpdateResult(id uuid.UUID, score float64, reasoning string) error {
	return nil
}
func (f *fakeScoreJobRepo) UpdateError(id uuid.UUID, errorMsg string) error { return nil }

// fakeGemini counts text-generation calls so tests can assert the model was
// or was not consulted.
type fakeGemini struct {
	textCalls  int32
	generateFn func(prompt string) (string, error)
	embedding  []float32
	embedErr   error
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	if f.embedding != nil {
		return f.embedding, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	atomic.AddInt32(&f.textCalls, 1)
	if f.generateFn == nil {
		return "", errFakeUnimplemented
	}
	return f.generateFn(prompt)
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

func (f *fakeGemini) calls() int {
	return int(atomic.LoadInt32(&f.textCalls))
}
