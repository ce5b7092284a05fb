package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
)

// ProfileSnapshot is one student's denormalized profile: the primary record
// plus its three child collections. Child slices are always non-nil so the
// snapshot serializes with [] instead of null in prompt JSON.
type ProfileSnapshot struct {
	Student      models.Student       `json:"student"`
	Projects     []models.Project     `json:"projects"`
	Achievements []models.Achievement `json:"achievements"`
	Certificates []models.Certificate `json:"certificates"`
}

type AggregatorService interface {
	// Aggregate returns (nil, nil) when the student does not exist.
	Aggregate(ctx context.Context, studentID uuid.UUID) (*ProfileSnapshot, error)
}

type aggregatorService struct {
	studentRepo     repositories.StudentRepository
	projectRepo     repositories.ProjectRepository
	achievementRepo repositories.AchievementRepository
	certificateRepo repositories.CertificateRepository
}

func NewAggregatorService(
	studentRepo repositories.StudentRepository,
	projectRepo repositories.ProjectRepository,
	achievementRepo repositories.AchievementRepository,
	certificateRepo repositories.CertificateRepository,
) AggregatorService {
	return &aggregatorService{
		studentRepo:     studentRepo,
		projectRepo:     projectRepo,
		achievementRepo: achievementRepo,
		certificateRepo: certificateRepo,
	}
}

// Aggregate implements AggregatorService. A failed child-collection fetch is
// an error, not a silently empty array: a partial snapshot would skew the
// cohort comparison downstream.
func (a *aggregatorService) Aggregate(ctx context.Context, studentID uuid.UUID) (*ProfileSnapshot, error) {
	student, err := a.studentRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	projects, err := a.projectRepo.FindByOwner(studentID, models.OwnerTypeStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	achievements, err := a.achievementRepo.FindByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievements: %w", err)
	}

	certificates, err := a.certificateRepo.FindByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch certificates: %w", err)
	}

	if projects == nil {
		projects = []models.Project{}
	}
	if achievements == nil {
		achievements = []models.Achievement{}
	}
	if certificates == nil {
		certificates = []models.Certificate{}
	}

	return &ProfileSnapshot{
		Student:      *student,
		Projects:     projects,
		Achievements: achievements,
		Certificates: certificates,
	}, nil
}
