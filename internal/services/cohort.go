package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
)

// CohortEntry carries the minimal per-student fields the scoring prompt
// compares on. All slices are non-nil.
type CohortEntry struct {
	ID           uuid.UUID            `json:"id"`
	TalentScore  float64              `json:"talent_score"`
	Skills       models.SkillList     `json:"skills"`
	GPA          *float64             `json:"gpa,omitempty"`
	CourseYear   int                  `json:"course_year"`
	Projects     []models.Project     `json:"projects"`
	Achievements []models.Achievement `json:"achievements"`
	Certificates []models.Certificate `json:"certificates"`
}

type CohortService interface {
	// BuildCohort aggregates every non-archived student into a comparison
	// pool, preserving enumeration order. The target student keeps a slot
	// even when the pool is capped.
	BuildCohort(ctx context.Context, targetID uuid.UUID) ([]CohortEntry, error)
}

type cohortService struct {
	studentRepo repositories.StudentRepository
	aggregator  AggregatorService
	fanOut      int
	limit       int
}

func NewCohortService(
	studentRepo repositories.StudentRepository,
	aggregator AggregatorService,
	fanOut int,
	limit int,
) CohortService {
	if fanOut <= 0 {
		fanOut = 8
	}
	return &cohortService{
		studentRepo: studentRepo,
		aggregator:  aggregator,
		fanOut:      fanOut,
		limit:       limit,
	}
}

// BuildCohort implements CohortService. Aggregation fans out with bounded
// concurrency; one round-trip per student otherwise dominates scoring
// latency as the population grows.
func (c *cohortService) BuildCohort(ctx context.Context, targetID uuid.UUID) ([]CohortEntry, error) {
	all, err := c.studentRepo.FindAll(repositories.StudentFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate students: %w", err)
	}

	// Archived profiles are withdrawn from comparison. The filter is
	// equality-only, so the exclusion happens here.
	students := make([]models.Student, 0, len(all))
	for _, student := range all {
		if student.Status == models.StudentStatusArchived {
			continue
		}
		students = append(students, student)
	}

	// Cap the pool before prompt construction so an oversized population
	// cannot blow the model's input budget. The target always keeps a
	// slot; truncation must never make an existing student unscorable.
	if c.limit > 0 && len(students) > c.limit {
		for i := c.limit; i < len(students); i++ {
			if students[i].ID == targetID {
				students[c.limit-1] = students[i]
				break
			}
		}
		students = students[:c.limit]
	}

	entries := make([]CohortEntry, len(students))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.fanOut)

	for i, student := range students {
		g.Go(func() error {
			snapshot, err := c.aggregator.Aggregate(gctx, student.ID)
			if err != nil {
				return fmt.Errorf("failed to aggregate student %s: %w", student.ID, err)
			}
			if snapshot == nil {
				// Deleted between enumeration and aggregation; keep the
				// entry with the fields we already have.
				snapshot = &ProfileSnapshot{
					Student:      student,
					Projects:     []models.Project{},
					Achievements: []models.Achievement{},
					Certificates: []models.Certificate{},
				}
			}

			entries[i] = CohortEntry{
				ID:           snapshot.Student.ID,
				TalentScore:  snapshot.Student.TalentScore,
				Skills:       snapshot.Student.Skills,
				GPA:          snapshot.Student.GPA,
				CourseYear:   snapshot.Student.CourseYear,
				Projects:     snapshot.Projects,
				Achievements: snapshot.Achievements,
				Certificates: snapshot.Certificates,
			}
			if entries[i].Skills == nil {
				entries[i].Skills = models.SkillList{}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return entries, nil
}
