package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"ndu/talent-platform/internal/repositories"
)

// MatcherService keeps the semantic student index and answers
// "which students fit this opening" queries.
type MatcherService interface {
	IndexStudent(ctx context.Context, studentID uuid.UUID) error
	RemoveStudent(ctx context.Context, studentID uuid.UUID) error
	MatchStudents(ctx context.Context, queryText, faculty string, limit int) ([]StudentMatch, error)
}

type StudentMatch struct {
	StudentID string  `json:"student_id"`
	Score     float32 `json:"score"`
	Faculty   string  `json:"faculty"`
	Category  string  `json:"category"`
}

type matcherService struct {
	aggregator    AggregatorService
	geminiService GeminiService
	qdrantService QdrantService
	pdfExtractor  PDFExtractor
}

func NewMatcherService(
	aggregator AggregatorService,
	geminiService GeminiService,
	qdrantService QdrantService,
	pdfExtractor PDFExtractor,
) MatcherService {
	return &matcherService{
		aggregator:    aggregator,
		geminiService: geminiService,
		qdrantService: qdrantService,
		pdfExtractor:  pdfExtractor,
	}
}

// IndexStudent implements MatcherService.
func (m *matcherService) IndexStudent(ctx context.Context, studentID uuid.UUID) error {
	snapshot, err := m.aggregator.Aggregate(ctx, studentID)
	if err != nil {
		return fmt.Errorf("failed to aggregate profile: %w", err)
	}
	if snapshot == nil {
		return fmt.Errorf("student %s: %w", studentID, repositories.ErrNotFound)
	}

	text := m.buildProfileText(snapshot)

	embedding, err := m.geminiService.GenerateEmbedding(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed profile: %w", err)
	}

	err = m.qdrantService.UpsertStudent(
		ctx,
		snapshot.Student.ID.String(),
		snapshot.Student.Faculty,
		snapshot.Student.Category,
		text,
		embedding,
	)
	if err != nil {
		return fmt.Errorf("failed to index profile: %w", err)
	}

	return nil
}

// RemoveStudent implements MatcherService.
func (m *matcherService) RemoveStudent(ctx context.Context, studentID uuid.UUID) error {
	return m.qdrantService.DeleteStudent(ctx, studentID.String())
}

// MatchStudents implements MatcherService.
func (m *matcherService) MatchStudents(ctx context.Context, queryText, faculty string, limit int) ([]StudentMatch, error) {
	if limit <= 0 {
		limit = 5
	}

	embedding, err := m.geminiService.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := m.qdrantService.SearchStudents(ctx, embedding, faculty, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search students: %w", err)
	}

	matches := make([]StudentMatch, 0, len(hits))
	for _, hit := range hits {
		matches = append(matches, StudentMatch{
			StudentID: hit.StudentID,
			Score:     hit.Score,
			Faculty:   hit.Faculty,
			Category:  hit.Category,
		})
	}

	return matches, nil
}

// buildProfileText flattens a snapshot into the text that gets embedded.
// Certificate PDFs stored locally contribute their extracted text so awards
// written only inside the document still match searches.
func (m *matcherService) buildProfileText(snapshot *ProfileSnapshot) string {
	var b strings.Builder

	student := snapshot.Student
	fmt.Fprintf(&b, "%s %s, %s, %s, course year %d\n",
		student.FirstName, student.LastName, student.Faculty, student.Major, student.CourseYear)
	if student.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", student.Category)
	}

	if len(student.Skills) > 0 {
		b.WriteString("Skills:")
		for _, skill := range student.Skills {
			fmt.Fprintf(&b, " %s (%s),", skill.Name, skill.Level)
		}
		b.WriteString("\n")
	}

	for _, project := range snapshot.Projects {
		fmt.Fprintf(&b, "Project: %s. %s. Role: %s\n", project.Title, project.Description, project.Role)
	}

	for _, achievement := range snapshot.Achievements {
		fmt.Fprintf(&b, "Achievement (%s): %s, %s\n", achievement.Level, achievement.Name, achievement.Position)
	}

	for _, certificate := range snapshot.Certificates {
		fmt.Fprintf(&b, "Certificate (%s): %s\n", certificate.Level, certificate.Name)

		if certificate.FilePath != nil && strings.HasSuffix(strings.ToLower(*certificate.FilePath), ".pdf") {
			text, err := m.pdfExtractor.ExtractText(*certificate.FilePath)
			if err != nil {
				log.Printf("⚠️  Failed to extract certificate %s text: %v\n", certificate.ID, err)
				continue
			}
			b.WriteString(text)
			b.WriteString("\n")
		}
	}

	if student.SuccessStory != nil && *student.SuccessStory != "" {
		fmt.Fprintf(&b, "Success story: %s\n", *student.SuccessStory)
	}

	return b.String()
}
