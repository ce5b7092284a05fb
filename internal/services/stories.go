package services

import (
	"context"
	"encoding/json"
	"fmt"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
)

// TopStoryCount is how many success stories the homepage features.
const TopStoryCount = 2

type SelectedStory struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Faculty   string `json:"faculty"`
	Story     string `json:"story"`
}

type StorySelection struct {
	SelectedStories []SelectedStory `json:"selected_stories"`
}

type StoryService interface {
	SelectTopStories(ctx context.Context) (*StorySelection, error)
}

type storyService struct {
	studentRepo   repositories.StudentRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewStoryService(
	studentRepo repositories.StudentRepository,
	geminiService GeminiService,
	maxRetries int,
) StoryService {
	return &storyService{
		studentRepo:   studentRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

type storyCandidate struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Faculty   string `json:"faculty"`
	Story     string `json:"success_story"`
}

// SelectTopStories implements StoryService. When the candidate pool is at or
// below the featured count, every candidate is returned verbatim and no
// model call is made.
func (s *storyService) SelectTopStories(ctx context.Context) (*StorySelection, error) {
	students, err := s.studentRepo.FindWithStories()
	if err != nil {
		return nil, fmt.Errorf("failed to load success stories: %w", err)
	}

	candidates := make([]storyCandidate, 0, len(students))
	for _, student := range students {
		candidates = append(candidates, storyCandidate{
			ID:        student.ID.String(),
			FirstName: student.FirstName,
			LastName:  student.LastName,
			Faculty:   student.Faculty,
			Story:     derefStory(student),
		})
	}

	if len(candidates) <= TopStoryCount {
		selection := &StorySelection{SelectedStories: []SelectedStory{}}
		for _, c := range candidates {
			selection.SelectedStories = append(selection.SelectedStories, SelectedStory{
				StudentID: c.ID,
				Name:      c.FirstName + " " + c.LastName,
				Faculty:   c.Faculty,
				Story:     c.Story,
			})
		}
		return selection, nil
	}

	storiesJSON, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize stories: %w", err)
	}

	prompt := s.promptBuilder.BuildStorySelectionPrompt(string(storiesJSON), TopStoryCount)

	response, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, 0.5, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to select stories: %w", err)
	}

	var selection StorySelection
	if err := parseJSONResponse(response, &selection); err != nil {
		return nil, fmt.Errorf("failed to parse story selection: %w", err)
	}

	if len(selection.SelectedStories) != TopStoryCount {
		return nil, fmt.Errorf("expected %d selected stories, got %d",
			TopStoryCount, len(selection.SelectedStories))
	}

	return &selection, nil
}

func derefStory(student models.Student) string {
	if student.SuccessStory == nil {
		return ""
	}
	return *student.SuccessStory
}
