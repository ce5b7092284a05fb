package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndu/talent-platform/internal/models"
)

func storyStudent(first, last, faculty, story string) models.Student {
	return models.Student{
		ID:           uuid.New(),
		FirstName:    first,
		LastName:     last,
		Faculty:      faculty,
		SuccessStory: &story,
	}
}

func TestSelectTopStoriesNoCandidates(t *testing.T) {
	gemini := &fakeGemini{}
	storyService := NewStoryService(newFakeStudentRepo(), gemini, 1)

	selection, err := storyService.SelectTopStories(context.Background())

	require.NoError(t, err)
	require.NotNil(t, selection)
	assert.Empty(t, selection.SelectedStories)
	assert.Zero(t, gemini.calls())

	// Empty selection still serializes as an array
	payload, err := json.Marshal(selection)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"selected_stories":[]`)
}

func TestSelectTopStoriesShortCircuit(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{name: "one candidate", count: 1},
		{name: "exactly the featured count", count: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students := make([]models.Student, tt.count)
			for i := range students {
				students[i] = storyStudent("Nigar", "Aliyeva", "Informatika", "Won a national hackathon")
			}

			gemini := &fakeGemini{}
			storyService := NewStoryService(newFakeStudentRepo(students...), gemini, 1)

			selection, err := storyService.SelectTopStories(context.Background())

			require.NoError(t, err)
			require.Len(t, selection.SelectedStories, tt.count)
			assert.Zero(t, gemini.calls(), "small pools skip the model")

			for i, selected := range selection.SelectedStories {
				assert.Equal(t, students[i].ID.String(), selected.StudentID)
				assert.Equal(t, "Nigar Aliyeva", selected.Name)
				assert.Equal(t, "Won a national hackathon", selected.Story)
			}
		})
	}
}

func TestSelectTopStoriesDelegatesLargerPools(t *testing.T) {
	students := []models.Student{
		storyStudent("Aysel", "Huseynova", "Informatika", "Built a startup"),
		storyStudent("Murad", "Qasimov", "Riyaziyyat", "Won an olympiad"),
		storyStudent("Leyla", "Mammadova", "Fizika", "Published research"),
	}

	gemini := &fakeGemini{
		generateFn: func(prompt string) (string, error) {
			assert.Contains(t, prompt, "Built a startup")
			response := StorySelection{
				SelectedStories: []SelectedStory{
					{StudentID: students[0].ID.String(), Name: "Aysel Huseynova", Faculty: "Informatika", Story: "Built a startup"},
					{StudentID: students[2].ID.String(), Name: "Leyla Mammadova", Faculty: "Fizika", Story: "Published research"},
				},
			}
			payload, _ := json.Marshal(response)
			return "```json\n" + string(payload) + "\n```", nil
		},
	}
	storyService := NewStoryService(newFakeStudentRepo(students...), gemini, 1)

	selection, err := storyService.SelectTopStories(context.Background())

	require.NoError(t, err)
	require.Len(t, selection.SelectedStories, TopStoryCount)
	assert.Equal(t, 1, gemini.calls())
	assert.Equal(t, students[0].ID.String(), selection.SelectedStories[0].StudentID)
}

func TestSelectTopStoriesWrongCountRejected(t *testing.T) {
	students := []models.Student{
		storyStudent("A", "B", "F1", "story one"),
		storyStudent("C", "D", "F2", "story two"),
		storyStudent("E", "F", "F3", "story three"),
	}

	gemini := &fakeGemini{
		generateFn: func(prompt string) (string, error) {
			return `{"selected_stories": [{"student_id": "x", "name": "n", "faculty": "f", "story": "s"}]}`, nil
		},
	}
	storyService := NewStoryService(newFakeStudentRepo(students...), gemini, 1)

	selection, err := storyService.SelectTopStories(context.Background())

	require.Error(t, err)
	assert.Nil(t, selection)
	assert.Contains(t, err.Error(), "expected 2")
}
