package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildTalentScorePrompt creates the prompt for cohort-relative talent scoring.
// cohortJSON is the serialized pool of all student snapshots, target included.
func (pb *PromptBuilder) BuildTalentScorePrompt(targetStudentID, cohortJSON string) string {
	return fmt.Sprintf(`You are an expert talent evaluator for Naxçıvan Dövlət Universiteti. Your task is to assess a specific student's profile (the target student) and assign a talent score based on the information provided, comparing them to the entire pool of students.

Instructions:
1. Identify the target student using the target student ID in the student pool below.
2. Analyze the target student's profile data, including skills, projects, achievements, certificates, GPA, and course year.
3. Crucially, compare the target student's profile against the profiles of all other students in the pool.
4. Assign a talent score between 0 and 100 to the target student. This score should be relative. For example, if the target student has won a regional award, but many other students have international awards, their score should reflect this context.
5. Provide a clear and concise explanation for the score. Justify your assessment by citing specific examples from the target student's profile and explaining how they stack up against the broader student population.

Consider these factors in your relative assessment:
* Skills: Are the target student's skills common or rare? How do they compare in number and level to the average student?
* Projects: Is the complexity and quality of their projects above or below average?
* Achievements: What is the significance of their achievements compared to others? (international > republic > regional > university).
* Certificates: How do their certificates compare in level and prestige?
* GPA/Course Year: A high GPA for a 4th-year student might be weighted more than for a 1st-year student.

Student Pool Data:
%s

Calculate the talent score for the student with ID '%s' based on this data.

Return your response in the following JSON format:
{
  "talent_score": <number between 0 and 100>,
  "reasoning": "<explanation of the factors that influenced the score, with specific examples from the profile data and comparison to other students>"
}`, cohortJSON, targetStudentID)
}

// BuildStorySelectionPrompt creates the prompt for picking the top success
// stories to feature. storiesJSON is the serialized candidate list.
func (pb *PromptBuilder) BuildStorySelectionPrompt(storiesJSON string, count int) string {
	return fmt.Sprintf(`You are a public relations expert for Naxçıvan Dövlət Universiteti. Your task is to analyze a list of student success stories and select the top %d to feature on the university's homepage.

Instructions:
1. Review all the provided stories.
2. Select exactly %d stories that are the most compelling, inspiring, and well-written.
3. Prioritize stories that demonstrate concrete outcomes (e.g., getting a job, winning a competition, launching a project) and show the positive impact of the university or the talent platform.
4. Ensure the selected stories are diverse in terms of faculty or achievement type, if possible.

List of available success stories:
%s

Return your response in the following JSON format:
{
  "selected_stories": [
    {
      "student_id": "<the ID of the student whose story was selected>",
      "name": "<the full name of the student>",
      "faculty": "<the faculty of the student>",
      "story": "<the selected success story>"
    }
  ]
}

The selected_stories array must contain exactly %d entries.`, count, count, storiesJSON, count)
}

// BuildRecommendationPrompt creates the prompt for profile-improvement
// recommendations. profileJSON is one student's full aggregated snapshot.
func (pb *PromptBuilder) BuildRecommendationPrompt(profileJSON string) string {
	return fmt.Sprintf(`You are an expert career coach and talent platform optimizer for Naxçıvan Dövlət Universiteti. Your task is to analyze a student's profile and provide 3 concrete, actionable recommendations for improvement.

Instructions:
1. Analyze the provided student profile data. Pay close attention to missing information, the quality of descriptions for projects and achievements, the variety and relevance of skills, and the completeness of social/portfolio links.
2. Generate exactly 3 distinct recommendations.
3. Each recommendation should be a clear, concise, and actionable sentence.
4. Focus on suggestions that will increase the student's talent score and make them more attractive to organizations.

Examples of good recommendations:
* "Expand the description of your mobile app prototype project with the technologies you used and the challenges you faced."
* "Enter a Kaggle competition to demonstrate your data analysis skills and add the result to your achievements."
* "Your profile is missing a GitHub link. Create a GitHub profile to showcase code samples and add the link."

Student Profile Data:
%s

Return your response in the following JSON format:
{
  "recommendations": ["<recommendation 1>", "<recommendation 2>", "<recommendation 3>"]
}`, profileJSON)
}

// BuildMatchQuery renders an opening into the text embedded for similarity
// search against the student index.
func (pb *PromptBuilder) BuildMatchQuery(title, description, role string) string {
	return fmt.Sprintf("Project: %s\nRole sought: %s\n%s", title, role, description)
}
