package models

type CreateStudentRequest struct {
	Email         string    `json:"email" validate:"required,email"`
	FirstName     string    `json:"first_name" validate:"required"`
	LastName      string    `json:"last_name" validate:"required"`
	Faculty       string    `json:"faculty" validate:"required"`
	Major         string    `json:"major"`
	CourseYear    int       `json:"course_year"`
	EducationForm string    `json:"education_form"`
	GPA           *float64  `json:"gpa"`
	Skills        SkillList `json:"skills"`
	Category      string    `json:"category"`
}

type UpdateStudentRequest struct {
	FirstName        *string    `json:"first_name"`
	LastName         *string    `json:"last_name"`
	Faculty          *string    `json:"faculty"`
	Major            *string    `json:"major"`
	CourseYear       *int       `json:"course_year"`
	EducationForm    *string    `json:"education_form"`
	GPA              *float64   `json:"gpa"`
	Skills           *SkillList `json:"skills"`
	Category         *string    `json:"category"`
	SuccessStory     *string    `json:"success_story"`
	LinkedInURL      *string    `json:"linkedin_url"`
	GithubURL        *string    `json:"github_url"`
	BehanceURL       *string    `json:"behance_url"`
	InstagramURL     *string    `json:"instagram_url"`
	PortfolioURL     *string    `json:"portfolio_url"`
	GoogleScholarURL *string    `json:"google_scholar_url"`
	YoutubeURL       *string    `json:"youtube_url"`
	ProfilePicture   *string    `json:"profile_picture_url"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreateProjectRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Role        string  `json:"role"`
	Link        *string `json:"link"`
	MediaLink   *string `json:"media_link"`
	Status      string  `json:"status"`
}

type CreateAchievementRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Position    string  `json:"position"`
	Date        string  `json:"date"`
	Level       string  `json:"level" validate:"required"`
	Link        *string `json:"link"`
}

type CreateCertificateRequest struct {
	Name     string  `json:"name" validate:"required"`
	FileURL  string  `json:"file_url"`
	FilePath *string `json:"file_path"`
	Level    string  `json:"level" validate:"required"`
}

type CreateOrganizationRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	LogoURL     *string `json:"logo_url"`
	Faculty     *string `json:"faculty"`
}

type CreateNewsRequest struct {
	Title         string  `json:"title" validate:"required"`
	Content       string  `json:"content"`
	CoverImageURL *string `json:"cover_image_url"`
}

type CreateReferenceRequest struct {
	Name string `json:"name" validate:"required"`
}

type ScoreResponse struct {
	StudentID   string  `json:"student_id"`
	TalentScore float64 `json:"talent_score"`
	Reasoning   string  `json:"reasoning"`
}

type ScoreJobResponse struct {
	ID        string `json:"id"`
	StudentID string `json:"student_id"`
	Status    string `json:"status"`
}

type ScoreJobResultResponse struct {
	ID           string   `json:"id"`
	StudentID    string   `json:"student_id"`
	Status       string   `json:"status"`
	TalentScore  *float64 `json:"talent_score,omitempty"`
	Reasoning    *string  `json:"reasoning,omitempty"`
	ErrorMessage *string  `json:"error_message,omitempty"`
}

type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type RankingEntry struct {
	StudentID   string  `json:"student_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Faculty     string  `json:"faculty"`
	TalentScore float64 `json:"talent_score"`
}

type MatchRequest struct {
	Limit   int     `json:"limit"`
	Faculty *string `json:"faculty"`
}
