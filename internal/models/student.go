package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type StudentStatus string

const (
	StudentStatusPending  StudentStatus = "pending"
	StudentStatusApproved StudentStatus = "approved"
	StudentStatusArchived StudentStatus = "archived"
)

type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
)

type Skill struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// SkillList is stored as a jsonb column.
type SkillList []Skill

func (s SkillList) Value() (driver.Value, error) {
	if s == nil {
		s = SkillList{}
	}
	return json.Marshal(s)
}

func (s *SkillList) Scan(value interface{}) error {
	if value == nil {
		*s = SkillList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for SkillList: %T", value)
	}

	return json.Unmarshal(data, s)
}

type Student struct {
	ID               uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email            string        `gorm:"type:text;uniqueIndex" json:"email"`
	FirstName        string        `gorm:"type:text" json:"first_name"`
	LastName         string        `gorm:"type:text" json:"last_name"`
	Faculty          string        `gorm:"type:text" json:"faculty"`
	Major            string        `gorm:"type:text" json:"major"`
	CourseYear       int           `gorm:"type:int" json:"course_year"`
	EducationForm    string        `gorm:"type:text" json:"education_form,omitempty"`
	GPA              *float64      `gorm:"type:decimal(4,2)" json:"gpa,omitempty"`
	Skills           SkillList     `gorm:"type:jsonb;default:'[]'" json:"skills"`
	Category         string        `gorm:"type:text" json:"category"`
	TalentScore      float64       `gorm:"type:decimal(5,2);default:0" json:"talent_score"`
	ScoreReasoning   *string       `gorm:"type:text" json:"score_reasoning,omitempty"`
	Status           StudentStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	SuccessStory     *string       `gorm:"type:text" json:"success_story,omitempty"`
	LinkedInURL      *string       `gorm:"type:text" json:"linkedin_url,omitempty"`
	GithubURL        *string       `gorm:"type:text" json:"github_url,omitempty"`
	BehanceURL       *string       `gorm:"type:text" json:"behance_url,omitempty"`
	InstagramURL     *string       `gorm:"type:text" json:"instagram_url,omitempty"`
	PortfolioURL     *string       `gorm:"type:text" json:"portfolio_url,omitempty"`
	GoogleScholarURL *string       `gorm:"type:text" json:"google_scholar_url,omitempty"`
	YoutubeURL       *string       `gorm:"type:text" json:"youtube_url,omitempty"`
	ProfilePicture   *string       `gorm:"type:text" json:"profile_picture_url,omitempty"`
	CreatedAt        time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}
