package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrganizationStatus string

const (
	OrganizationStatusPending  OrganizationStatus = "pending"
	OrganizationStatusApproved OrganizationStatus = "approved"
	OrganizationStatusArchived OrganizationStatus = "archived"
)

// UUIDList is stored as a jsonb column of id strings.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		l = UUIDList{}
	}
	return json.Marshal(l)
}

func (l *UUIDList) Scan(value interface{}) error {
	if value == nil {
		*l = UUIDList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for UUIDList: %T", value)
	}

	return json.Unmarshal(data, l)
}

func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

type Organization struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email       string             `gorm:"type:text;uniqueIndex" json:"email"`
	Name        string             `gorm:"type:text;not null" json:"name"`
	Description string             `gorm:"type:text" json:"description"`
	LogoURL     *string            `gorm:"type:text" json:"logo_url,omitempty"`
	Faculty     *string            `gorm:"type:text" json:"faculty,omitempty"`
	LeaderID    *uuid.UUID         `gorm:"type:uuid" json:"leader_id,omitempty"`
	MemberIDs   UUIDList           `gorm:"type:jsonb;default:'[]'" json:"member_ids"`
	Status      OrganizationStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Organization) TableName() string {
	return "organizations"
}
