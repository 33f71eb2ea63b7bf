package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EditableJobInfo is the part of a job a recruiter can change
type EditableJobInfo struct {
	Position    string            `gorm:"type:text;not null" json:"position"`
	Company     string            `gorm:"type:text" json:"company"`
	Location    string            `gorm:"type:text" json:"location"`
	Type        string            `gorm:"type:text" json:"type"`
	Salary      string            `gorm:"type:text" json:"salary"`
	Description string            `gorm:"type:text" json:"description"`
	Tags        pq.StringArray    `gorm:"type:text[]" json:"tags"`
	Details     datatypes.JSONMap `gorm:"type:jsonb" json:"details,omitempty"`
}

// Job is a posting that applications refer to by id
type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	RecruiterID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"recruiterId"`
	EditableJobInfo
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an id before insert
func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
