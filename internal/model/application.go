package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// ApplicationStatusPending is the status of every new application
	ApplicationStatusPending = "pending"
	// ApplicationStatusAccepted indicates the recruiter accepted the applicant
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates the recruiter turned the applicant down
	ApplicationStatusRejected = "rejected"
)

// ApplicationStatuses lists every status an application may hold
var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

// IsValidApplicationStatus reports whether s is one of ApplicationStatuses
func IsValidApplicationStatus(s string) bool {
	for _, status := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Application is a job application.
// JobID and UserID are plain references without foreign key constraints;
// JobTitle is copied from the job when the application is created.
type Application struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"type:text;not null" json:"name"`
	Phone    string    `gorm:"type:text;not null" json:"phone"`
	Resume   string    `gorm:"type:text;not null" json:"resume"`
	JobID    uuid.UUID `gorm:"type:uuid;not null;index" json:"jobId"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	JobTitle string    `gorm:"type:text" json:"jobTitle"`
	Status   string    `gorm:"type:text;not null;default:'pending';check:chk_applications_status,status IN ('pending','accepted','rejected')" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an id and the initial status before insert
func (a *Application) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = ApplicationStatusPending
	}
	return nil
}
