package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// RoleStudent is a job seeker
	RoleStudent = "student"
	// RoleRecruiter posts jobs and reviews applications
	RoleRecruiter = "recruiter"
	// RoleMentor accounts live in their own table
	RoleMentor = "mentor"

	// roleRecruiterAlias is the spelling older clients still send
	roleRecruiterAlias = "recruitor"
)

// Account holds the login fields shared by users and mentors.
// Email is unique across both tables and always stored lowercased.
type Account struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email       string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	Role        string    `gorm:"type:text;not null" json:"role"`
	FullName    string    `gorm:"type:text" json:"fullName"`
	PhoneNumber string    `gorm:"type:text" json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// User is a student or recruiter account
type User struct {
	Account `gorm:"embedded"`
}

// Mentor is a mentor account
type Mentor struct {
	Account `gorm:"embedded"`
}

// BeforeCreate assigns an id and normalizes the email before insert
func (a *Account) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.Email = NormalizeEmail(a.Email)
	return nil
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeRole maps an incoming role name to its canonical value.
// The second return value is false for unknown roles.
func NormalizeRole(role string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleStudent:
		return RoleStudent, true
	case RoleRecruiter, roleRecruiterAlias:
		return RoleRecruiter, true
	case RoleMentor:
		return RoleMentor, true
	}
	return "", false
}
