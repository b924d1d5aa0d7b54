package models

import (
	"time"

	"github.com/google/uuid"
)

type TestStatus string

const (
	TestNotAssigned TestStatus = "not-assigned"
	TestStarted     TestStatus = "started"
	TestCompleted   TestStatus = "completed"
)

type AdminStatus string

const (
	AdminNotAssigned AdminStatus = "not-assigned"
	AdminInterview   AdminStatus = "interview"
	AdminAccepted    AdminStatus = "accepted"
	AdminRejected    AdminStatus = "rejected"
)

// Label returns the display label shown in the admin panel. Unmapped or
// absent values always render as "Не назначен".
func (s AdminStatus) Label() string {
	switch s {
	case AdminInterview:
		return "На собеседовании"
	case AdminAccepted:
		return "Принят"
	case AdminRejected:
		return "Отказан"
	default:
		return "Не назначен"
	}
}

func (s AdminStatus) Color() string {
	switch s {
	case AdminInterview:
		return "orange"
	case AdminAccepted:
		return "green"
	case AdminRejected:
		return "red"
	default:
		return "default"
	}
}

func (s TestStatus) Label() string {
	switch s {
	case TestCompleted:
		return "Завершен"
	case TestStarted:
		return "В тестировании"
	default:
		return "Не назначен"
	}
}

// Candidate is created outside this panel (registration flow) and is
// never deleted here; admins only move it through the pipeline.
type Candidate struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName     string       `gorm:"type:text" json:"first_name"`
	LastName      string       `gorm:"type:text" json:"last_name"`
	Username      string       `gorm:"type:text" json:"username"`
	TestStatus    TestStatus   `gorm:"type:text;not null;default:'not-assigned'" json:"testStatus"`
	AdminStatus   AdminStatus  `gorm:"type:text;not null;default:'not-assigned'" json:"adminStatus"`
	InterviewDate *time.Time   `gorm:"type:timestamp" json:"interviewDate,omitempty"`
	TestDate      *time.Time   `gorm:"type:timestamp" json:"testDate,omitempty"`
	ResumeURL     string       `gorm:"type:text" json:"resumeUrl"`
	ResumePages   int          `gorm:"default:0" json:"-"`
	ResumeText    string       `gorm:"type:text" json:"-"`
	TestAnswers   []TestAnswer `gorm:"foreignKey:CandidateID" json:"testAnswers,omitempty"`
	CreatedAt     time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}

// TestAnswer is one mini-test answer submitted by a candidate before the
// admin ever sees them.
type TestAnswer struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Question    string    `gorm:"type:text" json:"question"`
	Answer      string    `gorm:"type:text" json:"answer"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (a *TestAnswer) TableName() string {
	return "test_answers"
}
