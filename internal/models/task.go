package models

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentStatus string

const (
	AssignmentNotStarted AssignmentStatus = "not_started"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentDone       AssignmentStatus = "done"
	AssignmentFailed     AssignmentStatus = "failed"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentNotStarted, AssignmentInProgress, AssignmentDone, AssignmentFailed:
		return true
	}
	return false
}

// Label matches the panel exactly: anything that is neither done nor
// failed renders as "В процессе".
func (s AssignmentStatus) Label() string {
	switch s {
	case AssignmentDone:
		return "Выполнено"
	case AssignmentFailed:
		return "Не выполнено"
	default:
		return "В процессе"
	}
}

func (s AssignmentStatus) Color() string {
	switch s {
	case AssignmentDone:
		return "green"
	case AssignmentFailed:
		return "red"
	default:
		return "yellow"
	}
}

type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Deadline  time.Time `gorm:"type:date;not null" json:"-"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (t *Task) TableName() string {
	return "tasks"
}

// TaskAssignment joins a task to a candidate. A pair may only be
// assigned once.
type TaskAssignment struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID        `gorm:"type:uuid;not null;index:idx_assignment_pair,unique" json:"candidate_id"`
	TaskID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_assignment_pair,unique" json:"task_id"`
	Status      AssignmentStatus `gorm:"type:text;not null;default:'not_started'" json:"status"`
	CreatedAt   time.Time        `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
	Task      Task      `gorm:"foreignKey:TaskID" json:"-"`
}

func (a *TaskAssignment) TableName() string {
	return "task_assignments"
}
