package models

import (
	"time"

	"github.com/google/uuid"
)

type PlanVariant string

const (
	PlanLine  PlanVariant = "line"
	PlanAdmin PlanVariant = "admin"
)

// AdaptationPlan is the link-based onboarding checklist used by the
// admin and line variants: a mentor plus a document link.
type AdaptationPlan struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MentorID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"mentor_id"`
	Link      string      `gorm:"type:text;not null" json:"link"`
	Variant   PlanVariant `gorm:"type:text;not null;default:'line';index" json:"-"`
	CreatedAt time.Time   `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time   `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Mentor User `gorm:"foreignKey:MentorID" json:"-"`
}

func (p *AdaptationPlan) TableName() string {
	return "adaptation_plans"
}

// StaffAdaptationPlan is the op variant: a mentor paired with a trainee
// for a date range instead of a static link.
type StaffAdaptationPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MentorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"mentor_id"`
	TraineeID uuid.UUID `gorm:"type:uuid;not null;index" json:"trainee_id"`
	StartDate time.Time `gorm:"type:date;not null" json:"-"`
	EndDate   time.Time `gorm:"type:date;not null" json:"-"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Mentor  User      `gorm:"foreignKey:MentorID" json:"-"`
	Trainee Candidate `gorm:"foreignKey:TraineeID" json:"-"`
}

func (p *StaffAdaptationPlan) TableName() string {
	return "staff_adaptation_plans"
}
