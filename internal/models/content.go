package models

import (
	"time"

	"github.com/google/uuid"
)

type FAQ struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (f *FAQ) TableName() string {
	return "faqs"
}

// MiniTestQuestion is asked to candidates during registration.
type MiniTestQuestion struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuestionText string    `gorm:"type:text;not null" json:"question_text"`
	CreatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (q *MiniTestQuestion) TableName() string {
	return "mini_test_questions"
}

type SurveyQuestion struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuestionText string    `gorm:"type:text;not null" json:"questionText"`
	CreatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (q *SurveyQuestion) TableName() string {
	return "survey_questions"
}
