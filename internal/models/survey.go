package models

import (
	"time"

	"github.com/google/uuid"
)

type ResponseType string

const (
	ResponseRating   ResponseType = "rating"
	ResponseFeedback ResponseType = "feedback"
)

// SurveyResponse is a single flat answer record as submitted by the bot.
// One survey submission arrives as several of these sharing a user and a
// timestamp; grouping into submissions happens in the report service.
type SurveyResponse struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       string       `gorm:"type:text;not null;index" json:"userId"`
	Date         time.Time    `gorm:"type:timestamp;not null" json:"date"`
	QuestionID   uuid.UUID    `gorm:"type:uuid" json:"questionId"`
	QuestionText string       `gorm:"type:text" json:"questionText"`
	Type         ResponseType `gorm:"type:text;not null" json:"type"`
	Response     string       `gorm:"type:text" json:"response"`
	CreatedAt    time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (r *SurveyResponse) TableName() string {
	return "survey_responses"
}
