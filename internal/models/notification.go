package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationQueued  NotificationStatus = "queued"
	NotificationSending NotificationStatus = "sending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

type NotificationKind string

const (
	NotificationMessage      NotificationKind = "message"
	NotificationSurveyInvite NotificationKind = "survey_invite"
)

// Notification is one queued delivery to one candidate. The dispatcher
// worker moves it queued -> sending -> sent/failed.
type Notification struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Kind         NotificationKind   `gorm:"type:text;not null;default:'message'" json:"kind"`
	Message      string             `gorm:"type:text" json:"message"`
	Status       NotificationStatus `gorm:"type:text;not null;default:'queued'" json:"status"`
	ErrorMessage *string            `gorm:"type:text" json:"error_message,omitempty"`
	SentAt       *time.Time         `gorm:"type:timestamp" json:"sent_at,omitempty"`
	CreatedAt    time.Time          `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (n *Notification) TableName() string {
	return "notifications"
}
