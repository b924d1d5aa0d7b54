package models

import (
	"time"

	"github.com/google/uuid"
)

// DateOnly is the wire format for deadlines and plan ranges.
const DateOnly = "2006-01-02"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	Role   Role   `json:"role"`
	UserID string `json:"userId"`
}

type SessionResponse struct {
	UserID       string       `json:"userId"`
	Role         Role         `json:"role"`
	Capabilities Capabilities `json:"capabilities"`
	Menu         []MenuItem   `json:"menu"`
}

type MenuItem struct {
	Key   string `json:"key"`
	Path  string `json:"path"`
	Label string `json:"label"`
}

type UpdateAdminStatusRequest struct {
	UserID        string  `json:"userId" validate:"required,uuid"`
	AdminStatus   string  `json:"adminStatus" validate:"required"`
	InterviewDate *string `json:"interviewDate,omitempty"`
}

type CandidateResponse struct {
	ID               uuid.UUID    `json:"id"`
	FirstName        string       `json:"first_name"`
	LastName         string       `json:"last_name"`
	Username         string       `json:"username"`
	TestStatus       TestStatus   `json:"testStatus"`
	TestStatusLabel  string       `json:"testStatusLabel"`
	AdminStatus      AdminStatus  `json:"adminStatus"`
	AdminStatusLabel string       `json:"adminStatusLabel"`
	AdminStatusColor string       `json:"adminStatusColor"`
	InterviewDate    *time.Time   `json:"interviewDate,omitempty"`
	TestDate         *time.Time   `json:"testDate,omitempty"`
	ResumeURL        string       `json:"resumeUrl"`
	TestAnswers      []TestAnswer `json:"testAnswers,omitempty"`
}

func NewCandidateResponse(c *Candidate) CandidateResponse {
	return CandidateResponse{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Username:         c.Username,
		TestStatus:       c.TestStatus,
		TestStatusLabel:  c.TestStatus.Label(),
		AdminStatus:      c.AdminStatus,
		AdminStatusLabel: c.AdminStatus.Label(),
		AdminStatusColor: c.AdminStatus.Color(),
		InterviewDate:    c.InterviewDate,
		TestDate:         c.TestDate,
		ResumeURL:        c.ResumeURL,
		TestAnswers:      c.TestAnswers,
	}
}

type TaskRequest struct {
	Title    string `json:"title" validate:"required"`
	Deadline string `json:"deadline" validate:"required"`
}

type TaskResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Deadline string    `json:"deadline"`
}

func NewTaskResponse(t *Task) TaskResponse {
	return TaskResponse{
		ID:       t.ID,
		Title:    t.Title,
		Deadline: t.Deadline.Format(DateOnly),
	}
}

type AssignTaskRequest struct {
	CandidateID string `json:"candidateId" validate:"required,uuid"`
	TaskID      string `json:"taskId" validate:"required,uuid"`
}

type AssignedTaskRow struct {
	ID          uuid.UUID        `json:"id"`
	CandidateID uuid.UUID        `json:"candidate_id"`
	TaskID      uuid.UUID        `json:"task_id"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	TaskTitle   string           `json:"task_title"`
	Status      AssignmentStatus `json:"status"`
}

type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CandidateTaskItem is one row of the per-candidate task checklist.
type CandidateTaskItem struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Deadline    string           `json:"deadline"`
	Status      AssignmentStatus `json:"status"`
	StatusLabel string           `json:"statusLabel"`
	StatusColor string           `json:"statusColor"`
}

type CandidateTasksResponse struct {
	Tasks                []CandidateTaskItem `json:"tasks"`
	CompletionPercentage float64             `json:"completionPercentage"`
	Chart                ProgressChart       `json:"chart"`
}

// ProgressChart is the precomputed pie breakdown the panel renders.
type ProgressChart struct {
	Done      float64 `json:"done"`
	Remaining float64 `json:"remaining"`
}

type MentorRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role,omitempty"`
}

type MentorUpdateRequest struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

type MentorResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	RoleLabel string    `json:"roleLabel"`
}

func NewMentorResponse(u *User) MentorResponse {
	return MentorResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		RoleLabel: u.RoleLabel(),
	}
}

type AdaptationPlanRequest struct {
	MentorID string `json:"mentor_id" validate:"required,uuid"`
	Link     string `json:"link" validate:"required,url"`
}

type AdaptationPlanResponse struct {
	ID       uuid.UUID `json:"id"`
	MentorID uuid.UUID `json:"mentor_id"`
	Username string    `json:"username"`
	Link     string    `json:"link"`
}

type StaffPlanRequest struct {
	MentorID  string `json:"mentor_id" validate:"required,uuid"`
	TraineeID string `json:"trainee_id" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type StaffPlanResponse struct {
	ID        uuid.UUID `json:"id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Mentor    PlanParty `json:"mentor"`
	Trainee   PlanParty `json:"trainee"`
}

type PlanParty struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type FAQRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type QuestionRequest struct {
	Question string `json:"question" validate:"required"`
}

type SurveyQuestionRequest struct {
	QuestionText string `json:"questionText" validate:"required"`
}

type SendNotificationsRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,uuid"`
	Message string   `json:"message" validate:"required"`
}
