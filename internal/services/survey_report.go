package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/models"
)

// ReportPageSize is the fixed page size of the response report.
const ReportPageSize = 10

// SubmissionKey identifies one survey submission: the answering user plus
// the submission timestamp truncated to a second. Two submissions by the
// same user inside the same second would silently merge, and a submission
// whose answer timestamps straddle a second boundary would split; the bot
// stamps every record of a submission with the same timestamp, so in
// practice the key is unique. An explicit submission id from the backend
// would remove the hazard entirely.
type SubmissionKey struct {
	UserID string
	Unix   int64
}

func NewSubmissionKey(userID string, at time.Time) SubmissionKey {
	return SubmissionKey{UserID: userID, Unix: at.Truncate(time.Second).Unix()}
}

type RatingAnswer struct {
	QuestionID   uuid.UUID `json:"questionId"`
	QuestionText string    `json:"questionText"`
	Rating       int       `json:"rating"`
}

// Submission is one grouped survey submission: all rating answers plus at
// most one free-form feedback.
type Submission struct {
	UserID      string         `json:"userId"`
	UserName    string         `json:"userName"`
	SubmittedAt time.Time      `json:"submittedAt"`
	Ratings     []RatingAnswer `json:"ratings"`
	Feedback    string         `json:"feedback,omitempty"`
}

// MeanRating is the average of all rating answers, 0 when there are none.
func (s Submission) MeanRating() float64 {
	if len(s.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range s.Ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(s.Ratings))
}

// UserCard groups a user's submissions for display; SubmittedAt is the
// earliest-seen submission date, used as the card header.
type UserCard struct {
	UserID      string       `json:"userId"`
	UserName    string       `json:"userName"`
	SubmittedAt time.Time    `json:"submittedAt"`
	Submissions []Submission `json:"submissions"`
}

type SortKey string

const (
	SortRecent  SortKey = "recent"
	SortAverage SortKey = "average"
)

// ReportQuery carries the filter/sort/pagination state of one report
// request. Zero values mean "no filter".
type ReportQuery struct {
	Search    string
	MaxRating int
	From      *time.Time
	To        *time.Time
	Sort      SortKey
	Page      int
}

// GroupSubmissions reshapes flat answer records into submissions keyed by
// (user, second-truncated timestamp). Rating records accumulate; for
// duplicate feedback records the last one wins. Input order decides
// submission order (first seen first), so grouping is idempotent over the
// same input.
func GroupSubmissions(records []models.SurveyResponse) []Submission {
	grouped := make(map[SubmissionKey]*Submission)
	var order []SubmissionKey

	for _, rec := range records {
		key := NewSubmissionKey(rec.UserID, rec.Date)
		sub, ok := grouped[key]
		if !ok {
			sub = &Submission{
				UserID:      rec.UserID,
				UserName:    "User " + rec.UserID,
				SubmittedAt: rec.Date,
			}
			grouped[key] = sub
			order = append(order, key)
		}

		switch rec.Type {
		case models.ResponseRating:
			rating, err := strconv.Atoi(strings.TrimSpace(rec.Response))
			if err != nil {
				rating = 0
			}
			sub.Ratings = append(sub.Ratings, RatingAnswer{
				QuestionID:   rec.QuestionID,
				QuestionText: rec.QuestionText,
				Rating:       rating,
			})
		case models.ResponseFeedback:
			sub.Feedback = rec.Response
		}
	}

	submissions := make([]Submission, 0, len(order))
	for _, key := range order {
		submissions = append(submissions, *grouped[key])
	}
	return submissions
}

// GroupByUser re-groups submissions into one card per user. Card order is
// first-seen user order; the header date is the earliest submission seen.
func GroupByUser(submissions []Submission) []UserCard {
	grouped := make(map[string]*UserCard)
	var order []string

	for _, sub := range submissions {
		card, ok := grouped[sub.UserID]
		if !ok {
			card = &UserCard{
				UserID:      sub.UserID,
				UserName:    sub.UserName,
				SubmittedAt: sub.SubmittedAt,
			}
			grouped[sub.UserID] = card
			order = append(order, sub.UserID)
		}
		if sub.SubmittedAt.Before(card.SubmittedAt) {
			card.SubmittedAt = sub.SubmittedAt
		}
		card.Submissions = append(card.Submissions, sub)
	}

	cards := make([]UserCard, 0, len(order))
	for _, userID := range order {
		cards = append(cards, *grouped[userID])
	}
	return cards
}

// FilterSubmissions applies, in order: case-insensitive username substring
// match, "any rating <= N" threshold, then the date range (inclusive
// start, end-of-day inclusive end). The input is never mutated.
func FilterSubmissions(submissions []Submission, q ReportQuery) []Submission {
	out := make([]Submission, 0, len(submissions))
	search := strings.ToLower(q.Search)

	for _, sub := range submissions {
		if search != "" && !strings.Contains(strings.ToLower(sub.UserName), search) {
			continue
		}
		if q.MaxRating > 0 && !anyRatingAtMost(sub.Ratings, q.MaxRating) {
			continue
		}
		if q.From != nil && sub.SubmittedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && sub.SubmittedAt.After(endOfDay(*q.To)) {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func anyRatingAtMost(ratings []RatingAnswer, max int) bool {
	for _, r := range ratings {
		if r.Rating <= max {
			return true
		}
	}
	return false
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// SortSubmissions returns a sorted copy: most recent first, or mean
// rating descending. The keys are exclusive, never combined.
func SortSubmissions(submissions []Submission, key SortKey) []Submission {
	out := make([]Submission, len(submissions))
	copy(out, submissions)

	switch key {
	case SortRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		})
	case SortAverage:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MeanRating() > out[j].MeanRating()
		})
	}
	return out
}

// Paginate slices out page (1-based) with the fixed report page size.
// Out-of-range pages yield an empty slice, never an error.
func Paginate(submissions []Submission, page int) []Submission {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * ReportPageSize
	if start >= len(submissions) {
		return []Submission{}
	}
	end := start + ReportPageSize
	if end > len(submissions) {
		end = len(submissions)
	}
	return submissions[start:end]
}

// Report is the fully derived view of the survey responses for one query.
type Report struct {
	Submissions []Submission `json:"submissions"`
	Cards       []UserCard   `json:"cards"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	PageSize    int          `json:"pageSize"`
}

// BuildReport runs the whole pipeline: group, filter, sort, then
// paginate. Pagination scopes the submissions table only; the user cards
// are built from the full filtered set so a card always carries every
// submission of its user. It is a pure function of its inputs; the
// record list is left untouched.
func BuildReport(records []models.SurveyResponse, q ReportQuery) Report {
	submissions := GroupSubmissions(records)
	filtered := FilterSubmissions(submissions, q)
	sorted := SortSubmissions(filtered, q.Sort)

	page := q.Page
	if page < 1 {
		page = 1
	}

	return Report{
		Submissions: Paginate(sorted, page),
		Cards:       GroupByUser(sorted),
		Total:       len(filtered),
		Page:        page,
		PageSize:    ReportPageSize,
	}
}
