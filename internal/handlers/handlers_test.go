package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
	"hradmin/recruitment-api/internal/services"
)

type fakeUserRepo struct {
	users []*models.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = user
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeCandidateRepo struct {
	candidates []*models.Candidate
}

func (r *fakeCandidateRepo) FindAll(_ context.Context) ([]models.Candidate, error) {
	out := make([]models.Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCandidateRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Candidate, error) {
	for _, c := range r.candidates {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCandidateRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, id := range ids {
		for _, c := range r.candidates {
			if c.ID == id {
				out = append(out, *c)
			}
		}
	}
	return out, nil
}

func (r *fakeCandidateRepo) FindAccepted(_ context.Context) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, c := range r.candidates {
		if c.AdminStatus == models.AdminAccepted {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCandidateRepo) UpdateAdminStatus(_ context.Context, id uuid.UUID, status models.AdminStatus, interviewDate *time.Time) error {
	for _, c := range r.candidates {
		if c.ID == id {
			c.AdminStatus = status
			c.InterviewDate = interviewDate
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeCandidateRepo) UpdateResume(_ context.Context, id uuid.UUID, url, text string, pages int) error {
	for _, c := range r.candidates {
		if c.ID == id {
			c.ResumeURL = url
			c.ResumeText = text
			c.ResumePages = pages
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeTaskRepo struct {
	tasks       []*models.Task
	assignments []models.TaskAssignment
}

func (r *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context) ([]models.Task, error) {
	out := make([]models.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	for i, t := range r.tasks {
		if t.ID == task.ID {
			r.tasks[i] = task
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeTaskRepo) AssignMany(_ context.Context, assignments []models.TaskAssignment) error {
	for _, a := range assignments {
		for _, existing := range r.assignments {
			if existing.CandidateID == a.CandidateID && existing.TaskID == a.TaskID {
				return repositories.ErrAlreadyAssigned
			}
		}
	}
	r.assignments = append(r.assignments, assignments...)
	return nil
}

func (r *fakeTaskRepo) FindAssignedRows(_ context.Context) ([]models.AssignedTaskRow, error) {
	var rows []models.AssignedTaskRow
	for _, a := range r.assignments {
		rows = append(rows, models.AssignedTaskRow{
			ID:          a.ID,
			CandidateID: a.CandidateID,
			TaskID:      a.TaskID,
			Status:      a.Status,
		})
	}
	return rows, nil
}

func (r *fakeTaskRepo) FindByCandidate(_ context.Context, candidateID uuid.UUID) ([]models.TaskAssignment, error) {
	var out []models.TaskAssignment
	for _, a := range r.assignments {
		if a.CandidateID == candidateID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) UpdateAssignmentStatus(_ context.Context, id uuid.UUID, status models.AssignmentStatus) error {
	for i := range r.assignments {
		if r.assignments[i].ID == id {
			r.assignments[i].Status = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLogin(t *testing.T) {
	hash, err := services.HashPassword("correct-pass")
	require.NoError(t, err)

	admin := &models.User{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	userRepo := &fakeUserRepo{users: []*models.User{admin}}
	tokens := services.NewTokenService("test-secret", time.Hour)
	handler := NewAuthHandler(userRepo, tokens)

	app := fiber.New()
	app.Post("/api/login", handler.HandleLogin)

	t.Run("valid credentials return a token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/login", models.LoginRequest{
			Username: "admin",
			Password: "correct-pass",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["token"])
		assert.Equal(t, "admin", body["role"])
		assert.Equal(t, admin.ID.String(), body["userId"])

		claims, err := tokens.Parse(body["token"].(string))
		require.NoError(t, err)
		assert.Equal(t, admin.ID, claims.UserID)
	})

	t.Run("wrong password never yields a token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/login", models.LoginRequest{
			Username: "admin",
			Password: "wrong-pass",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Неверное имя пользователя или пароль", body["error"])
		assert.NotContains(t, body, "token")
	})

	t.Run("unknown user is indistinguishable from wrong password", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/login", models.LoginRequest{
			Username: "ghost",
			Password: "whatever",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Неверное имя пользователя или пароль", body["error"])
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/login", map[string]string{
			"username": "admin",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestMentorHandler(t *testing.T) {
	newApp := func(repo *fakeUserRepo) *fiber.App {
		handler := NewMentorHandler(repo)
		app := fiber.New()
		app.Get("/mentors", handler.HandleList)
		app.Post("/mentors", handler.HandleCreate)
		app.Delete("/mentors/:id", handler.HandleDelete)
		return app
	}

	t.Run("create defaults to the line role and hides the password", func(t *testing.T) {
		repo := &fakeUserRepo{}
		app := newApp(repo)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/mentors", models.MentorRequest{
			Username: "mentor1",
			Password: "secret-pass",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "mentor1", body["username"])
		assert.Equal(t, "line", body["role"])
		assert.Equal(t, "Наставник", body["roleLabel"])
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "passwordHash")

		require.Len(t, repo.users, 1)
		assert.NotEqual(t, "secret-pass", repo.users[0].PasswordHash)
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		repo := &fakeUserRepo{users: []*models.User{{ID: uuid.New(), Username: "taken"}}}
		app := newApp(repo)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/mentors", models.MentorRequest{
			Username: "taken",
			Password: "secret-pass",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Len(t, repo.users, 1)

		body := decodeBody(t, resp)
		assert.Equal(t, "Пользователь с таким именем уже существует", body["error"])
	})

	t.Run("deleting a missing mentor errors and leaves the list alone", func(t *testing.T) {
		existing := &models.User{ID: uuid.New(), Username: "kept", Role: models.RoleLine}
		repo := &fakeUserRepo{users: []*models.User{existing}}
		app := newApp(repo)

		resp, err := app.Test(jsonRequest(http.MethodDelete, "/mentors/"+uuid.NewString(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Наставник не найден", body["error"])
		require.Len(t, repo.users, 1)
		assert.Equal(t, "kept", repo.users[0].Username)
	})
}

func TestTaskHandler(t *testing.T) {
	newApp := func(taskRepo *fakeTaskRepo, candidateRepo *fakeCandidateRepo) *fiber.App {
		handler := NewTaskHandler(taskRepo, candidateRepo)
		app := fiber.New()
		app.Get("/tasks", handler.HandleList)
		app.Post("/tasks", handler.HandleCreate)
		app.Post("/assign-task", handler.HandleAssign)
		return app
	}

	t.Run("created task appears once with the formatted deadline", func(t *testing.T) {
		taskRepo := &fakeTaskRepo{}
		app := newApp(taskRepo, &fakeCandidateRepo{})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/tasks", models.TaskRequest{
			Title:    "Intro call",
			Deadline: "2025-01-10",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Intro call", body["title"])
		assert.Equal(t, "2025-01-10", body["deadline"])

		listResp, err := app.Test(jsonRequest(http.MethodGet, "/tasks", nil))
		require.NoError(t, err)
		var list []models.TaskResponse
		require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
		require.Len(t, list, 1)
		assert.Equal(t, "2025-01-10", list[0].Deadline)
	})

	t.Run("bad deadline is rejected", func(t *testing.T) {
		taskRepo := &fakeTaskRepo{}
		app := newApp(taskRepo, &fakeCandidateRepo{})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/tasks", models.TaskRequest{
			Title:    "Intro call",
			Deadline: "10.01.2025",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Empty(t, taskRepo.tasks)
	})

	t.Run("assigning the same pair twice is a conflict", func(t *testing.T) {
		candidate := &models.Candidate{ID: uuid.New(), FirstName: "Иван"}
		task := &models.Task{ID: uuid.New(), Title: "Intro call", Deadline: time.Now()}
		taskRepo := &fakeTaskRepo{tasks: []*models.Task{task}}
		app := newApp(taskRepo, &fakeCandidateRepo{candidates: []*models.Candidate{candidate}})

		payload := []models.AssignTaskRequest{{
			CandidateID: candidate.ID.String(),
			TaskID:      task.ID.String(),
		}}

		first, err := app.Test(jsonRequest(http.MethodPost, "/assign-task", payload))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, first.StatusCode)
		assert.Len(t, taskRepo.assignments, 1)

		second, err := app.Test(jsonRequest(http.MethodPost, "/assign-task", payload))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, second.StatusCode)

		body := decodeBody(t, second)
		assert.Equal(t, "Задача уже назначена этому кандидату!", body["error"])
		assert.Len(t, taskRepo.assignments, 1)
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		taskRepo := &fakeTaskRepo{}
		app := newApp(taskRepo, &fakeCandidateRepo{})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/assign-task", []models.AssignTaskRequest{}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCandidateTasks(t *testing.T) {
	candidate := &models.Candidate{ID: uuid.New(), FirstName: "Иван"}
	candidateRepo := &fakeCandidateRepo{candidates: []*models.Candidate{candidate}}

	taskRepo := &fakeTaskRepo{}
	for i, status := range []models.AssignmentStatus{
		models.AssignmentDone,
		models.AssignmentFailed,
		models.AssignmentInProgress,
		models.AssignmentNotStarted,
	} {
		task := &models.Task{
			ID:       uuid.New(),
			Title:    fmt.Sprintf("Задача %d", i+1),
			Deadline: time.Date(2025, 1, 10+i, 0, 0, 0, 0, time.UTC),
		}
		taskRepo.tasks = append(taskRepo.tasks, task)
		taskRepo.assignments = append(taskRepo.assignments, models.TaskAssignment{
			ID:          uuid.New(),
			CandidateID: candidate.ID,
			TaskID:      task.ID,
			Status:      status,
			Task:        *task,
		})
	}

	handler := NewCandidateHandler(candidateRepo, taskRepo, nil, nil, 0)
	app := fiber.New()
	app.Get("/candidateTasks/:id", handler.HandleCandidateTasks)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/candidateTasks/"+candidate.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.CandidateTasksResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Tasks, 4)
	assert.Equal(t, 25.0, body.CompletionPercentage)
	assert.Equal(t, 25.0, body.Chart.Done)
	assert.Equal(t, 75.0, body.Chart.Remaining)
	assert.Equal(t, "Выполнено", body.Tasks[0].StatusLabel)
	assert.Equal(t, "Не выполнено", body.Tasks[1].StatusLabel)
	assert.Equal(t, "В процессе", body.Tasks[2].StatusLabel)
}
