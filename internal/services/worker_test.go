package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
)

type memoryNotificationRepo struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]*models.Notification
}

func newMemoryNotificationRepo() *memoryNotificationRepo {
	return &memoryNotificationRepo{notifications: make(map[uuid.UUID]*models.Notification)}
}

func (r *memoryNotificationRepo) CreateBatch(_ context.Context, notifications []models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range notifications {
		n := notifications[i]
		r.notifications[n.ID] = &n
	}
	return nil
}

func (r *memoryNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *n
	return &copied, nil
}

func (r *memoryNotificationRepo) Claim(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok || n.Status != models.NotificationQueued {
		return repositories.ErrNotFound
	}
	n.Status = models.NotificationSending
	return nil
}

func (r *memoryNotificationRepo) MarkSent(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return repositories.ErrNotFound
	}
	n.Status = models.NotificationSent
	return nil
}

func (r *memoryNotificationRepo) MarkFailed(_ context.Context, id uuid.UUID, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return repositories.ErrNotFound
	}
	n.Status = models.NotificationFailed
	n.ErrorMessage = &errorMsg
	return nil
}

func (r *memoryNotificationRepo) FindQueued(_ context.Context, limit int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.notifications {
		if n.Status == models.NotificationQueued {
			out = append(out, *n)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *memoryNotificationRepo) status(id uuid.UUID) models.NotificationStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notifications[id].Status
}

type recordingSender struct {
	mu   sync.Mutex
	sent []uuid.UUID
	fail bool
}

func (s *recordingSender) Send(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("delivery refused")
	}
	s.sent = append(s.sent, n.ID)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func queued(candidateID uuid.UUID) models.Notification {
	return models.Notification{
		ID:          uuid.New(),
		CandidateID: candidateID,
		Kind:        models.NotificationMessage,
		Message:     "Добро пожаловать",
		Status:      models.NotificationQueued,
	}
}

func TestDispatcher(t *testing.T) {
	t.Run("enqueued notification is delivered and marked sent", func(t *testing.T) {
		repo := newMemoryNotificationRepo()
		sender := &recordingSender{}
		d := NewDispatcher(repo, sender, 2)
		d.Start(context.Background())
		defer d.Stop()

		n := queued(uuid.New())
		require.NoError(t, repo.CreateBatch(context.Background(), []models.Notification{n}))
		d.Enqueue(n.ID)

		waitFor(t, func() bool { return repo.status(n.ID) == models.NotificationSent })
		assert.Equal(t, 1, sender.count())
	})

	t.Run("failed delivery marks the row failed with the reason", func(t *testing.T) {
		repo := newMemoryNotificationRepo()
		sender := &recordingSender{fail: true}
		d := NewDispatcher(repo, sender, 1)
		d.Start(context.Background())
		defer d.Stop()

		n := queued(uuid.New())
		require.NoError(t, repo.CreateBatch(context.Background(), []models.Notification{n}))
		d.Enqueue(n.ID)

		waitFor(t, func() bool { return repo.status(n.ID) == models.NotificationFailed })

		stored, err := repo.FindByID(context.Background(), n.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.ErrorMessage)
		assert.Contains(t, *stored.ErrorMessage, "delivery refused")
	})

	t.Run("a row enqueued twice is delivered once", func(t *testing.T) {
		repo := newMemoryNotificationRepo()
		sender := &recordingSender{}
		d := NewDispatcher(repo, sender, 2)
		d.Start(context.Background())
		defer d.Stop()

		n := queued(uuid.New())
		require.NoError(t, repo.CreateBatch(context.Background(), []models.Notification{n}))
		// Simulates the poller re-enqueueing a row that was already
		// enqueued directly.
		d.Enqueue(n.ID)
		d.Enqueue(n.ID)

		waitFor(t, func() bool { return repo.status(n.ID) == models.NotificationSent })
		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, 1, sender.count())
	})

	t.Run("already sent rows are not delivered twice", func(t *testing.T) {
		repo := newMemoryNotificationRepo()
		sender := &recordingSender{}
		d := NewDispatcher(repo, sender, 1)
		d.Start(context.Background())
		defer d.Stop()

		n := queued(uuid.New())
		n.Status = models.NotificationSent
		require.NoError(t, repo.CreateBatch(context.Background(), []models.Notification{n}))
		d.Enqueue(n.ID)

		time.Sleep(100 * time.Millisecond)
		assert.Zero(t, sender.count())
	})
}
