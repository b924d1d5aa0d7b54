package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
)

// Sender delivers one notification to its recipient (the bot webhook,
// email, etc.). Delivery failures are recorded on the row, never retried
// within a dispatch.
type Sender interface {
	Send(ctx context.Context, notification *models.Notification) error
}

// LogSender is the default delivery channel: it only logs. The real
// messenger integration lives outside this service.
type LogSender struct{}

func (LogSender) Send(_ context.Context, n *models.Notification) error {
	log.Printf("📨 Notification %s -> candidate %s: %s\n", n.Kind, n.CandidateID, n.Message)
	return nil
}

// Dispatcher drains queued notifications through a fixed-size worker
// pool. A poller re-enqueues rows that stayed queued (e.g. after a
// crash before delivery).
type Dispatcher interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(notificationID uuid.UUID)
}

type dispatcher struct {
	notifRepo   repositories.NotificationRepository
	sender      Sender
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewDispatcher(
	notifRepo repositories.NotificationRepository,
	sender Sender,
	concurrency int,
) Dispatcher {
	return &dispatcher{
		notifRepo:   notifRepo,
		sender:      sender,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

func (d *dispatcher) Start(ctx context.Context) {
	log.Printf("🚀 Starting notification dispatcher with %d workers\n", d.concurrency)

	for i := 0; i < d.concurrency; i++ {
		d.wg.Add(1)
		go d.processJobs(ctx, i+1)
	}

	d.wg.Add(1)
	go d.pollQueued(ctx)
}

func (d *dispatcher) Stop() {
	log.Println("🛑 Stopping notification dispatcher...")
	close(d.stopChan)
	d.wg.Wait()
	log.Println("✅ Notification dispatcher stopped")
}

func (d *dispatcher) Enqueue(notificationID uuid.UUID) {
	select {
	case d.jobQueue <- notificationID:
	case <-d.stopChan:
		log.Printf("⚠️  Dispatcher stopped, cannot enqueue notification %s\n", notificationID)
	}
}

func (d *dispatcher) processJobs(ctx context.Context, workerID int) {
	defer d.wg.Done()

	for {
		select {
		case <-d.stopChan:
			log.Printf("👷 Dispatcher worker #%d stopped\n", workerID)
			return
		case notificationID := <-d.jobQueue:
			if err := d.deliver(ctx, notificationID); err != nil {
				log.Printf("❌ Worker #%d failed to deliver %s: %v\n", workerID, notificationID, err)
			}
		}
	}
}

func (d *dispatcher) deliver(ctx context.Context, notificationID uuid.UUID) error {
	// A direct enqueue and the poller can both carry this id; the claim
	// is atomic, so only one worker proceeds past it.
	if err := d.notifRepo.Claim(ctx, notificationID); err != nil {
		if repositories.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to claim notification: %w", err)
	}

	notification, err := d.notifRepo.FindByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("failed to load notification: %w", err)
	}

	if err := d.sender.Send(ctx, notification); err != nil {
		if markErr := d.notifRepo.MarkFailed(ctx, notificationID, err.Error()); markErr != nil {
			return fmt.Errorf("failed to record delivery failure: %w", markErr)
		}
		return fmt.Errorf("delivery failed: %w", err)
	}

	return d.notifRepo.MarkSent(ctx, notificationID)
}

func (d *dispatcher) pollQueued(ctx context.Context) {
	defer d.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopChan:
			return
		case <-ticker.C:
			queued, err := d.notifRepo.FindQueued(ctx, 10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch queued notifications: %v\n", err)
				continue
			}
			for _, n := range queued {
				d.Enqueue(n.ID)
			}
		}
	}
}
