package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hradmin/recruitment-api/internal/models"
)

type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []models.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	Claim(ctx context.Context, id uuid.UUID) error
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string) error
	FindQueued(ctx context.Context, limit int) ([]models.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&notifications).Error; err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	return nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	return &notification, nil
}

// Claim atomically moves a queued row to sending. The guarded update is
// what keeps a direct enqueue and the requeue poller from delivering the
// same row twice: only one caller sees RowsAffected == 1.
func (r *notificationRepository) Claim(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND status = ?", id, models.NotificationQueued).
		Updates(map[string]interface{}{
			"status":     models.NotificationSending,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to claim notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.NotificationSent,
			"sent_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification sent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string) error {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.NotificationFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) FindQueued(ctx context.Context, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("status = ?", models.NotificationQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find queued notifications: %w", err)
	}
	return notifications, nil
}
