package repositories

import (
	"context"

	"github.com/anonto42/lms/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotifications(ctx context.Context, notifications []models.Notification) error
	GetByRecipient(ctx context.Context, recipientUID string, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(ctx context.Context, recipientUID string) (int64, error)
	MarkAsRead(ctx context.Context, recipientUID string, notificationID uint) error
	MarkAllAsRead(ctx context.Context, recipientUID string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotifications(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&notifications).Error
}

func (r *postgresNotificationRepository) GetByRecipient(ctx context.Context, recipientUID string, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Notification{}).Where("recipient_uid = ?", recipientUID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Where("recipient_uid = ?", recipientUID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientUID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_uid = ? AND is_read = false", recipientUID).
		Count(&count).Error
	return count, err
}

// MarkAsRead only touches notifications owned by the recipient
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, recipientUID string, notificationID uint) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_uid = ?", notificationID, recipientUID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientUID string) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_uid = ? AND is_read = false", recipientUID).
		Update("is_read", true).Error
}
