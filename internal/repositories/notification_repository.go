package repositories

import (
	"errors"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// The (FoundItemID, ReceiverID) pair is the deduplication key: callers check
// Exists before Create so that repeated matching passes emit at most one
// notification per qualifying pair.
type NotificationRepository interface {
	Exists(foundItemID, receiverID uuid.UUID) (bool, error)
	Create(notification *models.Notification) error
	GetByReceiver(receiverID uuid.UUID) ([]models.Notification, error)
	ToggleRead(id uuid.UUID) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Exists(foundItemID, receiverID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("found_item_id = ? AND receiver_id = ?", foundItemID, receiverID).
		Count(&count).Error
	return count > 0, err
}

func (r *postgresNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByReceiver(receiverID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// ToggleRead inverts the read flag. An unknown id is a silent no-op.
func (r *postgresNotificationRepository) ToggleRead(id uuid.UUID) error {
	var notification models.Notification
	if err := r.db.First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return r.db.Model(&notification).Update("is_read", !notification.IsRead).Error
}
