package repositories

import (
	"errors"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ThreadRepository defines the interface for chat thread operations.
// FindByPair and GetByID return (nil, nil) when no thread matches, so
// callers can distinguish "absent" from a persistence failure.
type ThreadRepository interface {
	Create(thread *models.ChatThread) error
	FindByPair(userA, userB uuid.UUID) (*models.ChatThread, error)
	GetByID(id uuid.UUID) (*models.ChatThread, error)
	GetSortedByUser(userID uuid.UUID) ([]models.ChatThread, error)
	TouchLastActivity(id uuid.UUID, at time.Time) error
}

type postgresThreadRepository struct {
	db *gorm.DB
}

func NewPostgresThreadRepository(db *gorm.DB) ThreadRepository {
	return &postgresThreadRepository{db: db}
}

func (r *postgresThreadRepository) Create(thread *models.ChatThread) error {
	return r.db.Create(thread).Error
}

// FindByPair matches the unordered participant pair: the thread may have been
// initiated from either side.
func (r *postgresThreadRepository) FindByPair(userA, userB uuid.UUID) (*models.ChatThread, error) {
	var thread models.ChatThread
	err := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA,
	).First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &thread, nil
}

func (r *postgresThreadRepository) GetByID(id uuid.UUID) (*models.ChatThread, error) {
	var thread models.ChatThread
	if err := r.db.First(&thread, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &thread, nil
}

func (r *postgresThreadRepository) GetSortedByUser(userID uuid.UUID) ([]models.ChatThread, error) {
	var threads []models.ChatThread
	err := r.db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("last_updated_at DESC").
		Find(&threads).Error
	return threads, err
}

func (r *postgresThreadRepository) TouchLastActivity(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.ChatThread{}).Where("id = ?", id).
		Update("last_updated_at", at).Error
}
