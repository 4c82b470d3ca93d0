package repositories

import (
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemRepository defines the interface for lost/found item data operations.
// The matching engine treats it as a bulk-read source; handlers use it for
// the report and browse endpoints.
type ItemRepository interface {
	CreateLostItem(item *models.LostItem) error
	GetAllLostItems() ([]models.LostItem, error)
	GetLostItemsByOwner(ownerID uuid.UUID) ([]models.LostItem, error)
	CreateFoundItem(item *models.FoundItem) error
	GetAllFoundItems() ([]models.FoundItem, error)
	GetFoundItemsByOwner(ownerID uuid.UUID) ([]models.FoundItem, error)
}

// PostgresItemRepository implements ItemRepository for PostgreSQL
type PostgresItemRepository struct {
	db *gorm.DB
}

// NewPostgresItemRepository creates a new PostgresItemRepository
func NewPostgresItemRepository(db *gorm.DB) *PostgresItemRepository {
	return &PostgresItemRepository{db: db}
}

func (r *PostgresItemRepository) CreateLostItem(item *models.LostItem) error {
	return r.db.Create(item).Error
}

func (r *PostgresItemRepository) GetAllLostItems() ([]models.LostItem, error) {
	var items []models.LostItem
	if err := r.db.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresItemRepository) GetLostItemsByOwner(ownerID uuid.UUID) ([]models.LostItem, error) {
	var items []models.LostItem
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresItemRepository) CreateFoundItem(item *models.FoundItem) error {
	return r.db.Create(item).Error
}

func (r *PostgresItemRepository) GetAllFoundItems() ([]models.FoundItem, error) {
	var items []models.FoundItem
	if err := r.db.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresItemRepository) GetFoundItemsByOwner(ownerID uuid.UUID) ([]models.FoundItem, error) {
	var items []models.FoundItem
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
