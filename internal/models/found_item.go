package models

import (
	"time"

	"github.com/google/uuid"
)

// FoundItem represents a user-submitted report of a located object (PostgreSQL)
type FoundItem struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Type      string     `json:"type" gorm:"size:120;index"`
	Brand     string     `json:"brand" gorm:"size:80"`
	Color     string     `json:"color" gorm:"size:40"`
	Marks     string     `json:"marks" gorm:"size:500"`
	Place     string     `json:"place" gorm:"size:200"`
	Details   string     `json:"details" gorm:"size:1000"`
	FoundDate *time.Time `json:"found_date" gorm:"type:date"`
	Latitude  *float64   `json:"latitude" gorm:"type:decimal(9,6)"`
	Longitude *float64   `json:"longitude" gorm:"type:decimal(9,6)"`
	PhotoURL  string     `json:"photo_url" gorm:"size:1000"`
	Status    string     `json:"status" gorm:"size:32;default:Pending"`
	OwnerID   uuid.UUID  `json:"owner_id" gorm:"type:uuid;index"`
	OwnerName string     `json:"owner_name" gorm:"size:200"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type AddFoundItemRequest struct {
	Type        string   `json:"type" validate:"required,max=120"`
	Brand       string   `json:"brand" validate:"required,max=80"`
	Color       string   `json:"color" validate:"required,max=40"`
	Marks       string   `json:"marks" validate:"max=500"`
	Place       string   `json:"place" validate:"required,max=200"`
	Details     string   `json:"details" validate:"max=1000"`
	FoundDate   string   `json:"found_date" validate:"omitempty,datetime=2006-01-02"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	PhotoBase64 string   `json:"photo_base64"`
}

// FilterFoundItemsRequest carries the browse filters: item type plus an
// optional date of loss and last-seen coordinates.
type FilterFoundItemsRequest struct {
	ItemType   string   `query:"item_type" validate:"required,max=100"`
	DateOfLoss string   `query:"date_of_loss" validate:"omitempty,datetime=2006-01-02"`
	Latitude   *float64 `query:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude  *float64 `query:"longitude" validate:"omitempty,min=-180,max=180"`
}
