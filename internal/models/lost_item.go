package models

import (
	"time"

	"github.com/google/uuid"
)

// Item status values. Items are never hard-deleted; a matched or closed
// item keeps its row and only changes status.
const (
	ItemStatusPending = "Pending"
	ItemStatusMatched = "Matched"
	ItemStatusClosed  = "Closed"
)

// LostItem represents a user-submitted report of a missing object (PostgreSQL)
type LostItem struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Type      string     `json:"type" gorm:"size:120;index"`
	Brand     string     `json:"brand" gorm:"size:80"`
	Color     string     `json:"color" gorm:"size:40"`
	Marks     string     `json:"marks" gorm:"size:500"`
	Place     string     `json:"place" gorm:"size:200"`
	Date      *time.Time `json:"date" gorm:"type:date"` // date of loss, calendar date only
	Latitude  *float64   `json:"latitude" gorm:"type:decimal(9,6)"`
	Longitude *float64   `json:"longitude" gorm:"type:decimal(9,6)"`
	PhotoURL  string     `json:"photo_url" gorm:"size:1000"`
	Status    string     `json:"status" gorm:"size:32;default:Pending"`
	OwnerID   uuid.UUID  `json:"owner_id" gorm:"type:uuid;index"`
	OwnerName string     `json:"owner_name" gorm:"size:200"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type AddLostItemRequest struct {
	Type        string   `json:"type" validate:"required,max=120"`
	Brand       string   `json:"brand" validate:"required,max=80"`
	Color       string   `json:"color" validate:"required,max=40"`
	Marks       string   `json:"marks" validate:"max=500"`
	Place       string   `json:"place" validate:"required,max=200"`
	Date        string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	PhotoBase64 string   `json:"photo_base64"`
}
