package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification records a single auto-match emission (PostgreSQL).
// At most one row may exist per (FoundItemID, ReceiverID) pair; the
// matching engine checks for an existing row before inserting.
type Notification struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FoundItemID uuid.UUID `json:"found_item_id" gorm:"type:uuid;index:idx_notifications_pair"`
	ReceiverID  uuid.UUID `json:"receiver_id" gorm:"type:uuid;index:idx_notifications_pair"`
	IsRead      bool      `json:"is_read" gorm:"default:false"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
