package models

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatThread is the persistent conversation container between exactly two
// users (PostgreSQL). SenderID denotes the thread initiator, not the sender
// of any particular message. Exactly one thread exists per unordered pair.
type ChatThread struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SenderID      uuid.UUID `json:"sender_id" gorm:"type:uuid;index"`
	ReceiverID    uuid.UUID `json:"receiver_id" gorm:"type:uuid;index"`
	SenderName    string    `json:"sender_name" gorm:"size:200"`
	ReceiverName  string    `json:"receiver_name" gorm:"size:200"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at" gorm:"index"`
}

// ChatMessage is a single message within a thread (MongoDB). The id is
// globally unique and serves as the deduplication key for realtime delivery.
type ChatMessage struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ThreadID      string             `json:"thread_id" bson:"thread_id"`
	SenderID      string             `json:"sender_id" bson:"sender_id"`
	ReceiverID    string             `json:"receiver_id,omitempty" bson:"receiver_id,omitempty"`
	SenderName    string             `json:"sender_name,omitempty" bson:"sender_name,omitempty"`
	Text          string             `json:"text,omitempty" bson:"text,omitempty"`
	AttachmentURL string             `json:"attachment_url,omitempty" bson:"attachment_url,omitempty"`
	SentAt        time.Time          `json:"sent_at" bson:"sent_at"`
}

type InitiateThreadRequest struct {
	ReceiverID   uuid.UUID `json:"receiver_id" validate:"required"`
	ReceiverName string    `json:"receiver_name" validate:"required,max=200"`
}

type SendMessageRequest struct {
	ThreadID         uuid.UUID `json:"thread_id" validate:"required"`
	Text             string    `json:"text" validate:"max=1000"`
	AttachmentBase64 string    `json:"attachment_base64"`
}
