package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/repositories"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxMessageLength bounds the text content of a single message.
const MaxMessageLength = 1000

var (
	ErrThreadNotFound = errors.New("chat thread not found")
	ErrEmptyMessage   = errors.New("message must contain text or an attachment")
	ErrMessageTooLong = fmt.Errorf("message text exceeds %d characters", MaxMessageLength)
)

// AttachmentStore hands raw attachment content to external storage and
// returns a retrievable reference. The pipeline never persists raw bytes.
type AttachmentStore interface {
	SaveBase64(data string, name string) (string, error)
}

// Pipeline accepts new chat messages, persists them and fans them out to
// the thread's realtime subscribers.
type Pipeline struct {
	threads     repositories.ThreadRepository
	messages    repositories.MessageRepository
	attachments AttachmentStore
	hub         *Hub
}

func NewPipeline(threads repositories.ThreadRepository, messages repositories.MessageRepository, attachments AttachmentStore, hub *Hub) *Pipeline {
	return &Pipeline{
		threads:     threads,
		messages:    messages,
		attachments: attachments,
		hub:         hub,
	}
}

// Send validates, persists and broadcasts a new message. The receiver is
// derived from the thread: the participant who is not the sender. The
// thread's last-activity timestamp is advanced to the message's send time.
func (p *Pipeline) Send(ctx context.Context, threadID, senderID uuid.UUID, senderName, text, attachmentBase64 string) (*models.ChatMessage, error) {
	if text == "" && attachmentBase64 == "" {
		return nil, ErrEmptyMessage
	}
	if len(text) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	thread, err := p.threads.GetByID(threadID)
	if err != nil {
		return nil, fmt.Errorf("looking up chat thread: %w", err)
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}

	receiverID := thread.ReceiverID
	if receiverID == senderID {
		receiverID = thread.SenderID
	}

	message := &models.ChatMessage{
		ID:         primitive.NewObjectID(),
		ThreadID:   threadID.String(),
		SenderID:   senderID.String(),
		ReceiverID: receiverID.String(),
		SenderName: senderName,
		Text:       text,
		SentAt:     time.Now(),
	}

	if attachmentBase64 != "" {
		url, err := p.attachments.SaveBase64(attachmentBase64, message.ID.Hex())
		if err != nil {
			return nil, fmt.Errorf("storing attachment: %w", err)
		}
		message.AttachmentURL = url
	}

	if err := p.messages.InsertMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("storing message: %w", err)
	}

	if err := p.threads.TouchLastActivity(threadID, message.SentAt); err != nil {
		return nil, fmt.Errorf("updating thread activity: %w", err)
	}

	p.hub.Broadcast(message.ThreadID, Event{
		Type:     "message",
		ThreadID: message.ThreadID,
		Message:  message,
	})

	return message, nil
}

// ListByThread returns the thread's messages ordered by send time ascending.
func (p *Pipeline) ListByThread(ctx context.Context, threadID uuid.UUID) ([]models.ChatMessage, error) {
	thread, err := p.threads.GetByID(threadID)
	if err != nil {
		return nil, fmt.Errorf("looking up chat thread: %w", err)
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}
	return p.messages.GetByThread(ctx, threadID.String())
}
