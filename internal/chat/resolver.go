package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/repositories"
	"github.com/google/uuid"
)

// ErrSelfChat is returned when a user tries to open a thread with themselves.
var ErrSelfChat = errors.New("you cannot chat with yourself")

// Resolver finds or creates the single canonical thread between two users.
type Resolver struct {
	threads repositories.ThreadRepository
}

func NewResolver(threads repositories.ThreadRepository) *Resolver {
	return &Resolver{threads: threads}
}

// FindOrCreate returns the existing thread for the unordered pair
// {initiator, receiver}, or creates one with the initiator recorded as
// sender. Initiating from either side resolves to the same thread.
// Nothing is persisted on a self-chat attempt.
func (r *Resolver) FindOrCreate(initiatorID, receiverID uuid.UUID, initiatorName, receiverName string) (*models.ChatThread, error) {
	if initiatorID == receiverID {
		return nil, ErrSelfChat
	}

	existing, err := r.threads.FindByPair(initiatorID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("looking up chat thread: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	thread := &models.ChatThread{
		ID:            uuid.New(),
		SenderID:      initiatorID,
		ReceiverID:    receiverID,
		SenderName:    initiatorName,
		ReceiverName:  receiverName,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if err := r.threads.Create(thread); err != nil {
		return nil, fmt.Errorf("creating chat thread: %w", err)
	}
	return thread, nil
}
