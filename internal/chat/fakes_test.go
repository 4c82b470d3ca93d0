package chat

import (
	"context"
	"sort"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/google/uuid"
)

type fakeThreadRepo struct {
	threads map[uuid.UUID]*models.ChatThread
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{threads: make(map[uuid.UUID]*models.ChatThread)}
}

func (r *fakeThreadRepo) Create(thread *models.ChatThread) error {
	copied := *thread
	r.threads[thread.ID] = &copied
	return nil
}

func (r *fakeThreadRepo) FindByPair(userA, userB uuid.UUID) (*models.ChatThread, error) {
	for _, thread := range r.threads {
		if (thread.SenderID == userA && thread.ReceiverID == userB) ||
			(thread.SenderID == userB && thread.ReceiverID == userA) {
			copied := *thread
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeThreadRepo) GetByID(id uuid.UUID) (*models.ChatThread, error) {
	thread, ok := r.threads[id]
	if !ok {
		return nil, nil
	}
	copied := *thread
	return &copied, nil
}

func (r *fakeThreadRepo) GetSortedByUser(userID uuid.UUID) ([]models.ChatThread, error) {
	var out []models.ChatThread
	for _, thread := range r.threads {
		if thread.SenderID == userID || thread.ReceiverID == userID {
			out = append(out, *thread)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastUpdatedAt.After(out[j].LastUpdatedAt)
	})
	return out, nil
}

func (r *fakeThreadRepo) TouchLastActivity(id uuid.UUID, at time.Time) error {
	if thread, ok := r.threads[id]; ok {
		thread.LastUpdatedAt = at
	}
	return nil
}

type fakeMessageRepo struct {
	messages []models.ChatMessage
}

func (r *fakeMessageRepo) InsertMessage(ctx context.Context, message *models.ChatMessage) error {
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) GetByThread(ctx context.Context, threadID string) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, message := range r.messages {
		if message.ThreadID == threadID {
			out = append(out, message)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out, nil
}

type fakeAttachmentStore struct {
	saved map[string]string
}

func newFakeAttachmentStore() *fakeAttachmentStore {
	return &fakeAttachmentStore{saved: make(map[string]string)}
}

func (s *fakeAttachmentStore) SaveBase64(data, name string) (string, error) {
	s.saved[name] = data
	return "/images/" + name + ".jpg", nil
}
