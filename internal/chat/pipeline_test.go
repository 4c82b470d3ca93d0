package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/google/uuid"
)

func newTestPipeline(t *testing.T) (*Pipeline, *fakeThreadRepo, *fakeMessageRepo, *fakeAttachmentStore, *Hub, *models.ChatThread) {
	t.Helper()

	threads := newFakeThreadRepo()
	messages := &fakeMessageRepo{}
	attachments := newFakeAttachmentStore()
	hub := NewHub()
	pipeline := NewPipeline(threads, messages, attachments, hub)

	thread, err := NewResolver(threads).FindOrCreate(uuid.New(), uuid.New(), "A", "B")
	if err != nil {
		t.Fatalf("creating thread: %v", err)
	}
	return pipeline, threads, messages, attachments, hub, thread
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	pipeline, _, messages, _, _, thread := newTestPipeline(t)

	_, err := pipeline.Send(context.Background(), thread.ID, thread.SenderID, "A", "", "")
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if len(messages.messages) != 0 {
		t.Error("nothing should be persisted on a validation failure")
	}
}

func TestSendRejectsOverlongText(t *testing.T) {
	pipeline, _, _, _, _, thread := newTestPipeline(t)

	_, err := pipeline.Send(context.Background(), thread.ID, thread.SenderID, "A", strings.Repeat("x", MaxMessageLength+1), "")
	if !errors.Is(err, ErrMessageTooLong) {
		t.Fatalf("expected ErrMessageTooLong, got %v", err)
	}
}

func TestSendRejectsUnknownThread(t *testing.T) {
	pipeline, _, _, _, _, _ := newTestPipeline(t)

	_, err := pipeline.Send(context.Background(), uuid.New(), uuid.New(), "A", "hello", "")
	if !errors.Is(err, ErrThreadNotFound) {
		t.Fatalf("expected ErrThreadNotFound, got %v", err)
	}
}

func TestSendPersistsAndTouchesThread(t *testing.T) {
	pipeline, threads, messages, _, _, thread := newTestPipeline(t)

	stored, err := pipeline.Send(context.Background(), thread.ID, thread.SenderID, "A", "hello", "")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if stored.ID.IsZero() {
		t.Error("stored message must carry a server-assigned id")
	}
	if stored.SentAt.IsZero() {
		t.Error("stored message must carry a server-assigned timestamp")
	}
	if stored.ReceiverID != thread.ReceiverID.String() {
		t.Errorf("receiver should be the other participant, got %s", stored.ReceiverID)
	}
	if len(messages.messages) != 1 {
		t.Fatalf("expected 1 persisted message, got %d", len(messages.messages))
	}

	updated, _ := threads.GetByID(thread.ID)
	if !updated.LastUpdatedAt.Equal(stored.SentAt) {
		t.Errorf("thread last activity should advance to the message send time")
	}
}

func TestSendDerivesReceiverForThreadReceiver(t *testing.T) {
	pipeline, _, _, _, _, thread := newTestPipeline(t)

	// The thread's receiver replies; the message receiver must be the
	// original initiator.
	stored, err := pipeline.Send(context.Background(), thread.ID, thread.ReceiverID, "B", "reply", "")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if stored.ReceiverID != thread.SenderID.String() {
		t.Errorf("expected receiver %s, got %s", thread.SenderID, stored.ReceiverID)
	}
}

func TestSendFansOutToAllSubscribers(t *testing.T) {
	pipeline, _, _, _, hub, thread := newTestPipeline(t)

	sender := NewClient(4)
	other := NewClient(4)
	hub.Join(thread.ID.String(), sender)
	hub.Join(thread.ID.String(), other)

	stored, err := pipeline.Send(context.Background(), thread.ID, thread.SenderID, "A", "hello", "")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	for _, client := range []*Client{sender, other} {
		select {
		case event := <-client.Events():
			if event.Type != "message" {
				t.Errorf("expected message event, got %q", event.Type)
			}
			if event.Message == nil || event.Message.ID != stored.ID {
				t.Error("event should carry the stored message")
			}
		default:
			t.Error("subscriber did not receive the fan-out event")
		}
	}
}

func TestSendStoresAttachmentReferenceOnly(t *testing.T) {
	pipeline, _, messages, attachments, _, thread := newTestPipeline(t)

	stored, err := pipeline.Send(context.Background(), thread.ID, thread.SenderID, "A", "", "aGVsbG8=")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if stored.AttachmentURL == "" {
		t.Fatal("message should reference the stored attachment")
	}
	if _, ok := attachments.saved[stored.ID.Hex()]; !ok {
		t.Error("attachment content should be handed to the store keyed by message id")
	}
	if strings.Contains(messages.messages[0].AttachmentURL, "aGVsbG8=") {
		t.Error("raw attachment bytes must never be persisted in the message record")
	}
}

func TestListByThreadOrdersBySendTime(t *testing.T) {
	pipeline, _, _, _, _, thread := newTestPipeline(t)

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if _, err := pipeline.Send(context.Background(), thread.ID, thread.SenderID, "A", text, ""); err != nil {
			t.Fatalf("Send %q: %v", text, err)
		}
	}

	listed, err := pipeline.ListByThread(context.Background(), thread.ID)
	if err != nil {
		t.Fatalf("ListByThread: %v", err)
	}
	if len(listed) != len(texts) {
		t.Fatalf("expected %d messages, got %d", len(texts), len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i].SentAt.Before(listed[i-1].SentAt) {
			t.Errorf("messages out of order at index %d", i)
		}
	}
}

func TestListByThreadRejectsUnknownThread(t *testing.T) {
	pipeline, _, _, _, _, _ := newTestPipeline(t)

	_, err := pipeline.ListByThread(context.Background(), uuid.New())
	if !errors.Is(err, ErrThreadNotFound) {
		t.Fatalf("expected ErrThreadNotFound, got %v", err)
	}
}
