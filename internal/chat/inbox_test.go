package chat

import (
	"testing"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func inboxMessage(sender, text string, sentAt time.Time) models.ChatMessage {
	return models.ChatMessage{
		ID:       primitive.NewObjectID(),
		ThreadID: "thread-1",
		SenderID: sender,
		Text:     text,
		SentAt:   sentAt,
	}
}

func TestInboxResortsOutOfOrderDelivery(t *testing.T) {
	base := time.Now()
	first := inboxMessage("a", "first", base)
	second := inboxMessage("a", "second", base.Add(10*time.Second))
	third := inboxMessage("a", "third", base.Add(20*time.Second))

	// The transport may replay deliveries in any order.
	inbox := NewInbox()
	inbox.Add(third)
	inbox.Add(first)
	inbox.Add(second)

	got := inbox.Messages()
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Text != want {
			t.Errorf("position %d: expected %q, got %q", i, want, got[i].Text)
		}
	}
}

func TestInboxDeduplicatesById(t *testing.T) {
	message := inboxMessage("a", "hello", time.Now())

	inbox := NewInbox()
	if !inbox.Add(message) {
		t.Fatal("first delivery should be accepted")
	}
	if inbox.Add(message) {
		t.Error("replayed delivery of the same id should be dropped")
	}
	if len(inbox.Messages()) != 1 {
		t.Errorf("expected exactly one displayed message, got %d", len(inbox.Messages()))
	}
}

func TestInboxDeduplicatesByContentWindow(t *testing.T) {
	base := time.Now()
	original := inboxMessage("a", "hello", base)
	replayed := inboxMessage("a", "hello", base.Add(time.Second)) // fresh id, same content

	inbox := NewInbox()
	inbox.Add(original)
	if inbox.Add(replayed) {
		t.Error("near-identical message inside the window should be treated as a replay")
	}

	later := inboxMessage("a", "hello", base.Add(time.Minute))
	if !inbox.Add(later) {
		t.Error("the same text sent well outside the window is a genuine new message")
	}
}

func TestInboxReloadReconcilesHistory(t *testing.T) {
	base := time.Now()
	history := []models.ChatMessage{
		inboxMessage("a", "one", base),
		inboxMessage("b", "two", base.Add(5*time.Minute)),
	}

	inbox := NewInbox()
	inbox.Add(inboxMessage("c", "stale", base.Add(time.Hour)))
	inbox.Reload(history)

	got := inbox.Messages()
	if len(got) != 2 {
		t.Fatalf("expected reloaded history of 2, got %d", len(got))
	}
	if got[0].Text != "one" || got[1].Text != "two" {
		t.Error("reloaded history should keep send-time order")
	}
}
