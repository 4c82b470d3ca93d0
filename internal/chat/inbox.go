package chat

import (
	"sort"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
)

// duplicateWindow is the time window of the defensive content-based
// duplicate check: two messages with the same sender, text and attachment
// sent within it are treated as one delivery replayed.
const duplicateWindow = 5 * time.Second

// Inbox reconciles realtime deliveries for display. The transport is
// at-least-once and unordered, so the receiving side re-sorts by send time
// and deduplicates by message id, with a content+sender+time-window
// heuristic as a fallback for replays that arrive under a fresh id.
type Inbox struct {
	seen     map[string]struct{}
	messages []models.ChatMessage
}

func NewInbox() *Inbox {
	return &Inbox{seen: make(map[string]struct{})}
}

// Add merges a delivered message into the inbox. It reports whether the
// message was new; a duplicate delivery leaves the inbox unchanged.
func (in *Inbox) Add(message models.ChatMessage) bool {
	id := message.ID.Hex()
	if _, ok := in.seen[id]; ok {
		return false
	}
	for _, existing := range in.messages {
		if existing.SenderID == message.SenderID &&
			existing.Text == message.Text &&
			existing.AttachmentURL == message.AttachmentURL &&
			absDuration(existing.SentAt.Sub(message.SentAt)) < duplicateWindow {
			return false
		}
	}

	in.seen[id] = struct{}{}
	in.messages = append(in.messages, message)
	sort.SliceStable(in.messages, func(i, j int) bool {
		return in.messages[i].SentAt.Before(in.messages[j].SentAt)
	})
	return true
}

// Reload replaces the inbox content with a full history fetch, reapplying
// the same ordering and deduplication. Used after a reconnect to reconcile
// messages missed while disconnected.
func (in *Inbox) Reload(history []models.ChatMessage) {
	in.seen = make(map[string]struct{})
	in.messages = nil
	for _, message := range history {
		in.Add(message)
	}
}

// Messages returns the display order: send time ascending.
func (in *Inbox) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(in.messages))
	copy(out, in.messages)
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
