package chat

import "testing"

func TestHubBroadcastReachesSubscribers(t *testing.T) {
	hub := NewHub()
	a := NewClient(4)
	b := NewClient(4)
	hub.Join("thread-1", a)
	hub.Join("thread-1", b)

	hub.Broadcast("thread-1", Event{Type: "message"})

	for _, client := range []*Client{a, b} {
		select {
		case <-client.Events():
		default:
			t.Error("subscriber missed the broadcast")
		}
	}
}

func TestHubDoesNotDeliverAcrossThreads(t *testing.T) {
	hub := NewHub()
	a := NewClient(4)
	hub.Join("thread-1", a)

	hub.Broadcast("thread-2", Event{Type: "message"})

	select {
	case <-a.Events():
		t.Error("client received an event for a thread it never joined")
	default:
	}
}

func TestHubLeaveStopsDelivery(t *testing.T) {
	hub := NewHub()
	a := NewClient(4)
	hub.Join("thread-1", a)
	hub.Leave("thread-1", a)

	hub.Broadcast("thread-1", Event{Type: "message"})

	select {
	case <-a.Events():
		t.Error("client received an event after leaving")
	default:
	}
	if hub.SubscriberCount("thread-1") != 0 {
		t.Error("leave should drop the subscription")
	}
}

func TestHubLeaveAllReleasesEverySubscription(t *testing.T) {
	hub := NewHub()
	a := NewClient(4)
	hub.Join("thread-1", a)
	hub.Join("thread-2", a)

	hub.LeaveAll(a)

	if hub.SubscriberCount("thread-1") != 0 || hub.SubscriberCount("thread-2") != 0 {
		t.Error("connection drop must release all subscriptions")
	}
}

func TestHubSkipsSlowSubscriber(t *testing.T) {
	hub := NewHub()
	slow := NewClient(1)
	fast := NewClient(4)
	hub.Join("thread-1", slow)
	hub.Join("thread-1", fast)

	// Fill the slow client's buffer; further broadcasts must not block.
	hub.Broadcast("thread-1", Event{Type: "message"})
	hub.Broadcast("thread-1", Event{Type: "message"})

	if got := len(fast.Events()); got != 2 {
		t.Errorf("fast subscriber should have both events, got %d", got)
	}
	if got := len(slow.Events()); got != 1 {
		t.Errorf("slow subscriber should have been skipped after filling up, got %d", got)
	}
}
