package matching

import (
	"strings"
	"testing"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/google/uuid"
)

type fakeItemRepo struct {
	lost  []models.LostItem
	found []models.FoundItem
}

func (r *fakeItemRepo) CreateLostItem(item *models.LostItem) error {
	r.lost = append(r.lost, *item)
	return nil
}

func (r *fakeItemRepo) GetAllLostItems() ([]models.LostItem, error) {
	return append([]models.LostItem(nil), r.lost...), nil
}

func (r *fakeItemRepo) GetLostItemsByOwner(ownerID uuid.UUID) ([]models.LostItem, error) {
	var items []models.LostItem
	for _, item := range r.lost {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeItemRepo) CreateFoundItem(item *models.FoundItem) error {
	r.found = append(r.found, *item)
	return nil
}

func (r *fakeItemRepo) GetAllFoundItems() ([]models.FoundItem, error) {
	return append([]models.FoundItem(nil), r.found...), nil
}

func (r *fakeItemRepo) GetFoundItemsByOwner(ownerID uuid.UUID) ([]models.FoundItem, error) {
	var items []models.FoundItem
	for _, item := range r.found {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	return items, nil
}

type fakeNotificationStore struct {
	notifications []models.Notification
}

func (s *fakeNotificationStore) Exists(foundItemID, receiverID uuid.UUID) (bool, error) {
	for _, n := range s.notifications {
		if n.FoundItemID == foundItemID && n.ReceiverID == receiverID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeNotificationStore) Create(notification *models.Notification) error {
	s.notifications = append(s.notifications, *notification)
	return nil
}

func (s *fakeNotificationStore) GetByReceiver(receiverID uuid.UUID) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range s.notifications {
		if n.ReceiverID == receiverID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) ToggleRead(id uuid.UUID) error {
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].IsRead = !s.notifications[i].IsRead
		}
	}
	return nil
}

func coord(v float64) *float64 { return &v }

func date(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func lostPhone(owner uuid.UUID) models.LostItem {
	return models.LostItem{
		ID:        uuid.New(),
		Type:      "Phone",
		Date:      date("2024-05-01"),
		Latitude:  coord(23.8103),
		Longitude: coord(90.4125),
		OwnerID:   owner,
	}
}

func foundPhoneNearby() models.FoundItem {
	return models.FoundItem{
		ID:        uuid.New(),
		Type:      "Phone",
		FoundDate: date("2024-05-02"),
		Latitude:  coord(23.8105),
		Longitude: coord(90.4128),
		OwnerID:   uuid.New(),
	}
}

func TestMatchPassEmitsNotification(t *testing.T) {
	owner := uuid.New()
	found := foundPhoneNearby()
	items := &fakeItemRepo{lost: []models.LostItem{lostPhone(owner)}, found: []models.FoundItem{found}}
	store := &fakeNotificationStore{}

	engine := NewEngine(items, store, time.Second)
	if err := engine.runPass(); err != nil {
		t.Fatalf("runPass: %v", err)
	}

	if len(store.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(store.notifications))
	}
	n := store.notifications[0]
	if n.FoundItemID != found.ID {
		t.Errorf("notification references wrong found item: %s", n.FoundItemID)
	}
	if n.ReceiverID != owner {
		t.Errorf("notification addressed to wrong user: %s", n.ReceiverID)
	}
	if n.IsRead {
		t.Error("new notification should be unread")
	}
	if !strings.Contains(n.Details, "Phone") {
		t.Errorf("details should name the lost item type, got %q", n.Details)
	}
}

func TestMatchPassSkipsFarItems(t *testing.T) {
	far := foundPhoneNearby()
	far.Latitude = coord(23.9000)
	far.Longitude = coord(90.5000)
	far.FoundDate = date("2024-06-20") // no date similarity either

	items := &fakeItemRepo{lost: []models.LostItem{lostPhone(uuid.New())}, found: []models.FoundItem{far}}
	store := &fakeNotificationStore{}

	engine := NewEngine(items, store, time.Second)
	if err := engine.runPass(); err != nil {
		t.Fatalf("runPass: %v", err)
	}

	if len(store.notifications) != 0 {
		t.Fatalf("expected no notifications for a far pair, got %d", len(store.notifications))
	}
}

func TestMatchPassIsIdempotent(t *testing.T) {
	items := &fakeItemRepo{lost: []models.LostItem{lostPhone(uuid.New())}, found: []models.FoundItem{foundPhoneNearby()}}
	store := &fakeNotificationStore{}

	engine := NewEngine(items, store, time.Second)
	for i := 0; i < 2; i++ {
		if err := engine.runPass(); err != nil {
			t.Fatalf("runPass %d: %v", i, err)
		}
	}

	if len(store.notifications) != 1 {
		t.Fatalf("expected exactly 1 notification after two passes, got %d", len(store.notifications))
	}
}

func TestDateRuleMatchesDifferentTypes(t *testing.T) {
	// Types differ, but the dates are one day apart and the items are
	// nearby, so the pair still qualifies.
	lost := lostPhone(uuid.New())
	found := foundPhoneNearby()
	found.Type = "Wallet"

	items := &fakeItemRepo{lost: []models.LostItem{lost}, found: []models.FoundItem{found}}
	store := &fakeNotificationStore{}

	engine := NewEngine(items, store, time.Second)
	if err := engine.runPass(); err != nil {
		t.Fatalf("runPass: %v", err)
	}

	if len(store.notifications) != 1 {
		t.Fatalf("expected 1 notification via the date rule, got %d", len(store.notifications))
	}
}

func TestMissingCoordinatesNeverMatch(t *testing.T) {
	lost := lostPhone(uuid.New())
	lost.Latitude = nil
	lost.Longitude = nil

	items := &fakeItemRepo{lost: []models.LostItem{lost}, found: []models.FoundItem{foundPhoneNearby()}}
	store := &fakeNotificationStore{}

	engine := NewEngine(items, store, time.Second)
	if err := engine.runPass(); err != nil {
		t.Fatalf("runPass: %v", err)
	}

	if len(store.notifications) != 0 {
		t.Fatalf("expected no notifications without coordinates, got %d", len(store.notifications))
	}
}

func TestMissingOwnerSkipsItem(t *testing.T) {
	orphan := lostPhone(uuid.Nil)
	withOwner := lostPhone(uuid.New())

	items := &fakeItemRepo{lost: []models.LostItem{orphan, withOwner}, found: []models.FoundItem{foundPhoneNearby()}}
	store := &fakeNotificationStore{}

	engine := NewEngine(items, store, time.Second)
	if err := engine.runPass(); err != nil {
		t.Fatalf("runPass: %v", err)
	}

	// The orphaned item is skipped; the pass still serves the other item.
	if len(store.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(store.notifications))
	}
	if store.notifications[0].ReceiverID != withOwner.OwnerID {
		t.Errorf("notification addressed to wrong user: %s", store.notifications[0].ReceiverID)
	}
}

func TestSimilarDateBoundary(t *testing.T) {
	if !SimilarDate(date("2024-05-01"), date("2024-05-04")) {
		t.Error("3 days apart should be similar")
	}
	if SimilarDate(date("2024-05-01"), date("2024-05-05")) {
		t.Error("4 days apart should not be similar")
	}
	if SimilarDate(nil, date("2024-05-01")) || SimilarDate(date("2024-05-01"), nil) {
		t.Error("missing dates should never be similar")
	}
}

func TestSameTypeIsCaseInsensitive(t *testing.T) {
	if !SameType("Phone", "pHoNe") {
		t.Error("type comparison should ignore case")
	}
	if SameType("Phone", "Phones") {
		t.Error("type comparison is exact, not prefix")
	}
}
