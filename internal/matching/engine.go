package matching

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/repositories"
	"github.com/google/uuid"
)

// Engine is the auto-matching background task. Each pass rescans every
// lost/found pair, scores it against the matching rules and emits a
// notification to the lost item's owner for each new qualifying pair.
// A single engine instance is assumed; the existence-check-then-insert
// deduplication is not atomic across concurrent writers.
type Engine struct {
	items         repositories.ItemRepository
	notifications repositories.NotificationRepository
	interval      time.Duration
}

// NewEngine creates an Engine running one pass per interval.
func NewEngine(items repositories.ItemRepository, notifications repositories.NotificationRepository, interval time.Duration) *Engine {
	return &Engine{
		items:         items,
		notifications: notifications,
		interval:      interval,
	}
}

// Run executes matching passes until ctx is cancelled. Passes never overlap:
// the next pass starts one full interval after the previous one finished.
// A failed pass is logged and the loop continues.
func (e *Engine) Run(ctx context.Context) {
	log.Printf("Auto-matching engine started (interval %s).", e.interval)
	for {
		if err := e.runPass(); err != nil {
			log.Printf("Auto-matching pass failed: %v", err)
		}

		select {
		case <-ctx.Done():
			log.Println("Auto-matching engine stopped.")
			return
		case <-time.After(e.interval):
		}
	}
}

// runPass performs one full scan over all lost/found pairs.
func (e *Engine) runPass() error {
	lostItems, err := e.items.GetAllLostItems()
	if err != nil {
		return fmt.Errorf("fetching lost items: %w", err)
	}

	foundItems, err := e.items.GetAllFoundItems()
	if err != nil {
		return fmt.Errorf("fetching found items: %w", err)
	}

	for _, lost := range lostItems {
		var matches []models.FoundItem
		for _, found := range foundItems {
			if Matches(lost, found) {
				matches = append(matches, found)
			}
		}
		if len(matches) == 0 {
			continue
		}

		log.Printf("Found %d potential matches for lost item %s", len(matches), lost.ID)

		if lost.OwnerID == uuid.Nil {
			// Data-integrity violation: an item without an owner has nobody
			// to notify. Skip it rather than aborting the whole pass.
			log.Printf("Lost item %s has no owner id, skipping notifications", lost.ID)
			continue
		}

		for _, found := range matches {
			if err := e.emit(lost, found); err != nil {
				log.Printf("Notification for lost item %s / found item %s failed: %v", lost.ID, found.ID, err)
			}
		}
	}
	return nil
}

// emit persists a notification for the pair unless one already exists.
func (e *Engine) emit(lost models.LostItem, found models.FoundItem) error {
	exists, err := e.notifications.Exists(found.ID, lost.OwnerID)
	if err != nil {
		return fmt.Errorf("checking existing notification: %w", err)
	}
	if exists {
		return nil
	}

	notification := &models.Notification{
		ID:          uuid.New(),
		FoundItemID: found.ID,
		ReceiverID:  lost.OwnerID,
		IsRead:      false,
		Details:     matchDetails(lost, found),
		CreatedAt:   time.Now(),
	}
	if err := e.notifications.Create(notification); err != nil {
		return fmt.Errorf("storing notification: %w", err)
	}
	return nil
}

func matchDetails(lost models.LostItem, found models.FoundItem) string {
	return fmt.Sprintf(
		"A potential match found for your lost item '%s'. Found at Latitude: %v, Longitude: %v",
		lost.Type, floatOrEmpty(found.Latitude), floatOrEmpty(found.Longitude),
	)
}

func floatOrEmpty(f *float64) interface{} {
	if f == nil {
		return ""
	}
	return *f
}
