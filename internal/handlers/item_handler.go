package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/matching"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/repositories"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// ImageStore is the external collaborator that keeps photo payloads.
type ImageStore interface {
	SaveBase64(data, name string) (string, error)
	LoadBase64(url string) (string, error)
}

// ItemHandler handles lost/found item HTTP requests
type ItemHandler struct {
	itemRepository repositories.ItemRepository
	images         ImageStore
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemRepo repositories.ItemRepository, images ImageStore) *ItemHandler {
	return &ItemHandler{
		itemRepository: itemRepo,
		images:         images,
	}
}

// RegisterItemRoutes registers lost/found item routes
func (h *ItemHandler) RegisterItemRoutes(g *echo.Group) {
	g.POST("/lost-items", h.AddLostItem)
	g.GET("/lost-items", h.GetLostItems)
	g.GET("/lost-items/mine", h.GetMyLostItems)
	g.POST("/found-items", h.AddFoundItem)
	g.GET("/found-items", h.GetFoundItems)
	g.GET("/found-items/mine", h.GetMyFoundItems)
	g.GET("/found-items/filter", h.FilterFoundItems)
}

// LostItemWithPhoto includes the photo payload for display
type LostItemWithPhoto struct {
	models.LostItem
	PhotoBase64 string `json:"photo_base64,omitempty"`
}

// FoundItemWithPhoto includes the photo payload for display
type FoundItemWithPhoto struct {
	models.FoundItem
	PhotoBase64 string `json:"photo_base64,omitempty"`
}

// AddLostItem stores a new lost item report for the authenticated caller
func (h *ItemHandler) AddLostItem(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.AddLostItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item := &models.LostItem{
		ID:        uuid.New(),
		Type:      req.Type,
		Brand:     req.Brand,
		Color:     req.Color,
		Marks:     req.Marks,
		Place:     req.Place,
		Date:      parseDate(req.Date),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    models.ItemStatusPending,
		OwnerID:   claims.UserID,
		OwnerName: claims.Name,
	}

	if req.PhotoBase64 != "" {
		url, err := h.images.SaveBase64(req.PhotoBase64, item.ID.String())
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		item.PhotoURL = url
	}

	if err := h.itemRepository.CreateLostItem(item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, LostItemWithPhoto{LostItem: *item, PhotoBase64: req.PhotoBase64})
}

// GetLostItems returns all lost item reports
func (h *ItemHandler) GetLostItems(c echo.Context) error {
	items, err := h.itemRepository.GetAllLostItems()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrichLostItems(items))
}

// GetMyLostItems returns the caller's own lost item reports
func (h *ItemHandler) GetMyLostItems(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	items, err := h.itemRepository.GetLostItemsByOwner(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrichLostItems(items))
}

// AddFoundItem stores a new found item report for the authenticated caller
func (h *ItemHandler) AddFoundItem(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.AddFoundItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item := &models.FoundItem{
		ID:        uuid.New(),
		Type:      req.Type,
		Brand:     req.Brand,
		Color:     req.Color,
		Marks:     req.Marks,
		Place:     req.Place,
		Details:   req.Details,
		FoundDate: parseDate(req.FoundDate),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    models.ItemStatusPending,
		OwnerID:   claims.UserID,
		OwnerName: claims.Name,
	}

	if req.PhotoBase64 != "" {
		url, err := h.images.SaveBase64(req.PhotoBase64, item.ID.String())
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		item.PhotoURL = url
	}

	if err := h.itemRepository.CreateFoundItem(item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, FoundItemWithPhoto{FoundItem: *item, PhotoBase64: req.PhotoBase64})
}

// GetFoundItems returns all found item reports
func (h *ItemHandler) GetFoundItems(c echo.Context) error {
	items, err := h.itemRepository.GetAllFoundItems()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrichFoundItems(items))
}

// GetMyFoundItems returns the caller's own found item reports
func (h *ItemHandler) GetMyFoundItems(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	items, err := h.itemRepository.GetFoundItemsByOwner(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrichFoundItems(items))
}

// FilterFoundItems returns found items matching the caller's filters: item
// type, plus optionally a close date of loss and nearby coordinates, using
// the same predicates as the auto-matching engine.
func (h *ItemHandler) FilterFoundItems(c echo.Context) error {
	var req models.FilterFoundItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items, err := h.itemRepository.GetAllFoundItems()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	date := parseDate(req.DateOfLoss)
	var filtered []models.FoundItem
	for _, item := range items {
		if !matching.SameType(req.ItemType, item.Type) {
			continue
		}
		if date != nil && !matching.SimilarDate(date, item.FoundDate) {
			continue
		}
		if req.Latitude != nil && req.Longitude != nil &&
			!matching.Nearby(req.Latitude, req.Longitude, item.Latitude, item.Longitude) {
			continue
		}
		filtered = append(filtered, item)
	}

	return c.JSON(http.StatusOK, h.enrichFoundItems(filtered))
}

func (h *ItemHandler) enrichLostItems(items []models.LostItem) []LostItemWithPhoto {
	enriched := make([]LostItemWithPhoto, len(items))
	for i, item := range items {
		enriched[i] = LostItemWithPhoto{LostItem: item}
		if item.PhotoURL != "" {
			photo, err := h.images.LoadBase64(item.PhotoURL)
			if err != nil {
				log.Printf("Failed to load photo for lost item %s: %v", item.ID, err)
				continue
			}
			enriched[i].PhotoBase64 = photo
		}
	}
	return enriched
}

func (h *ItemHandler) enrichFoundItems(items []models.FoundItem) []FoundItemWithPhoto {
	enriched := make([]FoundItemWithPhoto, len(items))
	for i, item := range items {
		enriched[i] = FoundItemWithPhoto{FoundItem: item}
		if item.PhotoURL != "" {
			photo, err := h.images.LoadBase64(item.PhotoURL)
			if err != nil {
				log.Printf("Failed to load photo for found item %s: %v", item.ID, err)
				continue
			}
			enriched[i].PhotoBase64 = photo
		}
	}
	return enriched
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}
