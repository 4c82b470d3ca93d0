package handlers

import (
	"errors"
	"net/http"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/chat"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/repositories"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	resolver         *chat.Resolver
	pipeline         *chat.Pipeline
	threadRepository repositories.ThreadRepository
	images           ImageStore
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(resolver *chat.Resolver, pipeline *chat.Pipeline, threadRepo repositories.ThreadRepository, images ImageStore) *ChatHandler {
	return &ChatHandler{
		resolver:         resolver,
		pipeline:         pipeline,
		threadRepository: threadRepo,
		images:           images,
	}
}

// RegisterChatRoutes registers chat routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.POST("/chat/threads", h.InitiateThread)
	g.GET("/chat/threads", h.GetThreads)
	g.GET("/chat/threads/:threadId/messages", h.GetMessages)
	g.POST("/chat/messages", h.SendMessage)
}

// InitiateThread finds or creates the thread between the caller and the
// receiver. Calling it again for the same pair, from either side, returns
// the same thread.
func (h *ChatHandler) InitiateThread(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.InitiateThreadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	thread, err := h.resolver.FindOrCreate(claims.UserID, req.ReceiverID, claims.Name, req.ReceiverName)
	if err != nil {
		if errors.Is(err, chat.ErrSelfChat) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, thread)
}

// GetThreads returns the caller's threads sorted by last activity. Threads
// are presented from the caller's perspective: the caller always appears as
// the sender side, regardless of who initiated.
func (h *ChatHandler) GetThreads(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	threads, err := h.threadRepository.GetSortedByUser(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for i := range threads {
		if threads[i].ReceiverID == claims.UserID {
			threads[i].SenderID, threads[i].ReceiverID = threads[i].ReceiverID, threads[i].SenderID
			threads[i].SenderName, threads[i].ReceiverName = threads[i].ReceiverName, threads[i].SenderName
		}
	}

	return c.JSON(http.StatusOK, threads)
}

// MessageWithAttachment includes the attachment payload for display
type MessageWithAttachment struct {
	models.ChatMessage
	AttachmentBase64 string `json:"attachment_base64,omitempty"`
}

// GetMessages returns a thread's messages ordered by send time ascending
func (h *ChatHandler) GetMessages(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	threadID, err := uuid.Parse(c.Param("threadId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid thread ID")
	}

	messages, err := h.pipeline.ListByThread(c.Request().Context(), threadID)
	if err != nil {
		if errors.Is(err, chat.ErrThreadNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := make([]MessageWithAttachment, len(messages))
	for i, message := range messages {
		enriched[i] = MessageWithAttachment{ChatMessage: message}
		if message.AttachmentURL != "" {
			if attachment, err := h.images.LoadBase64(message.AttachmentURL); err == nil {
				enriched[i].AttachmentBase64 = attachment
			}
		}
	}

	return c.JSON(http.StatusOK, enriched)
}

// SendMessage accepts a new message over REST; realtime subscribers of the
// thread receive it through the hub as well.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.pipeline.Send(c.Request().Context(), req.ThreadID, claims.UserID, claims.Name, req.Text, req.AttachmentBase64)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrThreadNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrMessageTooLong):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, message)
}
