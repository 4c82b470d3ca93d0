package chat

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 1 << 20 // attachments travel base64-encoded
	outboundBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Cross-origin policy is handled by the CORS middleware on the REST
	// surface; the websocket endpoint accepts the same clients.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Frame is a client-to-server websocket command.
type Frame struct {
	Action           string `json:"action"` // join, leave, send
	ThreadID         string `json:"thread_id"`
	Text             string `json:"text,omitempty"`
	AttachmentBase64 string `json:"attachment_base64,omitempty"`
}

// ServeWS returns an echo handler that upgrades the connection and speaks
// the join/leave/send protocol. On connection drop every subscription held
// by the connection is released; the client re-joins after reconnecting.
func ServeWS(hub *Hub, pipeline *Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*models.JwtCustomClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}

		client := NewClient(outboundBuffer)
		done := make(chan struct{})

		go writePump(conn, client, done)
		readPump(c, conn, hub, pipeline, client, claims)

		hub.LeaveAll(client)
		close(done)
		conn.Close()
		return nil
	}
}

func readPump(c echo.Context, conn *websocket.Conn, hub *Hub, pipeline *Pipeline, client *Client, claims *models.JwtCustomClaims) {
	conn.SetReadLimit(maxFrameSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Chat connection for user %s closed unexpectedly: %v", claims.UserID, err)
			}
			return
		}

		switch frame.Action {
		case "join":
			hub.Join(frame.ThreadID, client)
		case "leave":
			hub.Leave(frame.ThreadID, client)
		case "send":
			threadID, err := uuid.Parse(frame.ThreadID)
			if err != nil {
				sendError(client, "invalid thread id")
				continue
			}
			_, err = pipeline.Send(c.Request().Context(), threadID, claims.UserID, claims.Name, frame.Text, frame.AttachmentBase64)
			if err != nil {
				if errors.Is(err, ErrThreadNotFound) || errors.Is(err, ErrEmptyMessage) || errors.Is(err, ErrMessageTooLong) {
					sendError(client, err.Error())
				} else {
					log.Printf("Websocket send for user %s failed: %v", claims.UserID, err)
					sendError(client, "failed to send message")
				}
			}
		default:
			sendError(client, "unknown action")
		}
	}
}

func writePump(conn *websocket.Conn, client *Client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event := <-client.Events():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func sendError(client *Client, message string) {
	select {
	case client.send <- Event{Type: "error", Error: message}:
	default:
	}
}
