package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/fishbowl/pkg/log"
	"github.com/cbodonnell/fishbowl/pkg/messages"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	// WriteTimeout bounds a single message write to an observer
	WriteTimeout = 5 * time.Second
)

// WSHandler streams lobby messages to websocket observers.
type WSHandler struct {
	clientManager  *ClientManager
	originPatterns []string
}

type NewWSHandlerOptions struct {
	ClientManager *ClientManager
	// OriginPatterns are passed to websocket.Accept; empty means same origin only
	OriginPatterns []string
}

func NewWSHandler(opts NewWSHandlerOptions) *WSHandler {
	return &WSHandler{
		clientManager:  opts.ClientManager,
		originPatterns: opts.OriginPatterns,
	}
}

// InitialMessageFunc builds the first message sent to a new observer. A nil
// message sends nothing.
type InitialMessageFunc func() (*messages.Message, error)

// Serve upgrades the request and streams every message broadcast to lobbyID
// until the peer goes away or ctx is done. initial, if not nil, is called
// once the observer is registered and its message is sent first, so no
// broadcast between the two is missed.
func (h *WSHandler) Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, lobbyID string, initial InitialMessageFunc) error {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		return fmt.Errorf("failed to accept websocket: %v", err)
	}

	client := h.clientManager.ConnectClient(lobbyID)
	defer h.clientManager.DisconnectClient(client)

	// observers never send; CloseRead handles control frames and cancels on close
	ctx = conn.CloseRead(ctx)

	if initial != nil {
		msg, err := initial()
		if err != nil {
			conn.Close(websocket.StatusInternalError, "failed to load game")
			return fmt.Errorf("failed to build initial message: %w", err)
		}
		if msg != nil {
			if err := writeMessage(ctx, conn, msg); err != nil {
				conn.Close(websocket.StatusInternalError, "failed to write")
				return err
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			if errors.Is(ctx.Err(), context.Canceled) {
				log.Trace("Connection closed for client %d", client.ID)
				return nil
			}
			return ctx.Err()
		case msg, ok := <-client.Messages():
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return nil
			}
			if err := writeMessage(ctx, conn, msg); err != nil {
				conn.Close(websocket.StatusInternalError, "failed to write")
				return err
			}
			if msg.Type == messages.MessageTypeServerGameDeleted {
				conn.Close(websocket.StatusNormalClosure, "game deleted")
				return nil
			}
		}
	}
}

// writeMessage writes a Message to a WebSocket connection
func writeMessage(ctx context.Context, conn *websocket.Conn, msg *messages.Message) error {
	ctx, cancel := context.WithTimeout(ctx, WriteTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}
	return nil
}

// ReadMessage reads a Message from a WebSocket connection
func ReadMessage(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
	msg := &messages.Message{}
	if err := wsjson.Read(ctx, conn, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
