package chatkit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gorillawebsocket "github.com/gorilla/websocket"
)

// SystemMessageType marks messages that carry structured metadata instead of
// user-authored text.
const SystemMessageType = "system"

// chatFrame is the wire format of the provider's WebSocket chat protocol.
type chatFrame struct {
	Action    string            `json:"action"`
	UserID    string            `json:"user_id,omitempty"`
	Password  string            `json:"password,omitempty"`
	To        string            `json:"to,omitempty"`
	Type      string            `json:"type,omitempty"`
	Extension map[string]string `json:"extension,omitempty"`
	Status    string            `json:"status,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// ChatConn is an authenticated chat connection. Writes are serialized; the
// connection is safe for concurrent senders.
type ChatConn struct {
	mu   sync.Mutex
	conn *gorillawebsocket.Conn
}

// ConnectChat dials the chat endpoint and authenticates as the given user.
// The password is the user's session token. Callers sending a single
// fire-and-forget message may let the connection die with the process;
// longer-lived callers should Close.
func (c *Client) ConnectChat(ctx context.Context, userID, password string) (*ChatConn, error) {
	dialer := gorillawebsocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.cfg.ChatEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("chatkit: dial chat: %w", err)
	}

	login := chatFrame{Action: "login", UserID: userID, Password: password}
	if err := conn.WriteJSON(login); err != nil {
		conn.Close()
		return nil, fmt.Errorf("chatkit: chat login: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	} else {
		conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	}
	var ack chatFrame
	if err := conn.ReadJSON(&ack); err != nil {
		conn.Close()
		return nil, fmt.Errorf("chatkit: chat login ack: %w", err)
	}
	if ack.Status != "ok" {
		conn.Close()
		return nil, fmt.Errorf("chatkit: chat login rejected: %s", ack.Error)
	}
	conn.SetReadDeadline(time.Time{})

	return &ChatConn{conn: conn}, nil
}

// SendSystemMessage delivers a system-typed message to a chat address. The
// transport provides its own delivery guarantees; there is no application
// level acknowledgement.
func (t *ChatConn) SendSystemMessage(to string, extension map[string]string) error {
	frame := chatFrame{
		Action:    "message",
		To:        to,
		Type:      SystemMessageType,
		Extension: extension,
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("chatkit: encode system message: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.conn.WriteMessage(gorillawebsocket.TextMessage, payload); err != nil {
		return fmt.Errorf("chatkit: send system message: %w", err)
	}
	return nil
}

// Close shuts the chat connection down.
func (t *ChatConn) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn.Close()
}
