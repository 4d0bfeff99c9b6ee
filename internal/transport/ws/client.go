package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"avalon/internal/app"
	"avalon/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection
type Client struct {
	conn     *websocket.Conn
	session  *app.GameSession
	playerID string
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, session *app.GameSession, playerID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		session:  session,
		playerID: playerID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// GetPlayerID returns the player ID for this client
func (c *Client) GetPlayerID() string {
	return c.playerID
}

// Send implements app.ClientConnection interface
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "playerID", c.playerID)
		return nil
	}
}

// Close implements app.ClientConnection interface
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.session.UnregisterClient(c.playerID)
		c.session.DisconnectPlayer(c.playerID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgJoinLobby:
		c.handleJoinLobby(msg.Payload)
	case MsgStartGame:
		c.handleStartGame()
	case MsgSelectTeam:
		c.handleSelectTeam(msg.Payload)
	case MsgApprovalVote:
		c.handleApprovalVote(msg.Payload)
	case MsgMissionVote:
		c.handleMissionVote(msg.Payload)
	case MsgPing:
		c.sendPong()
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}
}

// handleJoinLobby handles a join_lobby message
func (c *Client) handleJoinLobby(payload interface{}) {
	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	name, ok := payloadMap["name"].(string)
	if !ok || name == "" {
		c.sendError(ErrCodeInvalidMessage, "Name is required")
		return
	}

	if err := c.session.AddPlayer(c.playerID, name); err != nil {
		c.sendDomainError(err)
		return
	}

	// Send connected confirmation
	c.sendConnected()
}

// handleStartGame handles a start_game message
func (c *Client) handleStartGame() {
	if err := c.session.StartGame(c.playerID); err != nil {
		c.sendDomainError(err)
	}
}

// handleSelectTeam handles a select_team message
func (c *Client) handleSelectTeam(payload interface{}) {
	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	team, ok := stringSlice(payloadMap["team"])
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Team is required")
		return
	}

	if err := c.session.SelectTeam(c.playerID, team); err != nil {
		c.sendDomainError(err)
	}
}

// handleApprovalVote handles an approval_vote message
func (c *Client) handleApprovalVote(payload interface{}) {
	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	approve, ok := payloadMap["approve"].(bool)
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Approve is required")
		return
	}

	if err := c.session.CastApprovalVote(c.playerID, approve); err != nil {
		c.sendDomainError(err)
	}
}

// handleMissionVote handles a mission_vote message
func (c *Client) handleMissionVote(payload interface{}) {
	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	success, ok := payloadMap["success"].(bool)
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Success is required")
		return
	}

	if err := c.session.CastMissionVote(c.playerID, success); err != nil {
		c.sendDomainError(err)
	}
}

// sendDomainError maps a domain error to a client error message. Rejected
// actions surface only to the acting client.
func (c *Client) sendDomainError(err error) {
	switch {
	case errors.Is(err, domain.ErrGameFull):
		c.sendError(ErrCodeGameFull, "Game is full")
	case errors.Is(err, domain.ErrGameInProgress):
		c.sendError(ErrCodeInvalidAction, "Game has already started")
	case errors.Is(err, domain.ErrGameNotInProgress):
		c.sendError(ErrCodeInvalidAction, "Game is not in progress")
	case errors.Is(err, domain.ErrAlreadyJoined):
		c.sendError(ErrCodeInvalidAction, "You have already joined")
	case errors.Is(err, domain.ErrInsufficientPlayers):
		c.sendError(ErrCodeInvalidAction, "Not enough players to start")
	case errors.Is(err, domain.ErrTooManyPlayers):
		c.sendError(ErrCodeInvalidAction, "Too many players to start")
	case errors.Is(err, domain.ErrNotHost):
		c.sendError(ErrCodeNotHost, "Only the host can do that")
	case errors.Is(err, domain.ErrNotLeader):
		c.sendError(ErrCodeNotLeader, "Only the current leader can select the team")
	case errors.Is(err, domain.ErrNotAParticipant):
		c.sendError(ErrCodeNotParticipant, "You are not part of this game")
	case errors.Is(err, domain.ErrNotOnTeam):
		c.sendError(ErrCodeNotOnTeam, "You are not on the mission team")
	case errors.Is(err, domain.ErrInvalidTeamSize):
		c.sendError(ErrCodeInvalidTeamSize, "Team has the wrong number of players")
	case errors.Is(err, domain.ErrDuplicateVote):
		c.sendError(ErrCodeAlreadyVoted, "You have already voted")
	case errors.Is(err, domain.ErrWrongPhase):
		c.sendError(ErrCodeWrongPhase, "You cannot do that right now")
	default:
		c.sendError(ErrCodeInternalError, err.Error())
	}
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	payload := &ConnectedPayload{
		PlayerID:  c.playerID,
		GameID:    c.session.GetRoomCode(),
		GameState: c.session.GetGameState(c.playerID),
	}

	msg := NewServerMessage(MsgConnected, payload)
	c.Send(msg)
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	payload := &ErrorPayload{
		Code:    code,
		Message: message,
	}

	msg := NewServerMessage(MsgError, payload)
	c.Send(msg)
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	msg := NewServerMessage(MsgPong, nil)
	c.Send(msg)
}

// stringSlice coerces a decoded JSON array into a string slice
func stringSlice(v interface{}) ([]string, bool) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, len(out) > 0
}
