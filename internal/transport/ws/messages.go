package ws

import "time"

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgJoinLobby    MessageType = "join_lobby"
	MsgStartGame    MessageType = "start_game"
	MsgSelectTeam   MessageType = "select_team"
	MsgApprovalVote MessageType = "approval_vote"
	MsgMissionVote  MessageType = "mission_vote"
	MsgPing         MessageType = "ping"
)

// Server → Client message types
const (
	MsgConnected         MessageType = "connected"
	MsgError             MessageType = "error"
	MsgLobbyUpdate       MessageType = "lobby_update"
	MsgGameStarted       MessageType = "game_started"
	MsgRoleAssigned      MessageType = "role_assigned"
	MsgTeamSelection     MessageType = "team_selection"
	MsgTeamSelected      MessageType = "team_selected"
	MsgApprovalUpdate    MessageType = "approval_update"
	MsgApprovalResult    MessageType = "approval_result"
	MsgMissionVoteUpdate MessageType = "mission_vote_update"
	MsgMissionResult     MessageType = "mission_result"
	MsgGameOver          MessageType = "game_over"
	MsgPong              MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Client message payloads

// JoinLobbyPayload is the payload for join_lobby message
type JoinLobbyPayload struct {
	Name string `json:"name"`
}

// SelectTeamPayload is the payload for select_team message
type SelectTeamPayload struct {
	Team []string `json:"team"`
}

// ApprovalVotePayload is the payload for approval_vote message
type ApprovalVotePayload struct {
	Approve bool `json:"approve"`
}

// MissionVotePayload is the payload for mission_vote message
type MissionVotePayload struct {
	Success bool `json:"success"`
}

// Server message payloads

// ConnectedPayload is the payload for connected message
type ConnectedPayload struct {
	PlayerID  string                 `json:"playerId"`
	GameID    string                 `json:"gameId"`
	GameState map[string]interface{} `json:"gameState"`
}

// ErrorPayload is the payload for error message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage  = "INVALID_MESSAGE"
	ErrCodeGameNotFound    = "GAME_NOT_FOUND"
	ErrCodeGameFull        = "GAME_FULL"
	ErrCodeInvalidAction   = "INVALID_ACTION"
	ErrCodeNotHost         = "NOT_HOST"
	ErrCodeNotLeader       = "NOT_LEADER"
	ErrCodeNotParticipant  = "NOT_PARTICIPANT"
	ErrCodeNotOnTeam       = "NOT_ON_TEAM"
	ErrCodeInvalidTeamSize = "INVALID_TEAM_SIZE"
	ErrCodeAlreadyVoted    = "ALREADY_VOTED"
	ErrCodeWrongPhase      = "WRONG_PHASE"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)
