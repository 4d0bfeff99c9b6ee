package domain

import "time"

// EventType represents the type of game event
type EventType string

const (
	EventPlayerJoined      EventType = "PLAYER_JOINED"
	EventPlayerLeft        EventType = "PLAYER_LEFT"
	EventPlayerReconnected EventType = "PLAYER_RECONNECTED"
	EventGameStarted       EventType = "GAME_STARTED"
	EventRoleAssigned      EventType = "ROLE_ASSIGNED"
	EventTeamSelection     EventType = "TEAM_SELECTION"
	EventTeamSelected      EventType = "TEAM_SELECTED"
	EventApprovalVoteCast  EventType = "APPROVAL_VOTE_CAST"
	EventApprovalResult    EventType = "APPROVAL_RESULT"
	EventMissionVoteCast   EventType = "MISSION_VOTE_CAST"
	EventMissionResolved   EventType = "MISSION_RESOLVED"
	EventGameEnded         EventType = "GAME_ENDED"
	EventError             EventType = "ERROR"
)

// GameEvent represents an event that occurred in the game
type GameEvent struct {
	Type      EventType   `json:"type"`
	GameID    string      `json:"gameId"`
	PlayerID  string      `json:"playerId,omitempty"` // If event is player-specific
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new game event
func NewEvent(eventType EventType, gameID string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		GameID:    gameID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewPlayerEvent creates a new player-specific game event
func NewPlayerEvent(eventType EventType, gameID, playerID string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		GameID:    gameID,
		PlayerID:  playerID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// PlayerInfo is a safe view of a seated player for broadcasting
type PlayerInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsHost   bool   `json:"isHost"`
	IsLeader bool   `json:"isLeader"`
}

// LobbyUpdatePayload is sent when lobby state changes
type LobbyUpdatePayload struct {
	Players  []PlayerInfo `json:"players"`
	HostID   string       `json:"hostId"`
	CanStart bool         `json:"canStart"`
}

// RoleAssignedPayload is sent privately to each player with their role view
type RoleAssignedPayload struct {
	View RoleView `json:"view"`
}

// TeamSelectionPayload is sent when a leader must pick a team
type TeamSelectionPayload struct {
	Leader        string `json:"leader"`
	Mission       int    `json:"mission"`
	ApprovalRound int    `json:"approvalRound"`
	TeamSize      int    `json:"teamSize"`
}

// TeamSelectedPayload is sent when the leader has proposed a team
type TeamSelectedPayload struct {
	Leader string   `json:"leader"`
	Team   []string `json:"team"`
}

// VoteProgressPayload is sent as votes come in, without revealing values
type VoteProgressPayload struct {
	VotedCount int `json:"votedCount"`
	TotalVotes int `json:"totalVotes"`
}

// ApprovalResultPayload is sent when an approval round tallies
type ApprovalResultPayload struct {
	Approved      bool     `json:"approved"`
	Approves      int      `json:"approves"`
	Rejects       int      `json:"rejects"`
	ForcedThrough bool     `json:"forcedThrough"` // fifth rejection pushed the team through
	Team          []string `json:"team"`
}

// MissionResolvedPayload is sent when a mission resolves
type MissionResolvedPayload struct {
	Mission   int       `json:"mission"`
	Outcome   Outcome   `json:"outcome"`
	FailVotes int       `json:"failVotes"`
	Outcomes  []Outcome `json:"outcomes"`
}

// GameEndedPayload is sent when a side wins
type GameEndedPayload struct {
	Winner   Alignment `json:"winner"`
	Outcomes []Outcome `json:"outcomes"`
}

// ErrorPayload is sent when an error occurs
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
