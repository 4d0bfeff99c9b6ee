package app

import (
	"log/slog"
	"sync"
	"time"

	"avalon/internal/domain"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetPlayerID() string
	Close() error
}

// GameSession wraps a game with concurrency control and client management.
// Every engine mutation goes through the session mutex; the engine itself is
// single-writer per game.
type GameSession struct {
	game      *domain.Game
	names     map[string]string // playerID -> display name
	mu        sync.RWMutex
	clients   map[string]ClientConnection // playerID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger

	// Event channel for broadcasting
	events chan *domain.GameEvent
	done   chan struct{}
}

// NewGameSession creates a new game session
func NewGameSession(game *domain.Game, logger *slog.Logger) *GameSession {
	session := &GameSession{
		game:    game,
		names:   make(map[string]string),
		clients: make(map[string]ClientConnection),
		logger:  logger,
		events:  make(chan *domain.GameEvent, 100),
		done:    make(chan struct{}),
	}

	// Start event broadcaster
	go session.eventLoop()

	return session
}

// GetRoomCode returns the room code
func (s *GameSession) GetRoomCode() string {
	return s.game.ID
}

// GetCreatedAt returns when the game was created
func (s *GameSession) GetCreatedAt() time.Time {
	return s.game.CreatedAt
}

// GetPlayerCount returns the number of seated players
func (s *GameSession) GetPlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.game.Players)
}

// GetPhase returns the current game phase
func (s *GameSession) GetPhase() domain.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Phase
}

// CanJoin checks if a new player can join the game
func (s *GameSession) CanJoin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Phase == domain.PhaseLobby && len(s.game.Players) < domain.MaxPlayers
}

// RegisterClient registers a client connection for a player
func (s *GameSession) RegisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = client
}

// UnregisterClient removes a client connection
func (s *GameSession) UnregisterClient(playerID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, playerID)
}

// GetClient returns the client for a player
func (s *GameSession) GetClient(playerID string) (ClientConnection, bool) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	client, ok := s.clients[playerID]
	return client, ok
}

// AddPlayer seats a player in the lobby
func (s *GameSession) AddPlayer(playerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.AddPlayer(playerID); err != nil {
		return err
	}
	s.names[playerID] = name

	s.queueEvent(domain.NewEvent(domain.EventPlayerJoined, s.game.ID, s.lobbyState()))

	return nil
}

// IsSeated returns true if the player has joined this game
func (s *GameSession) IsSeated(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.IsSeated(playerID)
}

// DisconnectPlayer handles a player's connection going away. Seats are
// never vacated mid-game; the player can re-attach with the same ID.
func (s *GameSession) DisconnectPlayer(playerID string) {
	s.mu.RLock()
	seated := s.game.IsSeated(playerID)
	s.mu.RUnlock()

	if seated {
		s.queueEvent(domain.NewEvent(domain.EventPlayerLeft, s.game.ID, s.lobbyStateLocked()))
	}
}

// ReconnectPlayer re-attaches a known player
func (s *GameSession) ReconnectPlayer(playerID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.game.IsSeated(playerID) {
		return domain.ErrNotAParticipant
	}

	s.queueEvent(domain.NewEvent(domain.EventPlayerReconnected, s.game.ID, s.lobbyState()))
	return nil
}

// StartGame starts the game (host only): roles are assigned, each player
// privately receives their role view, and team selection opens.
func (s *GameSession) StartGame(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.IsHost(playerID) {
		return domain.ErrNotHost
	}

	if err := s.game.Start(); err != nil {
		return err
	}

	s.queueEvent(domain.NewEvent(domain.EventGameStarted, s.game.ID, s.lobbyState()))

	// Role views go to each player privately
	for _, pid := range s.game.Players {
		view, err := s.game.ViewFor(pid)
		if err != nil {
			continue
		}
		s.queueEvent(domain.NewPlayerEvent(domain.EventRoleAssigned, s.game.ID, pid, &domain.RoleAssignedPayload{View: view}))
	}

	s.queueTeamSelection()

	return nil
}

// SelectTeam submits the leader's team proposal
func (s *GameSession) SelectTeam(playerID string, team []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.SelectTeam(playerID, team); err != nil {
		return err
	}

	s.queueEvent(domain.NewEvent(domain.EventTeamSelected, s.game.ID, &domain.TeamSelectedPayload{
		Leader: playerID,
		Team:   team,
	}))

	return nil
}

// CastApprovalVote records an approval vote and broadcasts either the vote
// progress or, when the round completes, its result and the next phase.
func (s *GameSession) CastApprovalVote(playerID string, approve bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.CastApprovalVote(playerID, approve); err != nil {
		return err
	}

	if s.game.Phase == domain.PhaseTeamApproval {
		voted, total := s.game.ApprovalProgress()
		s.queueEvent(domain.NewEvent(domain.EventApprovalVoteCast, s.game.ID, &domain.VoteProgressPayload{
			VotedCount: voted,
			TotalVotes: total,
		}))
		return nil
	}

	// Round completed
	if result := s.game.LastApproval(); result != nil {
		s.queueEvent(domain.NewEvent(domain.EventApprovalResult, s.game.ID, &domain.ApprovalResultPayload{
			Approved:      result.Approved,
			Approves:      result.Approves,
			Rejects:       result.Rejects,
			ForcedThrough: result.ForcedThrough,
			Team:          result.Team,
		}))
	}

	if s.game.Phase == domain.PhaseTeamSelection {
		s.queueTeamSelection()
	}

	return nil
}

// CastMissionVote records a mission vote and broadcasts either the vote
// progress or, when the mission resolves, its outcome and what follows.
func (s *GameSession) CastMissionVote(playerID string, success bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.CastMissionVote(playerID, success); err != nil {
		return err
	}

	if s.game.Phase == domain.PhaseMissionVoting {
		voted, total := s.game.MissionProgress()
		s.queueEvent(domain.NewEvent(domain.EventMissionVoteCast, s.game.ID, &domain.VoteProgressPayload{
			VotedCount: voted,
			TotalVotes: total,
		}))
		return nil
	}

	if result := s.game.LastMission(); result != nil {
		s.queueEvent(domain.NewEvent(domain.EventMissionResolved, s.game.ID, &domain.MissionResolvedPayload{
			Mission:   result.Mission,
			Outcome:   result.Outcome,
			FailVotes: result.FailVotes,
			Outcomes:  s.game.Outcomes.Outcomes(),
		}))
	}

	switch s.game.Phase {
	case domain.PhaseGameOver:
		winner, _ := s.game.Winner()
		s.queueEvent(domain.NewEvent(domain.EventGameEnded, s.game.ID, &domain.GameEndedPayload{
			Winner:   winner,
			Outcomes: s.game.Outcomes.Outcomes(),
		}))
	case domain.PhaseTeamSelection:
		s.queueTeamSelection()
	}

	return nil
}

// queueTeamSelection broadcasts the team selection prompt for the current
// leader. Caller must hold the session lock.
func (s *GameSession) queueTeamSelection() {
	s.queueEvent(domain.NewEvent(domain.EventTeamSelection, s.game.ID, &domain.TeamSelectionPayload{
		Leader:        s.game.Leader(),
		Mission:       s.game.Mission,
		ApprovalRound: s.game.ApprovalRound,
		TeamSize:      s.game.RequiredTeamSize(),
	}))
}

// GetGameState returns the current state scoped to one player, used when a
// client attaches or re-attaches.
func (s *GameSession) GetGameState(playerID string) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := map[string]interface{}{
		"phase":    s.game.Phase,
		"players":  s.playerInfoList(),
		"hostId":   s.game.HostID,
		"canStart": s.game.CanStart(),
	}

	if s.game.InProgress || s.game.Phase == domain.PhaseGameOver {
		state["mission"] = s.game.Mission
		state["approvalRound"] = s.game.ApprovalRound
		state["outcomes"] = s.game.Outcomes.Outcomes()
	}

	switch s.game.Phase {
	case domain.PhaseTeamSelection:
		state["leader"] = s.game.Leader()
		state["teamSize"] = s.game.RequiredTeamSize()
	case domain.PhaseTeamApproval:
		voted, total := s.game.ApprovalProgress()
		state["team"] = s.game.Team
		state["voteProgress"] = &domain.VoteProgressPayload{VotedCount: voted, TotalVotes: total}
	case domain.PhaseMissionVoting:
		voted, total := s.game.MissionProgress()
		state["team"] = s.game.Team
		state["failThreshold"] = s.game.FailThreshold()
		state["voteProgress"] = &domain.VoteProgressPayload{VotedCount: voted, TotalVotes: total}
	case domain.PhaseGameOver:
		if winner, over := s.game.Winner(); over {
			state["winner"] = winner
		}
	}

	// The player's own role view only; other players' roles never leave
	// the engine
	if view, err := s.game.ViewFor(playerID); err == nil {
		state["roleView"] = view
	}

	return state
}

// lobbyState builds the lobby payload. Caller must hold the session lock.
func (s *GameSession) lobbyState() *domain.LobbyUpdatePayload {
	return &domain.LobbyUpdatePayload{
		Players:  s.playerInfoList(),
		HostID:   s.game.HostID,
		CanStart: s.game.CanStart(),
	}
}

// lobbyStateLocked builds the lobby payload taking the lock itself
func (s *GameSession) lobbyStateLocked() *domain.LobbyUpdatePayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lobbyState()
}

// playerInfoList lists seated players in seat order. Caller must hold the
// session lock.
func (s *GameSession) playerInfoList() []domain.PlayerInfo {
	players := make([]domain.PlayerInfo, 0, len(s.game.Players))
	for _, pid := range s.game.Players {
		players = append(players, domain.PlayerInfo{
			ID:       pid,
			Name:     s.names[pid],
			IsHost:   s.game.IsHost(pid),
			IsLeader: s.game.InProgress && s.game.Leader() == pid,
		})
	}
	return players
}

// queueEvent adds an event to the broadcast queue
func (s *GameSession) queueEvent(event *domain.GameEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to clients
func (s *GameSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to appropriate clients
func (s *GameSession) broadcastEvent(event *domain.GameEvent) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	// If player-specific, send only to that player
	if event.PlayerID != "" {
		if client, ok := s.clients[event.PlayerID]; ok {
			if err := client.Send(event); err != nil {
				s.logger.Debug("failed to send to client", "playerID", event.PlayerID, "error", err)
			}
		}
		return
	}

	// Broadcast to all clients
	for playerID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "playerID", playerID, "error", err)
		}
	}
}

// Close shuts down the session
func (s *GameSession) Close() {
	select {
	case <-s.done:
		return // Already closed
	default:
		close(s.done)
	}

	// Close all client connections
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = make(map[string]ClientConnection)
	s.clientsMu.Unlock()
}
