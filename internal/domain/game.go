package domain

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// MinPlayers is the minimum number of seated players to start
	MinPlayers = 5

	// MaxPlayers is the maximum number of seated players
	MaxPlayers = 10

	// MissionCount is the number of missions in a game
	MissionCount = 5

	// MaxApprovalRounds is the number of team proposals per mission before
	// the standing team is forced through to mission voting
	MaxApprovalRounds = 5
)

// missionTeamSizes maps player count to the required team size per mission
var missionTeamSizes = map[int][MissionCount]int{
	5:  {2, 3, 2, 3, 3},
	6:  {2, 3, 4, 3, 4},
	7:  {2, 3, 3, 4, 4},
	8:  {3, 4, 4, 5, 5},
	9:  {3, 4, 4, 5, 5},
	10: {3, 4, 4, 5, 5},
}

// TeamSizeFor returns the required mission team size for a player count and
// 1-indexed mission number. Both are validated at the game boundary, so a
// miss here is a programming error.
func TeamSizeFor(playerCount, mission int) int {
	sizes, ok := missionTeamSizes[playerCount]
	if !ok || mission < 1 || mission > MissionCount {
		panic(fmt.Sprintf("no team size for %d players, mission %d", playerCount, mission))
	}
	return sizes[mission-1]
}

// FailThresholdFor returns how many fail votes fail the mission. Mission 4
// with seven or more players takes two fails; every other mission takes one.
func FailThresholdFor(playerCount, mission int) int {
	if mission == 4 && playerCount >= 7 {
		return 2
	}
	return 1
}

// GameSettings holds configurable game parameters
type GameSettings struct {
	OberonAllowed bool `json:"oberonAllowed"`
}

// Game is the aggregate root for one table. All mutating methods must be
// called under a single writer; the game itself does no locking.
type Game struct {
	ID         string
	Players    []string // seat order = join order = leadership rotation
	HostID     string   // first player to join
	Settings   GameSettings
	Phase      Phase
	InProgress bool

	Mission       int // 1-indexed current mission
	ApprovalRound int // 1-indexed, resets when a mission resolves

	Assignment *RoleAssignment
	Team       []string
	Outcomes   *OutcomeLedger

	approvalVotes *VoteLedger
	missionVotes  *VoteLedger
	leaderIdx     int
	winner        Alignment
	next          NextMove
	lastApproval  *ApprovalResult
	lastMission   *MissionResult

	rng       *rand.Rand
	CreatedAt time.Time
}

// NewGame creates a game in the lobby phase. The random source drives the
// role shuffle; pass a seeded source for reproducible assignments.
func NewGame(id string, settings GameSettings, rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		ID:            id,
		Players:       make([]string, 0, MaxPlayers),
		Settings:      settings,
		Phase:         PhaseLobby,
		Outcomes:      NewOutcomeLedger(),
		approvalVotes: NewVoteLedger(),
		missionVotes:  NewVoteLedger(),
		rng:           rng,
		CreatedAt:     time.Now(),
	}
}

// AddPlayer seats a player. The first player to join becomes the host.
func (g *Game) AddPlayer(playerID string) error {
	if g.Phase != PhaseLobby {
		return ErrGameInProgress
	}
	if len(g.Players) >= MaxPlayers {
		return ErrGameFull
	}
	if g.IsSeated(playerID) {
		return ErrAlreadyJoined
	}

	g.Players = append(g.Players, playerID)
	if g.HostID == "" {
		g.HostID = playerID
	}
	return nil
}

// IsSeated returns true if the player has joined this game
func (g *Game) IsSeated(playerID string) bool {
	for _, id := range g.Players {
		if id == playerID {
			return true
		}
	}
	return false
}

// IsHost returns true if the given player is the host
func (g *Game) IsHost(playerID string) bool {
	return g.HostID == playerID
}

// CanStart checks if the game can be started
func (g *Game) CanStart() bool {
	return g.Phase == PhaseLobby && len(g.Players) >= MinPlayers
}

// Start assigns roles and enters team selection with the first seated
// player as leader.
func (g *Game) Start() error {
	if g.Phase != PhaseLobby {
		return ErrGameInProgress
	}
	if len(g.Players) < MinPlayers {
		return ErrInsufficientPlayers
	}
	if len(g.Players) > MaxPlayers {
		return ErrTooManyPlayers
	}

	roles, err := SelectRoles(len(g.Players), g.Settings.OberonAllowed)
	if err != nil {
		return err
	}

	assignment, err := AssignRoles(g.Players, roles, g.rng)
	if err != nil {
		return err
	}

	g.Assignment = assignment
	g.InProgress = true
	g.Mission = 1
	g.ApprovalRound = 1
	g.leaderIdx = 0
	g.beginTeamSelection()

	return nil
}

// beginTeamSelection enters the team selection phase for the current leader
func (g *Game) beginTeamSelection() {
	g.Phase = PhaseTeamSelection
	g.Team = nil
	g.approvalVotes.Clear()
	g.next = NextTeamSelection{
		Leader:   g.Leader(),
		TeamSize: g.RequiredTeamSize(),
	}
}

// SelectTeam records the leader's team proposal and opens approval voting.
func (g *Game) SelectTeam(playerID string, team []string) error {
	if g.Phase != PhaseTeamSelection {
		return g.phaseError()
	}
	if playerID != g.Leader() {
		return ErrNotLeader
	}
	if len(team) != g.RequiredTeamSize() {
		return ErrInvalidTeamSize
	}

	seen := make(map[string]bool, len(team))
	for _, memberID := range team {
		if !g.IsSeated(memberID) {
			return ErrNotAParticipant
		}
		if seen[memberID] {
			return ErrInvalidTeamSize
		}
		seen[memberID] = true
	}

	g.Team = append([]string(nil), team...)
	g.approvalVotes.Clear()
	g.Phase = PhaseTeamApproval
	g.next = NextTeamApproval{}

	return nil
}

// CastApprovalVote records one seated player's approve/reject vote. Once
// every seated player has voted the round is tallied: a strict majority of
// approvals sends the team on the mission; otherwise leadership rotates and
// selection restarts, except on the fifth consecutive rejection for the
// current mission, where the standing team is forced through.
func (g *Game) CastApprovalVote(playerID string, approve bool) error {
	if g.Phase != PhaseTeamApproval {
		return g.phaseError()
	}
	if !g.IsSeated(playerID) {
		return ErrNotAParticipant
	}
	if err := g.approvalVotes.Record(playerID, approve); err != nil {
		return err
	}

	if g.approvalVotes.Count() < len(g.Players) {
		return nil
	}

	approves, rejects := g.approvalVotes.Tally()
	approved := approves > rejects
	forced := !approved && g.ApprovalRound >= MaxApprovalRounds
	g.lastApproval = &ApprovalResult{
		Approved:      approved,
		Approves:      approves,
		Rejects:       rejects,
		ForcedThrough: forced,
		Team:          append([]string(nil), g.Team...),
	}

	if approved || forced {
		g.beginMissionVoting()
		return nil
	}

	g.ApprovalRound++
	g.advanceLeader()
	g.beginTeamSelection()

	return nil
}

// ApprovalResult is the tally of the most recently completed approval round
type ApprovalResult struct {
	Approved      bool
	Approves      int
	Rejects       int
	ForcedThrough bool // fifth rejection for this mission pushed the team through
	Team          []string
}

// LastApproval returns the tally of the most recently completed approval
// round, or nil if no round has completed yet.
func (g *Game) LastApproval() *ApprovalResult {
	return g.lastApproval
}

// beginMissionVoting opens mission voting for the current team
func (g *Game) beginMissionVoting() {
	g.Phase = PhaseMissionVoting
	g.missionVotes.Clear()
	g.next = NextMissionVoting{}
}

// CastMissionVote records a team member's success/fail vote. The mission
// resolves once every team member has voted.
func (g *Game) CastMissionVote(playerID string, success bool) error {
	if g.Phase != PhaseMissionVoting {
		return g.phaseError()
	}
	if !g.IsSeated(playerID) {
		return ErrNotAParticipant
	}
	if !g.isOnTeam(playerID) {
		return ErrNotOnTeam
	}
	if err := g.missionVotes.Record(playerID, success); err != nil {
		return err
	}

	if g.missionVotes.Count() >= len(g.Team) {
		g.resolveMission()
	}

	return nil
}

// resolveMission tallies the mission votes, records the outcome, and either
// ends the game or moves to the next mission.
func (g *Game) resolveMission() {
	_, fails := g.missionVotes.Tally()
	threshold := FailThresholdFor(len(g.Players), g.Mission)

	outcome := OutcomeSuccess
	if fails >= threshold {
		outcome = OutcomeFail
	}
	g.Outcomes.Record(g.Mission, outcome)
	g.lastMission = &MissionResult{
		Mission:   g.Mission,
		Outcome:   outcome,
		FailVotes: fails,
	}

	if winner, over := g.Outcomes.Winner(); over {
		g.winner = winner
		g.InProgress = false
		g.Phase = PhaseGameOver
		g.next = NextGameOver{}
		return
	}

	g.Mission++
	g.ApprovalRound = 1
	g.advanceLeader()
	g.beginTeamSelection()
}

// MissionResult summarizes the most recently resolved mission
type MissionResult struct {
	Mission   int
	Outcome   Outcome
	FailVotes int
}

// LastMission returns the most recently resolved mission result, or nil if
// no mission has resolved yet.
func (g *Game) LastMission() *MissionResult {
	return g.lastMission
}

// advanceLeader rotates leadership to the next seated player
func (g *Game) advanceLeader() {
	g.leaderIdx = (g.leaderIdx + 1) % len(g.Players)
}

// isOnTeam returns true if the player is on the current mission team
func (g *Game) isOnTeam(playerID string) bool {
	for _, id := range g.Team {
		if id == playerID {
			return true
		}
	}
	return false
}

// phaseError distinguishes "game never started / already over" from
// "started but wrong phase for this action"
func (g *Game) phaseError() error {
	if !g.InProgress {
		return ErrGameNotInProgress
	}
	return ErrWrongPhase
}

// Leader returns the player currently empowered to propose a team
func (g *Game) Leader() string {
	if len(g.Players) == 0 {
		return ""
	}
	return g.Players[g.leaderIdx]
}

// RequiredTeamSize returns the team size for the current mission
func (g *Game) RequiredTeamSize() int {
	return TeamSizeFor(len(g.Players), g.Mission)
}

// FailThreshold returns the fail votes needed to fail the current mission
func (g *Game) FailThreshold() int {
	return FailThresholdFor(len(g.Players), g.Mission)
}

// NextMove returns the descriptor of what the engine expects next,
// or nil while the game is still in the lobby.
func (g *Game) NextMove() NextMove {
	return g.next
}

// Winner returns the winning alignment and true once the game is over
func (g *Game) Winner() (Alignment, bool) {
	if g.Phase != PhaseGameOver {
		return "", false
	}
	return g.winner, true
}

// ApprovalProgress returns how many seated players have voted on the team
func (g *Game) ApprovalProgress() (voted, total int) {
	return g.approvalVotes.Count(), len(g.Players)
}

// MissionProgress returns how many team members have cast mission votes
func (g *Game) MissionProgress() (voted, total int) {
	return g.missionVotes.Count(), len(g.Team)
}

// ApprovalTally returns the approve/reject counts for the current round
func (g *Game) ApprovalTally() (approves, rejects int) {
	return g.approvalVotes.Tally()
}

// ViewFor returns the role view scoped to one player. Only that player's
// own role and derived visibility are revealed.
func (g *Game) ViewFor(playerID string) (RoleView, error) {
	if g.Assignment == nil {
		return RoleView{}, ErrGameNotInProgress
	}
	return g.Assignment.ViewFor(playerID)
}
