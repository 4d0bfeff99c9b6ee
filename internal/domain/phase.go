package domain

// Phase represents the current phase of a game
type Phase string

const (
	PhaseLobby         Phase = "LOBBY"           // Waiting for players to join
	PhaseTeamSelection Phase = "TEAM_SELECTION"  // Leader picks the mission team
	PhaseTeamApproval  Phase = "TEAM_APPROVAL"   // Everyone approves or rejects the team
	PhaseMissionVoting Phase = "MISSION_VOTING"  // Team members vote success or fail
	PhaseGameOver      Phase = "GAME_OVER"       // A side has won
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseLobby:         {PhaseTeamSelection},
		PhaseTeamSelection: {PhaseTeamApproval},
		PhaseTeamApproval:  {PhaseMissionVoting, PhaseTeamSelection},
		PhaseMissionVoting: {PhaseTeamSelection, PhaseGameOver},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}

// NextMove describes what the engine expects next. It is a closed union:
// exactly one variant per in-game phase, each carrying only the fields that
// phase needs.
type NextMove interface {
	nextMove()
}

// NextTeamSelection means the leader must pick a mission team
type NextTeamSelection struct {
	Leader   string `json:"leader"`
	TeamSize int    `json:"teamSize"`
}

// NextTeamApproval means every seated player must approve or reject
type NextTeamApproval struct{}

// NextMissionVoting means each team member must vote success or fail
type NextMissionVoting struct{}

// NextGameOver means no further moves are accepted
type NextGameOver struct{}

func (NextTeamSelection) nextMove() {}
func (NextTeamApproval) nextMove()  {}
func (NextMissionVoting) nextMove() {}
func (NextGameOver) nextMove()      {}
