package domain

import "errors"

// Domain errors
var (
	ErrGameNotFound         = errors.New("game not found")
	ErrGameFull             = errors.New("game is full")
	ErrGameInProgress       = errors.New("game already in progress")
	ErrGameNotInProgress    = errors.New("game not in progress")
	ErrInsufficientPlayers  = errors.New("not enough players to start")
	ErrTooManyPlayers       = errors.New("too many players to start")
	ErrAlreadyJoined        = errors.New("player already joined")
	ErrNotAParticipant      = errors.New("player is not part of this game")
	ErrNotHost              = errors.New("only the host can perform this action")
	ErrNotLeader            = errors.New("only the current leader can select the team")
	ErrInvalidTeamSize      = errors.New("team has the wrong number of players")
	ErrNotOnTeam            = errors.New("player is not on the mission team")
	ErrDuplicateVote        = errors.New("already voted this round")
	ErrWrongPhase           = errors.New("invalid action for current phase")
	ErrInvalidConfiguration = errors.New("invalid game configuration")
)
