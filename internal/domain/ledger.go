package domain

// VoteLedger collects one boolean vote per player for a single voting round.
// The same ledger instance is reused across rounds; Clear empties it without
// reallocating the backing map.
type VoteLedger struct {
	votes map[string]bool
}

// NewVoteLedger creates an empty vote ledger
func NewVoteLedger() *VoteLedger {
	return &VoteLedger{
		votes: make(map[string]bool),
	}
}

// Record stores a player's vote. A second vote from the same player is
// rejected with ErrDuplicateVote and leaves the ledger unchanged.
func (l *VoteLedger) Record(playerID string, value bool) error {
	if _, ok := l.votes[playerID]; ok {
		return ErrDuplicateVote
	}
	l.votes[playerID] = value
	return nil
}

// HasVoted returns true if the player has already voted this round
func (l *VoteLedger) HasVoted(playerID string) bool {
	_, ok := l.votes[playerID]
	return ok
}

// Count returns the number of votes recorded this round
func (l *VoteLedger) Count() int {
	return len(l.votes)
}

// Tally returns the number of true and false votes
func (l *VoteLedger) Tally() (yes, no int) {
	for _, v := range l.votes {
		if v {
			yes++
		} else {
			no++
		}
	}
	return yes, no
}

// Clear removes all votes, keeping the ledger ready for the next round
func (l *VoteLedger) Clear() {
	for k := range l.votes {
		delete(l.votes, k)
	}
}

// Outcome is the recorded result of a mission
type Outcome string

const (
	OutcomeIncomplete Outcome = "INCOMPLETE"
	OutcomeSuccess    Outcome = "SUCCESS"
	OutcomeFail       Outcome = "FAIL"
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// FailsToLose is the number of failed missions that ends the game for good
const FailsToLose = 3

// OutcomeLedger records the result of each of the five missions.
// Slots start Incomplete and each is resolved exactly once.
type OutcomeLedger struct {
	outcomes [MissionCount]Outcome
}

// NewOutcomeLedger creates a ledger with all missions incomplete
func NewOutcomeLedger() *OutcomeLedger {
	l := &OutcomeLedger{}
	for i := range l.outcomes {
		l.outcomes[i] = OutcomeIncomplete
	}
	return l
}

// Record stores the outcome for a mission. Missions are 1-indexed; an
// out-of-range mission is a programming error.
func (l *OutcomeLedger) Record(mission int, outcome Outcome) {
	l.outcomes[mission-1] = outcome
}

// Outcome returns the recorded outcome for a 1-indexed mission
func (l *OutcomeLedger) Outcome(mission int) Outcome {
	return l.outcomes[mission-1]
}

// Outcomes returns a copy of all five mission outcomes in order
func (l *OutcomeLedger) Outcomes() []Outcome {
	out := make([]Outcome, len(l.outcomes))
	copy(out, l.outcomes[:])
	return out
}

// FailCount returns the number of failed missions so far
func (l *OutcomeLedger) FailCount() int {
	count := 0
	for _, o := range l.outcomes {
		if o == OutcomeFail {
			count++
		}
	}
	return count
}

// ResolvedCount returns the number of missions with a decided outcome
func (l *OutcomeLedger) ResolvedCount() int {
	count := 0
	for _, o := range l.outcomes {
		if o != OutcomeIncomplete {
			count++
		}
	}
	return count
}

// Winner returns the winning alignment and true once the game is decided:
// evil after three failed missions, good after all five missions resolve
// with fewer than three fails.
func (l *OutcomeLedger) Winner() (Alignment, bool) {
	if l.FailCount() >= FailsToLose {
		return AlignmentEvil, true
	}
	if l.ResolvedCount() == MissionCount {
		return AlignmentGood, true
	}
	return "", false
}
