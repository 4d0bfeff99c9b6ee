package domain

import "testing"

func TestPhaseTransitions(t *testing.T) {
	allowed := []struct{ from, to Phase }{
		{PhaseLobby, PhaseTeamSelection},
		{PhaseTeamSelection, PhaseTeamApproval},
		{PhaseTeamApproval, PhaseMissionVoting},
		{PhaseTeamApproval, PhaseTeamSelection},
		{PhaseMissionVoting, PhaseTeamSelection},
		{PhaseMissionVoting, PhaseGameOver},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to Phase }{
		{PhaseLobby, PhaseMissionVoting},
		{PhaseTeamSelection, PhaseMissionVoting},
		{PhaseTeamSelection, PhaseGameOver},
		{PhaseTeamApproval, PhaseGameOver},
		{PhaseGameOver, PhaseTeamSelection},
		{PhaseGameOver, PhaseLobby},
	}
	for _, tc := range forbidden {
		if tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s should not be allowed", tc.from, tc.to)
		}
	}
}
