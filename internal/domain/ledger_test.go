package domain

import "testing"

func TestVoteLedgerRejectsDuplicates(t *testing.T) {
	l := NewVoteLedger()

	if err := l.Record("p1", true); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if err := l.Record("p1", false); err != ErrDuplicateVote {
		t.Fatalf("second vote error = %v, want ErrDuplicateVote", err)
	}

	// The duplicate must not change the tally
	yes, no := l.Tally()
	if yes != 1 || no != 0 {
		t.Errorf("tally = (%d, %d), want (1, 0)", yes, no)
	}
	if l.Count() != 1 {
		t.Errorf("count = %d, want 1", l.Count())
	}
}

func TestVoteLedgerTallyAndClear(t *testing.T) {
	l := NewVoteLedger()
	l.Record("p1", true)
	l.Record("p2", true)
	l.Record("p3", false)

	yes, no := l.Tally()
	if yes != 2 || no != 1 {
		t.Errorf("tally = (%d, %d), want (2, 1)", yes, no)
	}

	l.Clear()
	if l.Count() != 0 {
		t.Errorf("count after clear = %d, want 0", l.Count())
	}
	if l.HasVoted("p1") {
		t.Error("p1 should be able to vote again after clear")
	}
	if err := l.Record("p1", false); err != nil {
		t.Errorf("vote after clear: %v", err)
	}
}

func TestOutcomeLedgerStartsIncomplete(t *testing.T) {
	l := NewOutcomeLedger()
	for mission := 1; mission <= MissionCount; mission++ {
		if o := l.Outcome(mission); o != OutcomeIncomplete {
			t.Errorf("mission %d outcome = %s, want incomplete", mission, o)
		}
	}
	if _, over := l.Winner(); over {
		t.Error("fresh ledger should have no winner")
	}
}

func TestOutcomeLedgerEvilWinsOnThreeFails(t *testing.T) {
	l := NewOutcomeLedger()
	l.Record(1, OutcomeFail)
	l.Record(2, OutcomeSuccess)
	l.Record(3, OutcomeFail)

	if _, over := l.Winner(); over {
		t.Fatal("two fails should not end the game")
	}

	l.Record(4, OutcomeFail)
	winner, over := l.Winner()
	if !over || winner != AlignmentEvil {
		t.Fatalf("winner = (%s, %v), want evil", winner, over)
	}
}

func TestOutcomeLedgerGoodWinsAfterFiveMissions(t *testing.T) {
	l := NewOutcomeLedger()
	l.Record(1, OutcomeFail)
	l.Record(2, OutcomeSuccess)
	l.Record(3, OutcomeFail)
	l.Record(4, OutcomeSuccess)

	if _, over := l.Winner(); over {
		t.Fatal("four resolved missions with two fails should not end the game")
	}

	l.Record(5, OutcomeSuccess)
	winner, over := l.Winner()
	if !over || winner != AlignmentGood {
		t.Fatalf("winner = (%s, %v), want good", winner, over)
	}
}
