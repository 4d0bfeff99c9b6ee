package domain

import (
	"fmt"
	"math/rand"
	"testing"
)

func testPlayers(n int) []string {
	players := make([]string, n)
	for i := range players {
		players[i] = fmt.Sprintf("p%d", i+1)
	}
	return players
}

func playerWithRole(t *testing.T, a *RoleAssignment, players []string, role Role) string {
	t.Helper()
	for _, p := range players {
		if r, _ := a.RoleOf(p); r == role {
			return p
		}
	}
	t.Fatalf("no player holds %s", role)
	return ""
}

func TestAssignRolesIsBijection(t *testing.T) {
	players := testPlayers(7)
	roles, err := SelectRoles(len(players), true)
	if err != nil {
		t.Fatalf("select roles: %v", err)
	}

	a, err := AssignRoles(players, roles, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("assign roles: %v", err)
	}

	assigned := make(map[Role]int)
	for _, p := range players {
		role, ok := a.RoleOf(p)
		if !ok {
			t.Fatalf("player %s has no role", p)
		}
		assigned[role]++
	}

	want := countRoles(roles)
	for role, count := range want {
		if assigned[role] != count {
			t.Errorf("role %s assigned %d times, want %d", role, assigned[role], count)
		}
	}
}

func TestAssignRolesMismatchedLengths(t *testing.T) {
	players := testPlayers(5)
	roles := []Role{RoleMerlin, RolePercival}
	if _, err := AssignRoles(players, roles, rand.New(rand.NewSource(1))); err != ErrInvalidConfiguration {
		t.Fatalf("error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestAssignRolesShuffleIsFisherYates(t *testing.T) {
	players := testPlayers(7)
	roles, _ := SelectRoles(len(players), true)

	a, err := AssignRoles(players, roles, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("assign roles: %v", err)
	}

	// Replay the shuffle with an identically seeded source
	expected := make([]Role, len(roles))
	copy(expected, roles)
	rng := rand.New(rand.NewSource(7))
	for i := len(expected) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		expected[i], expected[j] = expected[j], expected[i]
	}

	for i, p := range players {
		role, _ := a.RoleOf(p)
		if role != expected[i] {
			t.Errorf("player %s role = %s, want %s", p, role, expected[i])
		}
	}
}

func TestAssignRolesReproducibleWithSameSeed(t *testing.T) {
	players := testPlayers(8)
	roles, _ := SelectRoles(len(players), false)

	a1, _ := AssignRoles(players, roles, rand.New(rand.NewSource(99)))
	a2, _ := AssignRoles(players, roles, rand.New(rand.NewSource(99)))

	for _, p := range players {
		r1, _ := a1.RoleOf(p)
		r2, _ := a2.RoleOf(p)
		if r1 != r2 {
			t.Errorf("player %s role differs between identical seeds: %s vs %s", p, r1, r2)
		}
	}
}

func TestMerlinSeesEvilExceptMordred(t *testing.T) {
	players := testPlayers(7)
	roles, _ := SelectRoles(len(players), true)

	for seed := int64(0); seed < 10; seed++ {
		a, err := AssignRoles(players, roles, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("assign roles: %v", err)
		}

		merlin := playerWithRole(t, a, players, RoleMerlin)
		mordred := playerWithRole(t, a, players, RoleMordred)
		enemies := a.VisibilityOf(merlin).Enemies

		seen := make(map[string]bool)
		for _, id := range enemies {
			seen[id] = true
		}
		if seen[mordred] {
			t.Errorf("seed %d: Merlin sees Mordred", seed)
		}
		for _, p := range players {
			role, _ := a.RoleOf(p)
			if role.IsEvil() && role != RoleMordred && !seen[p] {
				t.Errorf("seed %d: Merlin does not see evil player %s (%s)", seed, p, role)
			}
		}
		if len(enemies) != 2 {
			t.Errorf("seed %d: Merlin sees %d enemies, want 2", seed, len(enemies))
		}
	}
}

func TestPercivalSeesMorganaAndMerlin(t *testing.T) {
	players := testPlayers(5)
	roles, _ := SelectRoles(len(players), false)

	for seed := int64(0); seed < 10; seed++ {
		a, err := AssignRoles(players, roles, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("assign roles: %v", err)
		}

		percival := playerWithRole(t, a, players, RolePercival)
		merlin := playerWithRole(t, a, players, RoleMerlin)
		morgana := playerWithRole(t, a, players, RoleMorgana)

		unsorted := a.VisibilityOf(percival).Unsorted
		if len(unsorted) != 2 || unsorted[0] != morgana || unsorted[1] != merlin {
			t.Errorf("seed %d: Percival unsorted = %v, want [%s %s]", seed, unsorted, morgana, merlin)
		}
	}
}

func TestEvilTeammatesExcludeOberon(t *testing.T) {
	players := testPlayers(7)
	roles, _ := SelectRoles(len(players), true)

	a, err := AssignRoles(players, roles, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("assign roles: %v", err)
	}

	oberon := playerWithRole(t, a, players, RoleOberon)
	morgana := playerWithRole(t, a, players, RoleMorgana)
	mordred := playerWithRole(t, a, players, RoleMordred)

	if teammates := a.VisibilityOf(oberon).Teammates; len(teammates) != 0 {
		t.Errorf("Oberon teammates = %v, want none", teammates)
	}

	teammates := a.VisibilityOf(morgana).Teammates
	seen := make(map[string]bool)
	for _, id := range teammates {
		seen[id] = true
	}
	if !seen[morgana] {
		t.Error("Morgana's teammates should include herself")
	}
	if !seen[mordred] {
		t.Error("Morgana's teammates should include Mordred")
	}
	if seen[oberon] {
		t.Error("Morgana's teammates should not include Oberon")
	}
}

func TestViewForRevealsOnlyOwnRole(t *testing.T) {
	players := testPlayers(5)
	roles, _ := SelectRoles(len(players), false)

	a, err := AssignRoles(players, roles, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("assign roles: %v", err)
	}

	peasant := playerWithRole(t, a, players, RolePeasant)
	view, err := a.ViewFor(peasant)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Role != RolePeasant || view.Alignment != AlignmentGood {
		t.Errorf("view = %+v, want peasant/good", view)
	}
	if len(view.Teammates) != 0 || len(view.Enemies) != 0 || len(view.Unsorted) != 0 {
		t.Errorf("peasant view leaks visibility: %+v", view)
	}

	if _, err := a.ViewFor("stranger"); err != ErrNotAParticipant {
		t.Errorf("stranger view error = %v, want ErrNotAParticipant", err)
	}
}
