package domain

import "testing"

func countRoles(roles []Role) map[Role]int {
	counts := make(map[Role]int)
	for _, r := range roles {
		counts[r]++
	}
	return counts
}

func TestSelectRolesComposition(t *testing.T) {
	cases := []struct {
		players       int
		oberonAllowed bool
		peasants      int
		oberons       int
		assassins     int
	}{
		{players: 5, peasants: 1},
		{players: 6, peasants: 2},
		{players: 7, peasants: 2, assassins: 1},
		{players: 7, oberonAllowed: true, peasants: 2, oberons: 1},
		{players: 8, peasants: 3, assassins: 1},
		{players: 9, peasants: 4, assassins: 1},
		{players: 10, peasants: 4, assassins: 2},
		{players: 10, oberonAllowed: true, peasants: 4, oberons: 1, assassins: 1},
	}

	for _, tc := range cases {
		roles, err := SelectRoles(tc.players, tc.oberonAllowed)
		if err != nil {
			t.Fatalf("SelectRoles(%d, %v) error: %v", tc.players, tc.oberonAllowed, err)
		}
		if len(roles) != tc.players {
			t.Fatalf("SelectRoles(%d, %v) returned %d roles", tc.players, tc.oberonAllowed, len(roles))
		}

		counts := countRoles(roles)
		for _, unique := range []Role{RoleMerlin, RolePercival, RoleMordred, RoleMorgana} {
			if counts[unique] != 1 {
				t.Errorf("%d players: %s count = %d, want 1", tc.players, unique, counts[unique])
			}
		}
		if counts[RolePeasant] != tc.peasants {
			t.Errorf("%d players: peasants = %d, want %d", tc.players, counts[RolePeasant], tc.peasants)
		}
		if counts[RoleOberon] != tc.oberons {
			t.Errorf("%d players (oberon=%v): oberons = %d, want %d", tc.players, tc.oberonAllowed, counts[RoleOberon], tc.oberons)
		}
		if counts[RoleAssassin] != tc.assassins {
			t.Errorf("%d players (oberon=%v): assassins = %d, want %d", tc.players, tc.oberonAllowed, counts[RoleAssassin], tc.assassins)
		}
	}
}

func TestSelectRolesInvalidCount(t *testing.T) {
	for _, n := range []int{0, 1, 4, 11, 20} {
		if _, err := SelectRoles(n, false); err != ErrInvalidConfiguration {
			t.Errorf("SelectRoles(%d) error = %v, want ErrInvalidConfiguration", n, err)
		}
	}
}

func TestRoleAlignments(t *testing.T) {
	good := []Role{RoleMerlin, RolePercival, RolePeasant}
	evil := []Role{RoleMordred, RoleMorgana, RoleOberon, RoleAssassin}

	for _, r := range good {
		if r.IsEvil() {
			t.Errorf("%s should be good", r)
		}
		if r.Alignment() != AlignmentGood {
			t.Errorf("%s alignment = %s, want %s", r, r.Alignment(), AlignmentGood)
		}
	}
	for _, r := range evil {
		if !r.IsEvil() {
			t.Errorf("%s should be evil", r)
		}
		if r.Alignment() != AlignmentEvil {
			t.Errorf("%s alignment = %s, want %s", r, r.Alignment(), AlignmentEvil)
		}
	}
}
