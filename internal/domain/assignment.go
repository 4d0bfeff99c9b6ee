package domain

import "math/rand"

// Visibility holds the identities a player is permitted to see.
// Teammates are the evil players who know each other, enemies are the evil
// players Merlin sees, and unsorted is the ambiguous Morgana/Merlin pair
// shown to Percival.
type Visibility struct {
	Teammates []string `json:"teammates,omitempty"`
	Enemies   []string `json:"enemies,omitempty"`
	Unsorted  []string `json:"unsorted,omitempty"`
}

// RoleAssignment is the per-game bijection from player to role, plus the
// visibility sets derived once at assignment time.
type RoleAssignment struct {
	roles      map[string]Role
	visibility map[string]Visibility
}

// AssignRoles shuffles the role set with the given source of randomness and
// deals one role to each player in seat order. Visibility relationships are
// computed immediately and never change afterwards.
func AssignRoles(players []string, roles []Role, rng *rand.Rand) (*RoleAssignment, error) {
	if len(players) != len(roles) {
		return nil, ErrInvalidConfiguration
	}

	shuffled := make([]Role, len(roles))
	copy(shuffled, roles)

	// Fisher-Yates: seat order must not predict role
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	a := &RoleAssignment{
		roles:      make(map[string]Role, len(players)),
		visibility: make(map[string]Visibility, len(players)),
	}
	for i, playerID := range players {
		a.roles[playerID] = shuffled[i]
	}

	a.computeVisibility(players)

	return a, nil
}

// computeVisibility derives each player's visibility sets in seat order:
//   - Merlin sees every evil player except Mordred.
//   - Percival sees the Morgana/Merlin pair without knowing which is which.
//   - Evil players except Oberon see each other (self included); Oberon is
//     isolated and invisible to the rest of the evil team.
func (a *RoleAssignment) computeVisibility(players []string) {
	var merlinID, morganaID string
	evil := make([]string, 0, len(players))
	evilExceptOberon := make([]string, 0, len(players))
	evilExceptMordred := make([]string, 0, len(players))

	for _, playerID := range players {
		role := a.roles[playerID]
		switch role {
		case RoleMerlin:
			merlinID = playerID
		case RoleMorgana:
			morganaID = playerID
		}
		if role.IsEvil() {
			evil = append(evil, playerID)
			if role != RoleOberon {
				evilExceptOberon = append(evilExceptOberon, playerID)
			}
			if role != RoleMordred {
				evilExceptMordred = append(evilExceptMordred, playerID)
			}
		}
	}

	for _, playerID := range players {
		var v Visibility
		switch role := a.roles[playerID]; {
		case role == RoleMerlin:
			v.Enemies = append([]string(nil), evilExceptMordred...)
		case role == RolePercival:
			v.Unsorted = []string{morganaID, merlinID}
		case role == RoleOberon:
			// Oberon plays blind
		case role.IsEvil():
			v.Teammates = append([]string(nil), evilExceptOberon...)
		}
		a.visibility[playerID] = v
	}
}

// RoleOf returns the role assigned to a player
func (a *RoleAssignment) RoleOf(playerID string) (Role, bool) {
	role, ok := a.roles[playerID]
	return role, ok
}

// VisibilityOf returns the visibility sets for a player
func (a *RoleAssignment) VisibilityOf(playerID string) Visibility {
	return a.visibility[playerID]
}

// RoleView is what a single player is allowed to learn about the assignment:
// their own role plus their visibility sets, nothing else.
type RoleView struct {
	Role      Role      `json:"role"`
	Alignment Alignment `json:"alignment"`
	Teammates []string  `json:"teammates,omitempty"`
	Enemies   []string  `json:"enemies,omitempty"`
	Unsorted  []string  `json:"unsorted,omitempty"`
}

// ViewFor builds the player-scoped view of the assignment
func (a *RoleAssignment) ViewFor(playerID string) (RoleView, error) {
	role, ok := a.roles[playerID]
	if !ok {
		return RoleView{}, ErrNotAParticipant
	}

	v := a.visibility[playerID]
	return RoleView{
		Role:      role,
		Alignment: role.Alignment(),
		Teammates: v.Teammates,
		Enemies:   v.Enemies,
		Unsorted:  v.Unsorted,
	}, nil
}
