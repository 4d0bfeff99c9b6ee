package domain

// Alignment is the team a role belongs to
type Alignment string

const (
	AlignmentGood Alignment = "GOOD"
	AlignmentEvil Alignment = "EVIL"
)

// String returns the string representation of the alignment
func (a Alignment) String() string {
	return string(a)
}

// Role represents a character role in the game
type Role string

const (
	RoleMerlin   Role = "MERLIN"
	RolePercival Role = "PERCIVAL"
	RolePeasant  Role = "PEASANT"
	RoleMordred  Role = "MORDRED"
	RoleMorgana  Role = "MORGANA"
	RoleOberon   Role = "OBERON"
	RoleAssassin Role = "ASSASSIN"
)

// roleAlignments is the static metadata for the closed role catalog
var roleAlignments = map[Role]Alignment{
	RoleMerlin:   AlignmentGood,
	RolePercival: AlignmentGood,
	RolePeasant:  AlignmentGood,
	RoleMordred:  AlignmentEvil,
	RoleMorgana:  AlignmentEvil,
	RoleOberon:   AlignmentEvil,
	RoleAssassin: AlignmentEvil,
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Alignment returns the team this role belongs to
func (r Role) Alignment() Alignment {
	return roleAlignments[r]
}

// IsEvil returns true if the role is on the evil team
func (r Role) IsEvil() bool {
	return roleAlignments[r] == AlignmentEvil
}

// SelectRoles returns the role set for the given player count.
// The set is cumulative: five base roles, then one extra role per
// additional seat. Oberon takes the 7th seat instead of the Assassin
// when allowed by game settings.
func SelectRoles(playerCount int, oberonAllowed bool) ([]Role, error) {
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return nil, ErrInvalidConfiguration
	}

	roles := []Role{RoleMerlin, RolePercival, RolePeasant, RoleMordred, RoleMorgana}

	if playerCount >= 6 {
		roles = append(roles, RolePeasant)
	}
	if playerCount >= 7 {
		if oberonAllowed {
			roles = append(roles, RoleOberon)
		} else {
			roles = append(roles, RoleAssassin)
		}
	}
	if playerCount >= 8 {
		roles = append(roles, RolePeasant)
	}
	if playerCount >= 9 {
		roles = append(roles, RolePeasant)
	}
	if playerCount >= 10 {
		roles = append(roles, RoleAssassin)
	}

	return roles, nil
}
