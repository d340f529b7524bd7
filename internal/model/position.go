package model

// Group is a coarse position bucket used for defensive splits
type Group string

const (
	GroupAll     Group = "all"
	GroupGuard   Group = "G"
	GroupForward Group = "F"
	GroupCenter  Group = "C"
)

// Groups lists every split in ranking order
var Groups = []Group{GroupAll, GroupGuard, GroupForward, GroupCenter}

// GroupOf maps a listed position to its group: PG and SG are guards, SF and
// PF forwards, C centers. Unrecognized positions have no group.
func GroupOf(position string) (Group, bool) {
	if position == "" {
		return "", false
	}
	switch Group(position[len(position)-1:]) {
	case GroupGuard:
		return GroupGuard, true
	case GroupForward:
		return GroupForward, true
	case GroupCenter:
		return GroupCenter, true
	}
	return "", false
}

// Contains reports whether a position belongs to the group
func (g Group) Contains(position string) bool {
	if g == GroupAll {
		return true
	}
	pg, ok := GroupOf(position)
	return ok && pg == g
}
