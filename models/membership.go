package models

// Action is the explicit direction of a set mutation. Implicit "toggle"
// requests are rejected at the boundary because they double-flip when a
// client retries.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// Contains reports set membership for the string id sets used across
// entities (followers, likers, voters).
func Contains(set []string, id string) bool {
	for _, s := range set {
		if s == id {
			return true
		}
	}
	return false
}

// ApplySet applies an explicit add or remove of target to set. The second
// return is false when the set is already in the requested state. The input
// slice is never mutated; callers may hold the old value for a revert.
func ApplySet(set []string, target string, action Action) ([]string, bool) {
	present := Contains(set, target)

	switch action {
	case ActionAdd:
		if present {
			return set, false
		}
		next := make([]string, 0, len(set)+1)
		next = append(next, set...)
		return append(next, target), true
	case ActionRemove:
		if !present {
			return set, false
		}
		next := make([]string, 0, len(set)-1)
		for _, s := range set {
			if s != target {
				next = append(next, s)
			}
		}
		return next, true
	}
	return set, false
}
