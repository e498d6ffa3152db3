package audit

import "fmt"

// ReplayTo reconstructs the state an entity had just BEFORE the target
// entry was written, by walking the diff chain newest to oldest and merging
// each entry's `before` values onto the current state.
//
// Each entry's diff is only relative to its immediate predecessor, so a
// single entry's `before` values are never enough to reach an arbitrary
// older version; every entry between now and the target must be unwound.
//
// entries must be newest-first (the order History returns) and current is
// the entity's present field map. Returns an error if the target id is not
// in the chain.
func ReplayTo(current map[string]any, entries []*Entry, targetID string) (map[string]any, error) {
	state := make(map[string]any, len(current))
	for k, v := range current {
		state[k] = v
	}

	for _, e := range entries {
		unwind(state, e)
		if e.ID == targetID {
			return state, nil
		}
	}
	return nil, fmt.Errorf("audit replay: entry %s not found in history chain", targetID)
}

// ReplayAll unwinds the entire chain, yielding the earliest reconstructable
// state (for create entries this is the original snapshot)
func ReplayAll(current map[string]any, entries []*Entry) map[string]any {
	state := make(map[string]any, len(current))
	for k, v := range current {
		state[k] = v
	}
	for _, e := range entries {
		unwind(state, e)
	}
	return state
}

func unwind(state map[string]any, e *Entry) {
	for field, ch := range e.Changes {
		if field == EntityKey {
			// Whole-entity snapshot: replace the state outright
			if snap, ok := ch.Before.Interface().(map[string]any); ok {
				for k := range state {
					delete(state, k)
				}
				for k, v := range snap {
					state[k] = v
				}
			}
			continue
		}
		if ch.Before.Kind == KindNull {
			delete(state, field)
			continue
		}
		state[field] = ch.Before.Interface()
	}
}
