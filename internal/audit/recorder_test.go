package audit

import (
	"context"
	"testing"
)

// memStore is an in-memory Store for tests
type memStore struct {
	entries []*Entry
}

func (m *memStore) Insert(ctx context.Context, e *Entry) error {
	// Prepend: Query returns newest first
	m.entries = append([]*Entry{e}, m.entries...)
	return nil
}

func (m *memStore) Query(ctx context.Context, f QueryFilter) ([]*Entry, error) {
	var out []*Entry
	for _, e := range m.entries {
		if f.EntityType != "" && e.EntityType != f.EntityType {
			continue
		}
		if f.EntityID != "" && e.EntityID != f.EntityID {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

type fiche struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

var actor = Actor{UserID: 1, UserName: "Claire"}

func TestTrackUpdateDiffsOnlyChangedFields(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store)

	before := fiche{Name: "A", Hours: 5}
	after := fiche{Name: "A", Hours: 8}
	if err := rec.TrackUpdate(context.Background(), "worklog", "42", before, after, actor); err != nil {
		t.Fatal(err)
	}

	e := store.entries[0]
	if e.Action != ActionUpdate {
		t.Fatalf("action = %s", e.Action)
	}
	if len(e.Changes) != 1 {
		t.Fatalf("changes = %v, want only hours", ChangedFields(e.Changes))
	}
	ch, ok := e.Changes["hours"]
	if !ok {
		t.Fatal("hours change missing")
	}
	if ch.Before.Num != 5 || ch.After.Num != 8 {
		t.Errorf("hours diff = %v -> %v", ch.Before.Num, ch.After.Num)
	}
}

func TestTrackUpdateNoChangesStillWrites(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store)

	same := fiche{Name: "A", Hours: 5}
	if err := rec.TrackUpdate(context.Background(), "worklog", "42", same, same, actor); err != nil {
		t.Fatal(err)
	}
	if len(store.entries) != 1 {
		t.Fatal("no-op update must still write an entry")
	}
	if len(store.entries[0].Changes) != 0 {
		t.Errorf("no-op update has changes: %v", ChangedFields(store.entries[0].Changes))
	}
}

func TestDiffEveryReportedKeyActuallyDiffers(t *testing.T) {
	before := map[string]any{"a": 1, "b": "x", "c": true, "d": nil}
	after := map[string]any{"a": 2, "b": "x", "c": false, "e": "new"}

	changes, err := Diff(before, after)
	if err != nil {
		t.Fatal(err)
	}
	for k, ch := range changes {
		if ch.Before.Equal(ch.After) {
			t.Errorf("key %q reported but values equal", k)
		}
	}
	if _, ok := changes["b"]; ok {
		t.Error("unchanged key b must be absent")
	}
	for _, k := range []string{"a", "c", "d", "e"} {
		if _, ok := changes[k]; !ok {
			t.Errorf("changed key %q missing", k)
		}
	}
}

func TestDiffObjectEqualityIgnoresKeyOrder(t *testing.T) {
	type wrapped struct {
		Meta map[string]any `json:"meta"`
	}
	a := wrapped{Meta: map[string]any{"x": 1.0, "y": "z"}}
	b := wrapped{Meta: map[string]any{"y": "z", "x": 1.0}}

	changes, err := Diff(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Errorf("structurally equal objects reported as changed: %v", ChangedFields(changes))
	}
}

func TestTrackCreateSnapshotsWholeEntity(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store)

	if err := rec.TrackCreate(context.Background(), "project", "7", fiche{Name: "Dupont", Hours: 0}, actor); err != nil {
		t.Fatal(err)
	}
	ch, ok := store.entries[0].Changes[EntityKey]
	if !ok {
		t.Fatal("_entity snapshot missing")
	}
	if ch.Before.Kind != KindNull || ch.After.Kind != KindObject {
		t.Errorf("create snapshot shape: before=%v after=%v", ch.Before.Kind, ch.After.Kind)
	}
}

func TestArchiveRestoreMarkers(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store)
	ctx := context.Background()

	if err := rec.TrackArchive(ctx, "project", "7", actor); err != nil {
		t.Fatal(err)
	}
	if err := rec.TrackRestore(ctx, "project", "7", actor); err != nil {
		t.Fatal(err)
	}

	hist, err := rec.History(ctx, "project", "7", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 {
		t.Fatalf("history length %d", len(hist))
	}
	if hist[0].Action != ActionRestore || hist[1].Action != ActionArchive {
		t.Errorf("actions = %s, %s", hist[0].Action, hist[1].Action)
	}
	if ch := hist[1].Changes[ArchivedKey]; ch.Before.Bool || !ch.After.Bool {
		t.Error("archive marker must record false -> true")
	}
}

func TestHistoryFiltersAndLimit(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec.TrackUpdate(ctx, "project", "1", fiche{Hours: float64(i)}, fiche{Hours: float64(i + 1)}, actor)
	}
	rec.TrackUpdate(ctx, "worklog", "9", fiche{Hours: 1}, fiche{Hours: 2}, actor)

	hist, err := rec.History(ctx, "project", "1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 {
		t.Errorf("limit ignored: got %d entries", len(hist))
	}

	global, err := rec.GlobalHistory(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(global) != 4 {
		t.Errorf("global history has %d entries, want 4", len(global))
	}
}

func TestReplayToReconstructsOlderVersion(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store)
	ctx := context.Background()

	v1 := map[string]any{"name": "A", "hours": 5.0}
	v2 := map[string]any{"name": "B", "hours": 5.0}
	v3 := map[string]any{"name": "B", "hours": 9.0}

	rec.TrackUpdate(ctx, "worklog", "1", v1, v2, actor)
	rec.TrackUpdate(ctx, "worklog", "1", v2, v3, actor)

	hist, _ := rec.History(ctx, "worklog", "1", 0)
	oldest := hist[len(hist)-1]

	// Unwind both updates: back to v1
	state, err := ReplayTo(v3, hist, oldest.ID)
	if err != nil {
		t.Fatal(err)
	}
	if state["name"] != "A" || state["hours"] != 5.0 {
		t.Errorf("replayed state = %v, want v1", state)
	}

	// Unwinding only the newest yields v2
	state, err = ReplayTo(v3, hist, hist[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if state["name"] != "B" || state["hours"] != 5.0 {
		t.Errorf("replayed state = %v, want v2", state)
	}
}

func TestReplayToUnknownTarget(t *testing.T) {
	if _, err := ReplayTo(map[string]any{}, nil, "missing"); err == nil {
		t.Error("unknown target id must error")
	}
}
