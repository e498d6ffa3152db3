package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"grounds-backend/internal/timeutil"

	"github.com/google/uuid"
)

// Action is the kind of tracked mutation
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionArchive Action = "archive"
	ActionRestore Action = "restore"
)

// EntityKey is the field under which whole-entity snapshots are stored for
// create/delete entries
const EntityKey = "_entity"

// ArchivedKey is the marker field for archive/restore entries
const ArchivedKey = "isArchived"

// FieldChange is a before/after pair for one field
type FieldChange struct {
	Before Value `json:"before"`
	After  Value `json:"after"`
}

// Entry is one immutable audit record. Entries are append-only: the
// recorder inserts and queries, never updates or deletes.
type Entry struct {
	ID         string                 `json:"id"`
	EntityType string                 `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	Action     Action                 `json:"action"`
	Changes    map[string]FieldChange `json:"changes"`
	UserID     int                    `json:"user_id"`
	UserName   string                 `json:"user_name"`
	CreatedAt  time.Time              `json:"created_at"`
}

// Store persists audit entries. Append-only by contract.
type Store interface {
	Insert(ctx context.Context, e *Entry) error
	Query(ctx context.Context, f QueryFilter) ([]*Entry, error)
}

// QueryFilter narrows a history query. Empty EntityType/EntityID mean
// global history. Limit <= 0 means no limit.
type QueryFilter struct {
	EntityType string
	EntityID   string
	Limit      int
}

// Actor identifies who performed a tracked mutation
type Actor struct {
	UserID   int
	UserName string
}

// Recorder wraps tracked mutations so call sites never hand-construct diff
// records
type Recorder struct {
	store Store
}

// NewRecorder creates a recorder over a store
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

func (r *Recorder) write(ctx context.Context, entityType, entityID string, action Action, changes map[string]FieldChange, actor Actor) error {
	if entityType == "" || entityID == "" {
		return fmt.Errorf("audit: entity type and id are required")
	}
	if actor.UserName == "" {
		actor.UserName = "system"
	}
	entry := &Entry{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Changes:    changes,
		UserID:     actor.UserID,
		UserName:   actor.UserName,
		CreatedAt:  timeutil.Now(),
	}
	return r.store.Insert(ctx, entry)
}

// TrackCreate records a whole-entity snapshot under the _entity key
func (r *Recorder) TrackCreate(ctx context.Context, entityType, entityID string, entity any, actor Actor) error {
	after, err := FromAny(entity)
	if err != nil {
		return err
	}
	changes := map[string]FieldChange{
		EntityKey: {Before: Null, After: after},
	}
	return r.write(ctx, entityType, entityID, ActionCreate, changes, actor)
}

// TrackDelete records the final snapshot of a hard-deleted entity
func (r *Recorder) TrackDelete(ctx context.Context, entityType, entityID string, entity any, actor Actor) error {
	before, err := FromAny(entity)
	if err != nil {
		return err
	}
	changes := map[string]FieldChange{
		EntityKey: {Before: before, After: Null},
	}
	return r.write(ctx, entityType, entityID, ActionDelete, changes, actor)
}

// TrackUpdate computes a per-field diff and records it. A no-op update
// still writes an entry with empty changes so the history shows the save.
func (r *Recorder) TrackUpdate(ctx context.Context, entityType, entityID string, before, after any, actor Actor) error {
	changes, err := Diff(before, after)
	if err != nil {
		return err
	}
	return r.write(ctx, entityType, entityID, ActionUpdate, changes, actor)
}

// TrackArchive records the isArchived false->true transition as its own
// action so history views can label it distinctly from a plain edit
func (r *Recorder) TrackArchive(ctx context.Context, entityType, entityID string, actor Actor) error {
	changes := map[string]FieldChange{
		ArchivedKey: {Before: Boolean(false), After: Boolean(true)},
	}
	return r.write(ctx, entityType, entityID, ActionArchive, changes, actor)
}

// TrackRestore records the isArchived true->false transition
func (r *Recorder) TrackRestore(ctx context.Context, entityType, entityID string, actor Actor) error {
	changes := map[string]FieldChange{
		ArchivedKey: {Before: Boolean(true), After: Boolean(false)},
	}
	return r.write(ctx, entityType, entityID, ActionRestore, changes, actor)
}

// History returns entries for one entity, newest first
func (r *Recorder) History(ctx context.Context, entityType, entityID string, limit int) ([]*Entry, error) {
	return r.store.Query(ctx, QueryFilter{EntityType: entityType, EntityID: entityID, Limit: limit})
}

// GlobalHistory returns the most recent entries across all entities,
// newest first
func (r *Recorder) GlobalHistory(ctx context.Context, limit int) ([]*Entry, error) {
	return r.store.Query(ctx, QueryFilter{Limit: limit})
}

// Diff computes the per-field changes between two snapshots of an entity.
// Both are flattened to field maps through their JSON form, then each field
// present in either side is compared with Value.Equal. Fields with equal
// values are omitted; an identical pair yields an empty (non-nil) map.
func Diff(before, after any) (map[string]FieldChange, error) {
	bm, err := toFieldMap(before)
	if err != nil {
		return nil, fmt.Errorf("audit diff: before: %w", err)
	}
	am, err := toFieldMap(after)
	if err != nil {
		return nil, fmt.Errorf("audit diff: after: %w", err)
	}

	keys := make(map[string]struct{}, len(bm)+len(am))
	for k := range bm {
		keys[k] = struct{}{}
	}
	for k := range am {
		keys[k] = struct{}{}
	}

	changes := make(map[string]FieldChange)
	for k := range keys {
		bv, av := bm[k], am[k]
		if bv.Equal(av) {
			continue
		}
		changes[k] = FieldChange{Before: bv, After: av}
	}
	return changes, nil
}

// ChangedFields lists the keys of a change set in stable order, for display
func ChangedFields(changes map[string]FieldChange) []string {
	fields := make([]string, 0, len(changes))
	for k := range changes {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

func toFieldMap(entity any) (map[string]Value, error) {
	if entity == nil {
		return map[string]Value{}, nil
	}
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("entity does not serialize to an object: %w", err)
	}
	out := make(map[string]Value, len(fields))
	for k, rv := range fields {
		var v Value
		if err := v.UnmarshalJSON(rv); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
