package filtering

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// FilterType selects the predicate applied to a field
type FilterType string

const (
	TypeText        FilterType = "text"
	TypeSelect      FilterType = "select"
	TypeMultiSelect FilterType = "multiSelect"
	TypeBoolean     FilterType = "boolean"
	TypeNumber      FilterType = "number"
	TypeDateRange   FilterType = "dateRange"
)

// NumberOp is the comparison for number filters
type NumberOp string

const (
	OpEq  NumberOp = "eq"
	OpGte NumberOp = "gte"
	OpLte NumberOp = "lte"
)

// Filter is one predicate in a State. Only the value slot matching Type is
// consulted; the rest stay zero.
type Filter struct {
	Field    string     `json:"field"`
	Type     FilterType `json:"type"`
	Fields   []string   `json:"fields,omitempty"`   // text: extra fields to search
	Text     string     `json:"text,omitempty"`     // text / select
	Selected []string   `json:"selected,omitempty"` // multiSelect (OR within the field)
	Bool     *bool      `json:"bool,omitempty"`     // boolean
	Number   *float64   `json:"number,omitempty"`   // number
	Op       NumberOp   `json:"op,omitempty"`       // number, defaults to eq
	From     *time.Time `json:"from,omitempty"`     // dateRange, nil = unbounded
	To       *time.Time `json:"to,omitempty"`       // dateRange, nil = unbounded
}

// Sort is the output ordering. Ties keep their original relative order.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// State is a full filter/sort configuration. Its JSON form is the
// memoization key, so two states that marshal identically share a cache slot.
type State struct {
	Filters []Filter `json:"filters"`
	Sort    Sort     `json:"sort"`
}

// Validate rejects malformed states before they reach Apply. Unknown field
// keys are deliberately NOT an error; those filters are no-ops.
func (st State) Validate() error {
	for _, f := range st.Filters {
		if f.Type == TypeDateRange && f.From != nil && f.To != nil && f.From.After(*f.To) {
			return fmt.Errorf("filter %q: date range start after end", f.Field)
		}
		if f.Type == TypeNumber && f.Op != "" && f.Op != OpEq && f.Op != OpGte && f.Op != OpLte {
			return fmt.Errorf("filter %q: unknown number op %q", f.Field, f.Op)
		}
	}
	return nil
}

// FieldFunc resolves a named field of an item to a comparable value.
// Supported value kinds: string, float64, bool, time.Time, []string.
// Return ok=false for unknown fields; the filter then matches everything.
type FieldFunc[T any] func(item T, field string) (any, bool)

// Engine applies filter states to in-memory collections, memoizing the
// filtered-and-sorted result per state. The cache is unbounded and lives as
// long as the engine; it is dropped wholesale whenever the source collection
// changes. Not safe for concurrent use.
type Engine[T any] struct {
	get     FieldFunc[T]
	presets map[string]State
	active  State

	srcLen  int
	srcHead *T
	cache   map[string][]T
}

// NewEngine creates an engine for one collection shape
func NewEngine[T any](get FieldFunc[T]) *Engine[T] {
	return &Engine[T]{
		get:     get,
		presets: make(map[string]State),
		cache:   make(map[string][]T),
	}
}

// Apply filters then sorts items per the state. Repeated calls with the same
// source slice and an equivalent state return the memoized result without
// recomputation.
func (e *Engine[T]) Apply(items []T, st State) []T {
	e.invalidateIfSourceChanged(items)

	key := stateKey(st)
	if cached, ok := e.cache[key]; ok {
		return cached
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if e.matchesAll(item, st.Filters) {
			out = append(out, item)
		}
	}

	if st.Sort.Field != "" {
		sort.SliceStable(out, func(i, j int) bool {
			if st.Sort.Desc {
				return e.less(out[j], out[i], st.Sort.Field)
			}
			return e.less(out[i], out[j], st.Sort.Field)
		})
	}

	e.cache[key] = out
	return out
}

// ApplyActive runs the currently active state (set directly or via a preset)
func (e *Engine[T]) ApplyActive(items []T) []T {
	return e.Apply(items, e.active)
}

// SetActive replaces the active filter state wholesale
func (e *Engine[T]) SetActive(st State) {
	e.active = st
}

// Active returns the current filter state
func (e *Engine[T]) Active() State {
	return e.active
}

// SavePreset stores the state under a name, replacing any previous preset
func (e *Engine[T]) SavePreset(name string, st State) {
	e.presets[name] = st
}

// LoadPreset replaces the active state with the named preset
func (e *Engine[T]) LoadPreset(name string) (State, bool) {
	st, ok := e.presets[name]
	if ok {
		e.active = st
	}
	return st, ok
}

// DeletePreset removes a named preset
func (e *Engine[T]) DeletePreset(name string) {
	delete(e.presets, name)
}

// invalidateIfSourceChanged drops the cache when the source slice identity
// changes. Two slices are the same source iff they have the same length and
// share their first element's address.
func (e *Engine[T]) invalidateIfSourceChanged(items []T) {
	var head *T
	if len(items) > 0 {
		head = &items[0]
	}
	if len(items) != e.srcLen || head != e.srcHead {
		e.cache = make(map[string][]T)
		e.srcLen = len(items)
		e.srcHead = head
	}
}

func stateKey(st State) string {
	b, err := json.Marshal(st)
	if err != nil {
		// States are plain data; marshal cannot realistically fail
		return fmt.Sprintf("%#v", st)
	}
	return string(b)
}

func (e *Engine[T]) matchesAll(item T, filters []Filter) bool {
	for _, f := range filters {
		if !e.matches(item, f) {
			return false
		}
	}
	return true
}

func (e *Engine[T]) matches(item T, f Filter) bool {
	switch f.Type {
	case TypeText:
		return e.matchText(item, f)
	case TypeSelect:
		v, ok := e.get(item, f.Field)
		if !ok {
			return true
		}
		return stringify(v) == f.Text
	case TypeMultiSelect:
		if len(f.Selected) == 0 {
			return true // empty selection filters nothing
		}
		v, ok := e.get(item, f.Field)
		if !ok {
			return true
		}
		s := stringify(v)
		for _, sel := range f.Selected {
			if s == sel {
				return true
			}
		}
		return false
	case TypeBoolean:
		if f.Bool == nil {
			return true
		}
		v, ok := e.get(item, f.Field)
		if !ok {
			return true
		}
		b, isBool := v.(bool)
		return isBool && b == *f.Bool
	case TypeNumber:
		if f.Number == nil {
			return true
		}
		v, ok := e.get(item, f.Field)
		if !ok {
			return true
		}
		n, isNum := v.(float64)
		if !isNum {
			return true
		}
		switch f.Op {
		case OpGte:
			return n >= *f.Number
		case OpLte:
			return n <= *f.Number
		default:
			return n == *f.Number
		}
	case TypeDateRange:
		v, ok := e.get(item, f.Field)
		if !ok {
			return true
		}
		d, isTime := v.(time.Time)
		if !isTime {
			return true
		}
		if f.From != nil && d.Before(*f.From) {
			return false
		}
		if f.To != nil && d.After(*f.To) {
			return false
		}
		return true
	default:
		return true // unknown filter types are no-ops
	}
}

func (e *Engine[T]) matchText(item T, f Filter) bool {
	needle := strings.ToLower(strings.TrimSpace(f.Text))
	if needle == "" {
		return true
	}
	fields := f.Fields
	if len(fields) == 0 {
		fields = []string{f.Field}
	}
	for _, field := range fields {
		v, ok := e.get(item, field)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(stringify(v)), needle) {
			return true
		}
	}
	// A text filter over only unknown fields is a no-op
	for _, field := range fields {
		if _, ok := e.get(item, field); ok {
			return false
		}
	}
	return true
}

func (e *Engine[T]) less(a, b T, field string) bool {
	va, okA := e.get(a, field)
	vb, okB := e.get(b, field)
	if !okA || !okB {
		return false
	}
	switch x := va.(type) {
	case string:
		y, _ := vb.(string)
		return x < y
	case float64:
		y, _ := vb.(float64)
		return x < y
	case bool:
		y, _ := vb.(bool)
		return !x && y
	case time.Time:
		y, _ := vb.(time.Time)
		return x.Before(y)
	default:
		return stringify(va) < stringify(vb)
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, " ")
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
