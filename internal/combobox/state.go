package combobox

import (
	"fmt"

	"multicombo/internal/catalog"
	apperrors "multicombo/internal/errors"
)

// State is an immutable snapshot of the control. Each transition produces a
// new State; callers may hold on to old snapshots freely.
type State struct {
	cfg         Config
	catalog     *catalog.Catalog
	visible     []string
	current     string
	selection   Selection
	tags        TagSet
	input       string
	committed   string
	open        bool
	focusOnList bool
}

func newState(cfg Config) State {
	return State{
		cfg:       cfg,
		catalog:   catalog.New(),
		selection: NewSelection(cfg.Multiple),
	}
}

// Config returns the configuration the snapshot was produced under.
func (s State) Config() Config { return s.cfg }

// Options returns the whole catalog in list order.
func (s State) Options() []catalog.Option { return s.catalog.All() }

// Option looks up a catalog option by id.
func (s State) Option(id string) (catalog.Option, bool) { return s.catalog.Get(id) }

// Visible returns the ids of the options currently eligible for display and navigation.
func (s State) Visible() []string {
	out := make([]string, len(s.visible))
	copy(out, s.visible)
	return out
}

// VisibleOptions resolves Visible against the catalog.
func (s State) VisibleOptions() []catalog.Option {
	out := make([]catalog.Option, 0, len(s.visible))
	for _, id := range s.visible {
		if opt, ok := s.catalog.Get(id); ok {
			out = append(out, opt)
		}
	}
	return out
}

// Current returns the id of the keyboard cursor option, or "".
func (s State) Current() string { return s.current }

// Selected reports whether the option is selected. It is derived from the
// selection and never stored per option.
func (s State) Selected(id string) bool { return s.selection.Has(id) }

// Selection returns the selection state.
func (s State) Selection() Selection { return s.selection }

// Tags returns the tag set. It is empty unless tags mode is on.
func (s State) Tags() TagSet { return s.tags }

// Input returns the text currently in the search input.
func (s State) Input() string { return s.input }

// Committed returns the text the input reverts to when the list closes.
func (s State) Committed() string { return s.committed }

// Open reports whether the list is shown.
func (s State) Open() bool { return s.open }

// FocusOnList reports whether keyboard focus is logically inside the list.
func (s State) FocusOnList() bool { return s.focusOnList }

// Disabled reports whether the control ignores input.
func (s State) Disabled() bool { return s.cfg.Disabled }

// DeleteVisible reports whether the delete affordance should be shown.
func (s State) DeleteVisible() bool { return s.input != "" }

// Value derives the control value from the selection.
func (s State) Value() ControlValue {
	if s.cfg.Multiple {
		return ControlValue{Multiple: true, IDs: s.selection.IDs()}
	}
	v := ControlValue{IDs: s.selection.IDs()}
	if len(v.IDs) == 1 {
		if opt, ok := s.catalog.Get(v.IDs[0]); ok {
			v.Label = opt.Label
		}
	}
	return v
}

// FormValue returns one name/id pair per selected option in selection order.
func (s State) FormValue() []FormPair {
	ids := s.selection.IDs()
	pairs := make([]FormPair, len(ids))
	for i, id := range ids {
		pairs[i] = FormPair{Name: s.cfg.Name, Value: id}
	}
	return pairs
}

// Validity reports the required-value constraint.
func (s State) Validity() Validity {
	return Validity{ValueMissing: s.selection.ValueMissing(s.cfg.Required)}
}

// OptionViews returns the visible options decorated for rendering.
func (s State) OptionViews() []OptionView {
	opts := s.VisibleOptions()
	views := make([]OptionView, len(opts))
	for i, opt := range opts {
		views[i] = OptionView{
			ID:       opt.ID,
			Label:    opt.Label,
			Selected: s.selection.Has(opt.ID),
			Current:  opt.ID == s.current,
		}
	}
	return views
}

// Consistent checks the cross-component invariants of the snapshot.
func (s State) Consistent() error {
	fail := func(format string, args ...any) error {
		return apperrors.New(apperrors.CodeUnknown, fmt.Sprintf(format, args...), nil)
	}

	order := s.catalog.IDs()
	pos := 0
	for _, id := range s.visible {
		for pos < len(order) && order[pos] != id {
			pos++
		}
		if pos == len(order) {
			return fail("visible option %q is not in catalog order", id)
		}
		pos++
	}
	if s.current != "" && indexOf(s.visible, s.current) < 0 {
		return fail("current option %q is not visible", s.current)
	}
	if s.open && len(s.visible) == 0 {
		return fail("list is open with no visible options")
	}

	ids := s.selection.IDs()
	if !s.cfg.Multiple && len(ids) > 1 {
		return fail("single mode has %d selected options", len(ids))
	}
	for _, id := range ids {
		if !s.catalog.Has(id) {
			return fail("selected option %q is not in the catalog", id)
		}
	}

	tags := s.tags.Tags()
	if !s.cfg.Tags {
		if len(tags) > 0 {
			return fail("tags present while tags mode is off")
		}
		return nil
	}
	if len(tags) != len(ids) {
		return fail("%d tags for %d selected options", len(tags), len(ids))
	}
	for i, tag := range tags {
		if tag.OptionID != ids[i] {
			return fail("tag %d is %q, want %q", i, tag.OptionID, ids[i])
		}
		if opt, _ := s.catalog.Get(ids[i]); opt.Label != tag.Label {
			return fail("tag %q shows %q, want %q", tag.OptionID, tag.Label, opt.Label)
		}
	}
	return nil
}
