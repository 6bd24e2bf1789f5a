// Package combobox implements the selection, filtering and navigation state
// machine behind a searchable single or multiple choice control. It has no
// terminal or rendering dependencies; see internal/ui for the bubbletea view.
package combobox

import (
	"fmt"

	"multicombo/internal/catalog"
	apperrors "multicombo/internal/errors"
)

// Result describes what a transition did.
type Result struct {
	State            State
	TagEvents        []TagEvent
	SelectionChanged bool
	// Stopped is set when the event must not propagate to outer handlers,
	// e.g. a pointer release inside the control.
	Stopped bool
	// FocusInput asks the host to move focus back to the search input.
	FocusInput bool
}

// Controller owns one control instance. It is not safe for concurrent use;
// all calls are expected from a single event loop.
type Controller struct {
	cfg   Config
	diag  Diagnostics
	state State
	subs  Subscriptions
}

// New validates cfg, loads entries and returns a ready controller.
// Configuration errors are fatal and returned. Entry problems are reported
// to diag and the offending entry is skipped.
func New(cfg Config, entries []catalog.Entry, diag Diagnostics) (*Controller, error) {
	if diag == nil {
		diag = discardDiagnostics{}
	}
	if err := cfg.Validate(); err != nil {
		diag.Report(err)
		return nil, err
	}
	cfg.Autocomplete, _ = ParseAutocomplete(string(cfg.Autocomplete))

	c := &Controller{
		cfg:   cfg,
		diag:  diag,
		state: newState(cfg),
		subs:  baseSubscriptions(),
	}
	t := c.begin()
	t.load(entries)
	c.commit(t)
	return c, nil
}

// State returns the current snapshot.
func (c *Controller) State() State { return c.state }

// Config returns the effective configuration.
func (c *Controller) Config() Config { return c.cfg }

// Subscriptions returns the event table.
func (c *Controller) Subscriptions() Subscriptions { return c.subs }

// Value returns the derived control value.
func (c *Controller) Value() ControlValue { return c.state.Value() }

// FormValue returns the pairs submitted with a form.
func (c *Controller) FormValue() []FormPair { return c.state.FormValue() }

// Validity returns the required constraint state.
func (c *Controller) Validity() Validity { return c.state.Validity() }

// Handle applies one user event. Disabled controls ignore every event.
func (c *Controller) Handle(ev Event) Result {
	if c.cfg.Disabled {
		return Result{State: c.state}
	}
	t := c.begin()
	switch e := ev.(type) {
	case TextChanged:
		t.textChanged(e.Text)
	case KeyPressed:
		t.keyPressed(e)
	case OptionClicked:
		t.optionClicked(e.ID)
	case DeleteClicked:
		t.deleteValue()
	case TagButtonClicked:
		if _, ok := t.s.catalog.Get(e.ID); ok {
			t.commitOption(e.ID)
		}
	case PointerUp:
		if e.Inside {
			t.stopped = true
		} else if t.s.open {
			t.close()
		}
	case InputClicked:
		if t.s.open {
			t.close()
		} else {
			t.openList()
		}
	}
	return c.commit(t)
}

// Dispatch routes a raw event through the subscription table. Events on
// targets that are not subscribed for kind are dropped.
func (c *Controller) Dispatch(target Target, kind EventKind, p Payload) Result {
	if !c.subs.Handles(target, kind) {
		return Result{State: c.state}
	}
	ev, ok := eventFor(target, kind, p)
	if !ok {
		return Result{State: c.state}
	}
	return c.Handle(ev)
}

// AddOptions registers entries at runtime. New options are appended to the
// visible set and pre-selected ones get their selection and tag. In single
// mode a pre-selected option also becomes the current option and the
// committed input text.
func (c *Controller) AddOptions(entries []catalog.Entry) Result {
	t := c.begin()
	t.load(entries)
	return c.commit(t)
}

// RemoveOption drops an option from the catalog and everything derived from it.
func (c *Controller) RemoveOption(id string) Result {
	t := c.begin()
	if !t.s.catalog.Has(id) {
		c.diag.Report(apperrors.New(apperrors.CodeUnknownOption,
			fmt.Sprintf("cannot remove unknown option %q", id), nil))
		return c.commit(t)
	}
	opt, _ := t.s.catalog.Get(id)
	t.mutableCatalog().Remove(id)
	t.s.visible = without(t.s.visible, id)
	if t.s.current == id {
		t.s.current = ""
	}
	if t.s.selection.Has(id) {
		t.s.selection = t.s.selection.Remove(id)
		t.selChanged = true
		t.syncTag(opt.Label, id, TagAbsent)
	}
	t.subs = t.subs.Detach(Target{Kind: TargetOption, ID: id})
	if t.s.open && len(t.s.visible) == 0 {
		t.close()
	}
	return c.commit(t)
}

// SetOpen opens or closes the list. Opening is refused while nothing is visible.
func (c *Controller) SetOpen(open bool) Result {
	t := c.begin()
	if open {
		t.openList()
	} else {
		t.close()
	}
	return c.commit(t)
}

// SetRequired toggles the required constraint.
func (c *Controller) SetRequired(required bool) Result {
	c.cfg.Required = required
	t := c.begin()
	t.s.cfg = c.cfg
	return c.commit(t)
}

// SetDisabled toggles whether the control accepts input.
func (c *Controller) SetDisabled(disabled bool) Result {
	c.cfg.Disabled = disabled
	t := c.begin()
	t.s.cfg = c.cfg
	if disabled && t.s.open {
		t.close()
	}
	return c.commit(t)
}

// Teardown releases the catalog, selection, tags and subscriptions.
func (c *Controller) Teardown() Result {
	t := c.begin()
	for _, tag := range t.s.tags.Tags() {
		t.syncTag(tag.Label, tag.OptionID, TagAbsent)
	}
	t.selChanged = !t.s.selection.Empty()
	t.s = newState(c.cfg)
	t.subs = Subscriptions{}
	return c.commit(t)
}

// txn accumulates one transition on a private copy of the state.
type txn struct {
	cfg         Config
	diag        Diagnostics
	s           State
	subs        Subscriptions
	ownsCatalog bool
	events      []TagEvent
	selChanged  bool
	stopped     bool
	focusInput  bool
}

func (c *Controller) begin() *txn {
	return &txn{cfg: c.cfg, diag: c.diag, s: c.state, subs: c.subs}
}

func (c *Controller) commit(t *txn) Result {
	c.state = t.s
	c.subs = t.subs
	return Result{
		State:            t.s,
		TagEvents:        t.events,
		SelectionChanged: t.selChanged,
		Stopped:          t.stopped,
		FocusInput:       t.focusInput,
	}
}

// mutableCatalog clones the shared catalog the first time a transition needs
// to change it, so earlier snapshots stay untouched.
func (t *txn) mutableCatalog() *catalog.Catalog {
	if !t.ownsCatalog {
		t.s.catalog = t.s.catalog.Clone()
		t.ownsCatalog = true
	}
	return t.s.catalog
}

func (t *txn) load(entries []catalog.Entry) {
	if len(entries) == 0 {
		return
	}
	t.mutableCatalog()
	for _, e := range entries {
		opt, err := t.s.catalog.Register(e)
		if err != nil {
			t.diag.Report(err)
			continue
		}
		t.s.visible = appendID(t.s.visible, opt.ID)
		t.subs = t.subs.Attach(Target{Kind: TargetOption, ID: opt.ID}, EventClick|EventPointerUp)
		if !e.Selected {
			continue
		}
		if !t.cfg.Multiple && !t.s.selection.Empty() {
			t.diag.Report(apperrors.New(apperrors.CodeMultipleDefaultSelect,
				fmt.Sprintf("option %q is also selected but only one selection is allowed; it was unselected", opt.ID), nil))
			continue
		}
		t.s.selection, _ = t.s.selection.Toggle(opt.ID)
		t.selChanged = true
		t.syncTag(opt.Label, opt.ID, TagPresent)
		if !t.cfg.Multiple {
			t.s.current = opt.ID
			t.s.input = opt.Label
			t.s.committed = opt.Label
		}
	}
}

func (t *txn) textChanged(text string) {
	t.s.input = text
	t.s.committed = text
	t.filter(false)
	if len(t.s.visible) > 0 {
		t.s.open = true
	} else {
		t.close()
	}
	if t.s.current != "" && indexOf(t.s.visible, t.s.current) < 0 {
		t.s.current = ""
		t.s.focusOnList = false
	}
}

func (t *txn) keyPressed(e KeyPressed) {
	if e.Ctrl {
		return
	}
	switch e.Key {
	case KeyEscape:
		if !t.s.open {
			t.deleteValue()
		}
		t.close()
	case KeyTab:
		t.close()
	case KeyDown, KeyUp:
		if !t.s.open {
			t.filter(t.cfg.filtersList())
		}
		if len(t.s.visible) == 0 {
			return
		}
		t.s.open = true
		if e.Key == KeyDown {
			t.setCurrent(Next(t.s.current, t.s.visible))
		} else {
			t.setCurrent(Previous(t.s.current, t.s.visible))
		}
		if opt, ok := t.s.catalog.Get(t.s.current); ok {
			t.s.input = opt.Label
		}
	case KeyEnter:
		if !t.s.open {
			t.filter(false)
			t.openList()
		}
		if t.s.current != "" {
			t.commitOption(t.s.current)
		} else if id, ok := ExactMatch(t.s.catalog, t.s.input); ok {
			t.commitOption(id)
		}
	case KeyLeft, KeyRight, KeyHome, KeyEnd, KeyBackspace, KeyPrintable:
		t.s.focusOnList = false
	}
}

func (t *txn) optionClicked(id string) {
	opt, ok := t.s.catalog.Get(id)
	if !ok {
		return
	}
	if indexOf(t.s.visible, id) >= 0 {
		t.setCurrent(id)
	}
	t.s.input = opt.Label
	t.commitOption(id)
	t.focusInput = true
}

// filter recomputes the visible set. reset shows the whole catalog and skips
// the inline scan. Blank search text is contained in every label, so the
// inline scan then lands on the first option.
func (t *txn) filter(reset bool) {
	if reset {
		t.s.visible = t.s.catalog.IDs()
		return
	}
	t.s.visible = ComputeVisible(t.s.catalog, t.s.input, t.cfg.Autocomplete)
	if t.cfg.filtersList() {
		if indexOf(t.s.visible, t.s.current) < 0 {
			t.setCurrent("")
		}
		return
	}
	if id, ok := FirstMatch(t.s.catalog, t.s.input); ok {
		t.setCurrent(id)
	}
}

func (t *txn) setCurrent(id string) {
	t.s.current = id
	t.s.focusOnList = id != ""
}

// commitOption toggles id in the selection. Single mode also commits the
// label as the input text and closes the list.
func (t *txn) commitOption(id string) {
	opt, ok := t.s.catalog.Get(id)
	if !ok {
		return
	}
	var selected bool
	t.s.selection, selected = t.s.selection.Toggle(id)
	t.selChanged = true
	want := TagAbsent
	if selected {
		want = TagPresent
	}
	t.syncTag(opt.Label, id, want)
	if !t.cfg.Multiple {
		t.s.committed = opt.Label
		t.s.input = opt.Label
		t.close()
	}
}

func (t *txn) deleteValue() {
	t.s.committed = ""
	t.s.input = ""
	t.filter(true)
	if !t.cfg.Multiple && !t.s.selection.Empty() {
		for _, id := range t.s.selection.IDs() {
			opt, _ := t.s.catalog.Get(id)
			t.syncTag(opt.Label, id, TagAbsent)
		}
		t.s.selection = t.s.selection.Clear()
		t.selChanged = true
	}
	t.setCurrent("")
}

func (t *txn) openList() {
	if len(t.s.visible) > 0 {
		t.s.open = true
	}
}

func (t *txn) close() {
	t.s.open = false
	t.s.current = ""
	t.s.focusOnList = false
	t.s.input = t.s.committed
}

// syncTag reconciles one tag and keeps the subscription table in step.
// It is a no-op unless tags mode is on.
func (t *txn) syncTag(label, id string, want TagState) {
	if !t.cfg.Tags {
		return
	}
	var events []TagEvent
	t.s.tags, events = t.s.tags.Sync(label, id, want)
	for _, ev := range events {
		target := Target{Kind: TargetTag, ID: ev.Tag.OptionID}
		if ev.Kind == TagAdded {
			t.subs = t.subs.Attach(target, EventClick)
		} else {
			t.subs = t.subs.Detach(target)
		}
	}
	t.events = append(t.events, events...)
}
