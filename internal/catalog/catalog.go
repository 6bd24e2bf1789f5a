// Package catalog holds the ordered, identity-checked set of options a
// combobox can offer.
package catalog

import (
	"fmt"
	"strings"

	apperrors "multicombo/internal/errors"
)

// OptionKind is the only element kind accepted for catalog entries.
const OptionKind = "li"

// Entry is one raw option record as supplied by an option source.
type Entry struct {
	Kind     string `yaml:"kind,omitempty" json:"kind,omitempty"`
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`
	Selected bool   `yaml:"selected,omitempty" json:"selected,omitempty"`
}

// Option is a validated catalog member. Whether it is selected is owned by
// the selection state, not stored here.
type Option struct {
	ID    string
	Label string
}

// Catalog is an ordered collection of options keyed by id.
// Insertion order defines list order and the first/last navigation endpoints.
type Catalog struct {
	options []Option
	index   map[string]int
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Validate checks an entry for authoring errors without registering it.
func Validate(e Entry) error {
	kind := strings.TrimSpace(e.Kind)
	if kind != "" && !strings.EqualFold(kind, OptionKind) {
		return apperrors.New(apperrors.CodeMalformedOption,
			fmt.Sprintf("options should use element <%s>, got <%s>", OptionKind, kind), nil)
	}
	if strings.TrimSpace(e.ID) == "" {
		return apperrors.New(apperrors.CodeMissingOptionID,
			fmt.Sprintf("option %q must have an id", e.Label), nil)
	}
	return nil
}

// Register validates e and appends it. Malformed entries and duplicate ids
// are rejected; the first registration of an id stays authoritative.
func (c *Catalog) Register(e Entry) (Option, error) {
	if err := Validate(e); err != nil {
		return Option{}, err
	}
	id := strings.TrimSpace(e.ID)
	if i, ok := c.index[id]; ok {
		first := c.options[i]
		return Option{}, apperrors.New(apperrors.CodeDuplicateOptionID,
			fmt.Sprintf("id %s is set more than once (for %q and %q); %q was discarded",
				id, first.Label, e.Label, e.Label), nil)
	}
	opt := Option{ID: id, Label: e.Label}
	c.index[id] = len(c.options)
	c.options = append(c.options, opt)
	return opt, nil
}

// Get returns the option with the given id.
func (c *Catalog) Get(id string) (Option, bool) {
	if c == nil {
		return Option{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Option{}, false
	}
	return c.options[i], true
}

// Has reports whether id is registered.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// All returns a copy of the options in insertion order.
func (c *Catalog) All() []Option {
	if c == nil {
		return nil
	}
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// IDs returns the option ids in insertion order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, len(c.options))
	for i, opt := range c.options {
		ids[i] = opt.ID
	}
	return ids
}

// Len returns the number of registered options.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.options)
}

// Remove deletes the option with the given id. Returns false if absent.
func (c *Catalog) Remove(id string) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.options = append(c.options[:i:i], c.options[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.options); j++ {
		c.index[c.options[j].ID] = j
	}
	return true
}

// Clone returns an independent copy. Snapshots share a catalog until one of
// them needs to change it.
func (c *Catalog) Clone() *Catalog {
	out := New()
	if c == nil {
		return out
	}
	out.options = make([]Option, len(c.options))
	copy(out.options, c.options)
	for id, i := range c.index {
		out.index[id] = i
	}
	return out
}
