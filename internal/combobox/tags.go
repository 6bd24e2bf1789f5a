package combobox

// Tag is a chip shown for one selected option in multiple+tags mode.
// Tags are keyed by option id so two options sharing a label keep separate chips.
type Tag struct {
	OptionID string
	Label    string
}

// TagState is the desired presence passed to TagSet.Sync.
type TagState int

const (
	// TagToggle removes the tag if present, creates it otherwise.
	TagToggle TagState = iota
	// TagPresent creates the tag if absent.
	TagPresent
	// TagAbsent removes the tag if present.
	TagAbsent
)

// TagEventKind tells the renderer what happened to a tag.
type TagEventKind int

const (
	TagAdded TagEventKind = iota
	TagRemoved
)

func (k TagEventKind) String() string {
	if k == TagAdded {
		return "added"
	}
	return "removed"
}

// TagEvent is emitted for every tag creation or removal.
type TagEvent struct {
	Kind TagEventKind
	Tag  Tag
}

// TagSet is the ordered set of displayed tags. Tags appear in selection order.
type TagSet struct {
	tags []Tag
}

// Sync reconciles the tag for optionID with the requested state and returns
// the resulting set plus the events it produced. Present and absent requests
// are idempotent.
func (t TagSet) Sync(label, optionID string, want TagState) (TagSet, []TagEvent) {
	i := t.index(optionID)
	if want == TagToggle {
		want = TagPresent
		if i >= 0 {
			want = TagAbsent
		}
	}

	switch want {
	case TagPresent:
		if i >= 0 {
			return t, nil
		}
		tag := Tag{OptionID: optionID, Label: label}
		tags := make([]Tag, len(t.tags), len(t.tags)+1)
		copy(tags, t.tags)
		return TagSet{tags: append(tags, tag)}, []TagEvent{{Kind: TagAdded, Tag: tag}}
	case TagAbsent:
		if i < 0 {
			return t, nil
		}
		removed := t.tags[i]
		tags := make([]Tag, 0, len(t.tags)-1)
		tags = append(tags, t.tags[:i]...)
		tags = append(tags, t.tags[i+1:]...)
		return TagSet{tags: tags}, []TagEvent{{Kind: TagRemoved, Tag: removed}}
	}
	return t, nil
}

// Has reports whether a tag exists for optionID.
func (t TagSet) Has(optionID string) bool {
	return t.index(optionID) >= 0
}

// Tags returns the tags in display order.
func (t TagSet) Tags() []Tag {
	out := make([]Tag, len(t.tags))
	copy(out, t.tags)
	return out
}

// Labels returns the tag labels in display order.
func (t TagSet) Labels() []string {
	out := make([]string, len(t.tags))
	for i, tag := range t.tags {
		out[i] = tag.Label
	}
	return out
}

// Len returns the number of tags.
func (t TagSet) Len() int {
	return len(t.tags)
}

func (t TagSet) index(optionID string) int {
	for i, tag := range t.tags {
		if tag.OptionID == optionID {
			return i
		}
	}
	return -1
}
