package combobox

// TargetKind names the logical parts of the control that receive events.
type TargetKind int

const (
	TargetHost TargetKind = iota
	TargetInput
	TargetDelete
	TargetOption
	TargetTag
	TargetOutside
)

// Target is a logical event target. ID is set for options and tags only.
type Target struct {
	Kind TargetKind
	ID   string
}

// EventKind is a bitmask of raw event kinds a target listens to.
type EventKind uint8

const (
	EventClick EventKind = 1 << iota
	EventKeyDown
	EventInput
	EventPointerUp
)

// Payload carries the raw event details needed to build an Event.
type Payload struct {
	Text string
	Key  Key
	Ctrl bool
}

// Subscriptions maps targets to the event kinds they handle. Operations return
// a new table and never modify the receiver.
type Subscriptions struct {
	table map[Target]EventKind
}

// Attach adds kinds to target.
func (s Subscriptions) Attach(target Target, kinds EventKind) Subscriptions {
	out := s.clone()
	out.table[target] |= kinds
	return out
}

// Detach removes target entirely.
func (s Subscriptions) Detach(target Target) Subscriptions {
	if _, ok := s.table[target]; !ok {
		return s
	}
	out := s.clone()
	delete(out.table, target)
	return out
}

// Handles reports whether target listens to kind.
func (s Subscriptions) Handles(target Target, kind EventKind) bool {
	return s.table[target]&kind != 0
}

// Len returns the number of subscribed targets.
func (s Subscriptions) Len() int { return len(s.table) }

func (s Subscriptions) clone() Subscriptions {
	out := Subscriptions{table: make(map[Target]EventKind, len(s.table)+1)}
	for t, k := range s.table {
		out.table[t] = k
	}
	return out
}

func baseSubscriptions() Subscriptions {
	return Subscriptions{}.
		Attach(Target{Kind: TargetHost}, EventPointerUp).
		Attach(Target{Kind: TargetInput}, EventClick|EventKeyDown|EventInput).
		Attach(Target{Kind: TargetDelete}, EventClick).
		Attach(Target{Kind: TargetOutside}, EventPointerUp)
}

// eventFor translates a raw event on target into a controller Event.
func eventFor(target Target, kind EventKind, p Payload) (Event, bool) {
	switch target.Kind {
	case TargetInput:
		switch kind {
		case EventInput:
			return TextChanged{Text: p.Text}, true
		case EventKeyDown:
			return KeyPressed{Key: p.Key, Ctrl: p.Ctrl}, true
		case EventClick:
			return InputClicked{}, true
		}
	case TargetDelete:
		if kind == EventClick {
			return DeleteClicked{}, true
		}
	case TargetOption:
		switch kind {
		case EventClick:
			return OptionClicked{ID: target.ID}, true
		case EventPointerUp:
			return PointerUp{Inside: true}, true
		}
	case TargetTag:
		if kind == EventClick {
			return TagButtonClicked{ID: target.ID}, true
		}
	case TargetHost:
		if kind == EventPointerUp {
			return PointerUp{Inside: true}, true
		}
	case TargetOutside:
		if kind == EventPointerUp {
			return PointerUp{Inside: false}, true
		}
	}
	return nil, false
}
