package modal

import (
	"github.com/goliatone/go-showcase/internal/catalog"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

// State is the modal lifecycle state.
type State string

const (
	StateClosed  State = "closed"
	StateOpen    State = "open"
	StateClosing State = "closing"
)

// EventType names the inputs the synchronizer reacts to.
type EventType string

const (
	EventCardClicked     EventType = "card_clicked"
	EventCloseRequested  EventType = "close_requested"
	EventCloseElapsed    EventType = "close_elapsed"
	EventLocationChanged EventType = "location_changed"
	EventDataReady       EventType = "data_ready"
	EventScrollElapsed   EventType = "scroll_elapsed"
	EventDispose         EventType = "dispose"
)

// CloseReason records which control asked the modal to close.
type CloseReason string

const (
	CloseOverlay CloseReason = "overlay"
	CloseControl CloseReason = "control"
	CloseEscape  CloseReason = "escape"
)

// Event is one input to the synchronizer.
type Event struct {
	Type     EventType
	Item     catalog.Item
	Reason   CloseReason
	Location interfaces.Location
	Catalog  catalog.Catalog

	timer uint64
}

// Transition is one allowed (state, event) pair with its possible targets.
type Transition struct {
	Event EventType
	From  State
	To    []State
}

// Transitions returns the synchronizer's transition table. Pairs missing
// from the table are ignored.
func Transitions() []Transition {
	out := make([]Transition, len(transitionTable))
	for i, t := range transitionTable {
		out[i] = Transition{Event: t.Event, From: t.From, To: append([]State(nil), t.To...)}
	}
	return out
}

var transitionTable = []Transition{
	{Event: EventCardClicked, From: StateClosed, To: []State{StateOpen}},
	{Event: EventCardClicked, From: StateOpen, To: []State{StateOpen}},
	{Event: EventLocationChanged, From: StateClosed, To: []State{StateClosed, StateOpen}},
	{Event: EventLocationChanged, From: StateOpen, To: []State{StateOpen, StateClosed}},
	{Event: EventLocationChanged, From: StateClosing, To: []State{StateClosing, StateClosed, StateOpen}},
	{Event: EventDataReady, From: StateClosed, To: []State{StateClosed, StateOpen}},
	{Event: EventDataReady, From: StateOpen, To: []State{StateOpen}},
	{Event: EventDataReady, From: StateClosing, To: []State{StateClosing}},
	{Event: EventCloseRequested, From: StateOpen, To: []State{StateClosing}},
	{Event: EventCloseRequested, From: StateClosing, To: []State{StateClosing}},
	{Event: EventCloseElapsed, From: StateClosing, To: []State{StateClosed}},
	{Event: EventScrollElapsed, From: StateOpen, To: []State{StateOpen}},
	{Event: EventDispose, From: StateClosed, To: []State{StateClosed}},
	{Event: EventDispose, From: StateOpen, To: []State{StateClosed}},
	{Event: EventDispose, From: StateClosing, To: []State{StateClosed}},
}

type compiledTable map[string]Transition

func compileTransitions(table []Transition) compiledTable {
	compiled := make(compiledTable, len(table))
	for _, t := range table {
		compiled[transitionKey(t.Event, t.From)] = t
	}
	return compiled
}

func (c compiledTable) lookup(event EventType, from State) (Transition, bool) {
	t, ok := c[transitionKey(event, from)]
	return t, ok
}

func (t Transition) allows(to State) bool {
	for _, candidate := range t.To {
		if candidate == to {
			return true
		}
	}
	return false
}

func transitionKey(event EventType, from State) string {
	return string(event) + "::" + string(from)
}
