package modal

import (
	"sync"

	"github.com/goliatone/go-showcase/pkg/interfaces"
)

// NavigationOp identifies a recorded history operation.
type NavigationOp string

const (
	OpPush    NavigationOp = "push"
	OpReplace NavigationOp = "replace"
)

// Navigation is one recorded history operation.
type Navigation struct {
	Op    NavigationOp
	Path  string
	State interfaces.LocationState
}

// MemoryNavigator is an in-memory history for tests and server-side hosts.
// When a listener is set, every Push and Replace notifies it with the new
// location, the way a browser history emits location changes.
type MemoryNavigator struct {
	mu       sync.Mutex
	current  interfaces.Location
	history  []Navigation
	listener func(interfaces.Location)
}

var _ interfaces.Navigator = (*MemoryNavigator)(nil)

// NewMemoryNavigator starts a history at path.
func NewMemoryNavigator(path string) *MemoryNavigator {
	if path == "" {
		path = "/"
	}
	return &MemoryNavigator{current: interfaces.Location{Path: path}}
}

// Listen registers fn to receive location changes.
func (n *MemoryNavigator) Listen(fn func(interfaces.Location)) {
	n.mu.Lock()
	n.listener = fn
	n.mu.Unlock()
}

// Location implements interfaces.Navigator.
func (n *MemoryNavigator) Location() interfaces.Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return interfaces.Location{Path: n.current.Path, State: cloneState(n.current.State)}
}

// Push implements interfaces.Navigator.
func (n *MemoryNavigator) Push(path string, state interfaces.LocationState) {
	n.record(OpPush, path, state)
}

// Replace implements interfaces.Navigator.
func (n *MemoryNavigator) Replace(path string, state interfaces.LocationState) {
	n.record(OpReplace, path, state)
}

// Visit simulates the user navigating to path outside the modal.
func (n *MemoryNavigator) Visit(path string) {
	n.record(OpPush, path, nil)
}

// History returns the recorded operations.
func (n *MemoryNavigator) History() []Navigation {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Navigation, len(n.history))
	copy(out, n.history)
	return out
}

func (n *MemoryNavigator) record(op NavigationOp, path string, state interfaces.LocationState) {
	n.mu.Lock()
	n.current = interfaces.Location{Path: path, State: cloneState(state)}
	n.history = append(n.history, Navigation{Op: op, Path: path, State: cloneState(state)})
	listener := n.listener
	location := interfaces.Location{Path: path, State: cloneState(state)}
	n.mu.Unlock()

	if listener != nil {
		listener(location)
	}
}

func cloneState(state interfaces.LocationState) interfaces.LocationState {
	if len(state) == 0 {
		return nil
	}
	out := make(interfaces.LocationState, len(state))
	for k, v := range state {
		out[k] = v
	}
	return out
}
