package core

import "sync/atomic"

type ConnectivityState int32

const (
	ConnectivityUninitialized ConnectivityState = iota
	ConnectivityConnected
	ConnectivityDisconnected
)

func (s ConnectivityState) String() string {
	switch s {
	case ConnectivityConnected:
		return "CONNECTED"
	case ConnectivityDisconnected:
		return "DISCONNECTED"
	default:
		return "UNINITIALIZED"
	}
}

// DatabaseLabel is the value reported in the database field of /api/health.
func (s ConnectivityState) DatabaseLabel() string {
	if s == ConnectivityConnected {
		return "Connected"
	}
	return "Disconnected"
}

// Connectivity is the process-wide record of the database connection status.
// It is resolved at most once; readers never block.
type Connectivity struct {
	state atomic.Int32
	done  chan struct{}
}

func NewConnectivity() *Connectivity {
	return &Connectivity{done: make(chan struct{})}
}

// Load returns the current state.
func (c *Connectivity) Load() ConnectivityState {
	return ConnectivityState(c.state.Load())
}

// Resolve moves the cell out of ConnectivityUninitialized. Only the first call
// wins; it reports whether this call performed the transition.
func (c *Connectivity) Resolve(s ConnectivityState) bool {
	if s == ConnectivityUninitialized {
		return false
	}
	if !c.state.CompareAndSwap(int32(ConnectivityUninitialized), int32(s)) {
		return false
	}
	close(c.done)
	return true
}

// Done is closed once the state has been resolved.
func (c *Connectivity) Done() <-chan struct{} {
	return c.done
}
