package formatter

import (
	"os"

	"github.com/petermattis/goid"
)

// Identity reports the process and thread of the logging call.
type Identity interface {
	PID() int
	TID() uint64
}

// RuntimeIdentity reads the current process id and goroutine id.
type RuntimeIdentity struct{}

// PID returns the current process id.
func (RuntimeIdentity) PID() int {
	return os.Getpid()
}

// TID returns the id of the calling goroutine.
func (RuntimeIdentity) TID() uint64 {
	return uint64(goid.Get())
}
