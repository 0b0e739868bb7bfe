// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations: descriptors, the tagged target variant,
// reserved-set predicates and visitors.

package api

// Handle is anything exposing an OS descriptor, such as *os.File or a
// *net.TCPConn's file. Note that (*os.File).Fd switches the file to blocking
// mode.
type Handle interface {
	Fd() uintptr
}

type targetKind uint8

const (
	targetNone targetKind = iota
	targetRaw
	targetHandle
)

// Target is the descriptor argument accepted by fdextra operations: either a
// raw descriptor number or a Handle. It is resolved once, at the boundary.
type Target struct {
	kind   targetKind
	fd     int
	handle Handle
}

// Raw wraps a raw descriptor number.
func Raw(fd int) Target {
	return Target{kind: targetRaw, fd: fd}
}

// FromHandle wraps a descriptor-bearing handle.
func FromHandle(h Handle) Target {
	return Target{kind: targetHandle, handle: h}
}

// IsHandle reports whether the target wraps a Handle.
func (t Target) IsHandle() bool { return t.kind == targetHandle }

// Handle returns the wrapped handle, or nil for raw targets.
func (t Target) Handle() Handle { return t.handle }

// Descriptor resolves the target to a descriptor number.
func (t Target) Descriptor(op string) (int, error) {
	switch t.kind {
	case targetRaw:
		if t.fd < 0 {
			return -1, InvalidArgument(op, "negative descriptor %d", t.fd)
		}
		return t.fd, nil
	case targetHandle:
		if t.handle == nil {
			return -1, InvalidArgument(op, "nil handle")
		}
		fd := int(t.handle.Fd())
		if fd < 0 {
			// Closed *os.File reports ^uintptr(0).
			return -1, InvalidArgument(op, "handle has no open descriptor")
		}
		return fd, nil
	default:
		return -1, InvalidArgument(op, "empty target")
	}
}

// ReservedSet reports descriptors the host keeps for itself. Reserved
// descriptors are never closed or visited by bulk operations.
type ReservedSet func(fd int) bool

// Visitor is invoked once per qualifying descriptor by a walk. A non-nil
// error aborts the walk.
type Visitor func(fd int) error
