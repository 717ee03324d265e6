// Package tree implements the arena-backed element store described by the
// core document model: every scalar string is a slice into one append-only
// byte arena, and every node is a fixed-size record in a dense vector,
// referencing siblings and children by integer id rather than by pointer.
package tree

// Arena is a growable, append-only byte buffer. Strings are appended
// end-to-end and, once written, a byte is never rewritten. Offsets are
// stable across growth because callers never retain slices into the
// buffer across an append — only (offset, length) pairs, resolved through
// String on demand.
type Arena struct {
	buf []byte
}

// NewArena reserves capacity for an input of the given size, mirroring the
// growth policy that sizes the arena to the input before parsing begins.
func NewArena(sizeHint int) *Arena {
	return &Arena{buf: make([]byte, 0, sizeHint)}
}

// session is a transient arena write window used to assemble a scalar
// piecewise (for quoted and block scalars with escape processing) before
// committing a final, NUL-terminated length.
type session struct {
	a     *Arena
	start int
}

// StartSession records the current arena length as the start of a new
// scalar under construction.
func (a *Arena) StartSession() session {
	return session{a: a, start: len(a.buf)}
}

// AddToSession appends bytes to the arena as part of the open session.
func (s session) AddToSession(b []byte) session {
	s.a.buf = append(s.a.buf, b...)
	return s
}

// AddByteToSession appends a single byte as part of the open session.
func (s session) AddByteToSession(b byte) session {
	s.a.buf = append(s.a.buf, b)
	return s
}

// CommitSession appends a terminating NUL and returns the final
// (offset, length) range, length including the terminator, per the
// arena's NUL-terminated string convention.
func (s session) CommitSession() (offset, length uint32) {
	offset = uint32(s.start)
	s.a.buf = append(s.a.buf, 0)
	length = uint32(len(s.a.buf)) - offset
	return offset, length
}

// Put is a convenience wrapper around a single-shot session commit, used
// when a scalar is already fully materialized (no escape processing).
func (a *Arena) Put(b []byte) (offset, length uint32) {
	s := a.StartSession()
	s = s.AddToSession(b)
	return s.CommitSession()
}

// String returns the string view for a committed (offset, length) range.
// length includes the NUL terminator; the terminator is stripped from the
// returned string.
func (a *Arena) String(offset, length uint32) string {
	if length == 0 {
		return ""
	}
	return string(a.buf[offset : offset+length-1])
}

// Len reports the current size of the arena, used for memory-footprint
// reporting (Document.Stats).
func (a *Arena) Len() int {
	return len(a.buf)
}
