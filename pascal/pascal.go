// Package pascal provides a fixed-capacity string stored entirely
// inline in a value, with a length-prefixed layout. The occupied
// prefix of the buffer is always valid UTF-8 and never exceeds the
// capacity chosen at construction time (at most MaxCapacity bytes).
//
// String inputs are expected to be valid UTF-8, as produced by normal
// Go string handling; byte-slice entry points validate.
package pascal

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxCapacity is the largest capacity a String can be built with.
// The length prefix is a single byte.
const MaxCapacity = 255

// String is a fixed-capacity inline string. The zero value is an empty
// string with capacity 0; use New for a useful capacity.
//
// String is plain data: assignment copies the whole value, and the
// copy mutates independently. Do not compare values with ==, since the
// capacity byte takes part in it; use Equal or EqualString.
type String struct {
	n   uint8
	cap uint8
	buf [MaxCapacity]byte
}

// New returns an empty String with the given capacity.
// Capacities outside 0..=MaxCapacity fail with ErrCapacity.
func New(capacity int) (String, error) {
	if capacity < 0 || capacity > MaxCapacity {
		return String{}, fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}
	return String{cap: uint8(capacity)}, nil
}

// MustNew is like New but panics on an invalid capacity.
func MustNew(capacity int) String {
	p, err := New(capacity)
	if err != nil {
		panic("pascal: " + err.Error())
	}
	return p
}

// FromString builds a String holding s. It fails with ErrTooLong if s
// does not fit; nothing is partially written.
func FromString(s string, capacity int) (String, error) {
	p, err := New(capacity)
	if err != nil {
		return String{}, err
	}
	if err := p.TryPushString(s); err != nil {
		return String{}, err
	}
	return p, nil
}

// FromBytes validates b as UTF-8 and then builds a String holding it.
// Invalid bytes fail with an InvalidUTF8Error, oversized content with
// ErrTooLong.
func FromBytes(b []byte, capacity int) (String, error) {
	if err := ValidateUTF8(b); err != nil {
		return String{}, err
	}
	return FromString(string(b), capacity)
}

// FromRune builds a String holding the single rune r. Invalid runes
// are encoded as U+FFFD, matching Go string conversion.
func FromRune(r rune, capacity int) (String, error) {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return FromString(string(tmp[:n]), capacity)
}

// FromStringTruncated builds a String from as many whole runes of s as
// fit within capacity, silently dropping the remainder. A multi-byte
// rune is never split. Panics only on an invalid capacity.
func FromStringTruncated(s string, capacity int) String {
	p := MustNew(capacity)
	p.PushStringTruncated(s)
	return p
}

// Capacity returns the fixed capacity in bytes.
func (p *String) Capacity() int { return int(p.cap) }

// Len returns the content length in bytes.
func (p *String) Len() int { return int(p.n) }

// IsEmpty reports whether the content is empty.
func (p *String) IsEmpty() bool { return p.n == 0 }

// String returns a copy of the content. The result is an ordinary Go
// string: comparisons, ordering and map hashing on it agree with any
// other string of the same content, regardless of capacity.
func (p *String) String() string { return string(p.buf[:p.n]) }

// Bytes returns a copy of the content bytes.
func (p *String) Bytes() []byte {
	return append([]byte(nil), p.buf[:p.n]...)
}

// Equal reports whether both values hold the same content, ignoring
// capacity.
func (p *String) Equal(o *String) bool {
	return bytes.Equal(p.buf[:p.n], o.buf[:o.n])
}

// EqualString reports whether the content equals s.
func (p *String) EqualString(s string) bool {
	return string(p.buf[:p.n]) == s
}

// Compare orders by content exactly like strings.Compare.
func (p *String) Compare(o *String) int {
	return bytes.Compare(p.buf[:p.n], o.buf[:o.n])
}

// CompareString orders the content against s.
func (p *String) CompareString(s string) int {
	return strings.Compare(p.String(), s)
}

// IsCharBoundary reports whether idx sits between whole runes of the
// content (0 and Len() are boundaries).
func (p *String) IsCharBoundary(idx int) bool {
	if idx == 0 || idx == int(p.n) {
		return true
	}
	if idx < 0 || idx > int(p.n) {
		return false
	}
	return utf8.RuneStart(p.buf[idx])
}

// TryPushString appends s. If the result would exceed the capacity it
// fails with ErrTooLong and the content is untouched; no prefix of s
// is ever written.
func (p *String) TryPushString(s string) error {
	newLen := int(p.n) + len(s)
	if newLen > int(p.cap) {
		return ErrTooLong
	}
	copy(p.buf[p.n:], s)
	p.n = uint8(newLen)
	return nil
}

// TryPushRune appends a single rune, all-or-nothing like TryPushString.
func (p *String) TryPushRune(r rune) error {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return p.tryPushBytes(tmp[:n])
}

// MustPushString appends s, panicking if the capacity would be
// exceeded. This mirrors the "push never fails" feel of growable
// strings and is an explicit opt-in; use TryPushString for a
// recoverable error.
func (p *String) MustPushString(s string) {
	if err := p.TryPushString(s); err != nil {
		panic("pascal: capacity exceeded")
	}
}

// MustPushRune appends r, panicking if the capacity would be exceeded.
func (p *String) MustPushRune(r rune) {
	if err := p.TryPushRune(r); err != nil {
		panic("pascal: capacity exceeded")
	}
}

// PushStringTruncated appends the longest whole-rune prefix of s that
// fits and returns the unconsumed remainder (possibly empty). It never
// fails.
func (p *String) PushStringTruncated(s string) string {
	if p.TryPushString(s) == nil {
		return ""
	}
	pos := floorCharBoundary(s, int(p.cap)-int(p.n))
	// The prefix ends on a rune boundary and fits by construction.
	if err := p.TryPushString(s[:pos]); err != nil {
		panic("pascal: truncated prefix must fit")
	}
	return s[pos:]
}

// TryInsertString inserts s at byte index idx, shifting the tail right.
// Failure modes, each leaving the content untouched:
//   - idx beyond the current length: *OutOfBoundsError
//   - idx inside a multi-byte rune: *NotCharBoundaryError
//   - result would exceed capacity: ErrTooLong
func (p *String) TryInsertString(idx int, s string) error {
	length := int(p.n)
	if idx < 0 || idx > length {
		return &OutOfBoundsError{Index: idx, Len: length}
	}
	if !p.IsCharBoundary(idx) {
		return &NotCharBoundaryError{Index: idx}
	}
	newLen := length + len(s)
	if newLen > int(p.cap) {
		return ErrTooLong
	}
	copy(p.buf[idx+len(s):newLen], p.buf[idx:length])
	copy(p.buf[idx:], s)
	p.n = uint8(newLen)
	return nil
}

// TryInsertRune inserts a single rune at byte index idx.
func (p *String) TryInsertRune(idx int, r rune) error {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return p.TryInsertString(idx, string(tmp[:n]))
}

// TryInsertStringTruncated inserts at idx like TryInsertString, but
// instead of failing on overflow it inserts the longest whole-rune
// prefix that fits and returns the unconsumed remainder. Index and
// boundary errors are still returned, with the content untouched.
func (p *String) TryInsertStringTruncated(idx int, s string) (string, error) {
	length := int(p.n)
	if idx < 0 || idx > length {
		return "", &OutOfBoundsError{Index: idx, Len: length}
	}
	if !p.IsCharBoundary(idx) {
		return "", &NotCharBoundaryError{Index: idx}
	}
	available := int(p.cap) - length
	if available >= len(s) {
		return "", p.TryInsertString(idx, s)
	}
	pos := floorCharBoundary(s, available)
	if err := p.TryInsertString(idx, s[:pos]); err != nil {
		return "", err
	}
	return s[pos:], nil
}

// MustInsertString inserts s at idx, panicking on any failure.
func (p *String) MustInsertString(idx int, s string) {
	if err := p.TryInsertString(idx, s); err != nil {
		panic("pascal: insert failed: " + err.Error())
	}
}

// MustInsertRune inserts r at idx, panicking on any failure.
func (p *String) MustInsertRune(idx int, r rune) {
	if err := p.TryInsertRune(idx, r); err != nil {
		panic("pascal: insert failed: " + err.Error())
	}
}

// Remove removes and returns the rune starting at byte index idx.
// An out-of-bounds or non-boundary index is a precondition violation
// and panics; TryRemove is the recoverable counterpart.
func (p *String) Remove(idx int) rune {
	r, err := p.TryRemove(idx)
	if err != nil {
		panic("pascal: remove failed: " + err.Error())
	}
	return r
}

// TryRemove removes and returns the rune starting at byte index idx.
func (p *String) TryRemove(idx int) (rune, error) {
	length := int(p.n)
	if idx < 0 || idx >= length {
		return 0, &OutOfBoundsError{Index: idx, Len: length}
	}
	if !p.IsCharBoundary(idx) {
		return 0, &NotCharBoundaryError{Index: idx}
	}
	r, size := utf8.DecodeRune(p.buf[idx:length])
	copy(p.buf[idx:], p.buf[idx+size:length])
	newLen := length - size
	// Keep vacated bytes deterministic; helps debugging and tests.
	clear(p.buf[newLen:length])
	p.n = uint8(newLen)
	return r, nil
}

// Truncate shortens the content to newLen bytes. newLen must be at
// most Len() and on a rune boundary; violating either is a
// precondition violation and panics.
func (p *String) Truncate(newLen int) {
	if newLen < 0 || newLen > int(p.n) {
		panic("pascal: truncate beyond content length")
	}
	if !p.IsCharBoundary(newLen) {
		panic("pascal: truncate index is not a char boundary")
	}
	p.n = uint8(newLen)
}

// Pop removes and returns the last rune. The second result is false if
// the content is empty.
func (p *String) Pop() (rune, bool) {
	if p.n == 0 {
		return 0, false
	}
	r, size := utf8.DecodeLastRune(p.buf[:p.n])
	p.n -= uint8(size)
	return r, true
}

// Clear resets the length to 0 in O(1). Trailing bytes are left as-is.
func (p *String) Clear() { p.n = 0 }

func (p *String) tryPushBytes(b []byte) error {
	newLen := int(p.n) + len(b)
	if newLen > int(p.cap) {
		return ErrTooLong
	}
	copy(p.buf[p.n:], b)
	p.n = uint8(newLen)
	return nil
}

// Write appends b, validating it as UTF-8 first. The write is
// all-or-nothing: on any error no bytes are consumed. This makes
// *String a fmt.Fprintf target with fixed-buffer semantics. The
// guarantee is per Write call: fmt may issue several calls for one
// format string, so segments written before the failing call stay;
// FormatInto discards the partial value instead.
func (p *String) Write(b []byte) (int, error) {
	if off := invalidOffset(b); off >= 0 {
		return 0, &InvalidUTF8Error{Offset: off}
	}
	if err := p.tryPushBytes(b); err != nil {
		return 0, err
	}
	return len(b), nil
}

// WriteString appends s with the same all-or-nothing contract as Write.
func (p *String) WriteString(s string) (int, error) {
	if err := p.TryPushString(s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// floorCharBoundary returns the largest byte offset <= max that does
// not split a rune of s. Walks by decoded rune, not raw byte.
func floorCharBoundary(s string, max int) int {
	if max >= len(s) {
		return len(s)
	}
	n := 0
	for n < len(s) {
		_, size := utf8.DecodeRuneInString(s[n:])
		if n+size > max {
			break
		}
		n += size
	}
	return n
}

// ValidateUTF8 returns an *InvalidUTF8Error describing the first bad
// sequence in b, or nil when b is valid UTF-8.
func ValidateUTF8(b []byte) error {
	if off := invalidOffset(b); off >= 0 {
		return &InvalidUTF8Error{Offset: off}
	}
	return nil
}

// invalidOffset returns the offset of the first invalid UTF-8 sequence
// in b, or -1 if b is valid.
func invalidOffset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
