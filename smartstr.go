// Package smartstr provides SmartString, a string value that stores
// short content inline (no allocation) and transparently promotes to a
// heap buffer when content outgrows the inline threshold. Demotion
// back to inline storage never happens implicitly; call TryIntoStack.
package smartstr

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rawbytedev/smartstr/pascal"
)

// DefaultCapacity is the default inline threshold in bytes.
const DefaultCapacity = 30

// ErrInvalidUTF16 means a UTF-16 input contains an unpaired surrogate.
var ErrInvalidUTF16 = errors.New("invalid utf-16")

// SmartString is a two-variant string: inline (content lives in a
// fixed buffer inside the value) or heap (content lives in a growable
// buffer). A mutation that would overflow the inline buffer first
// promotes the value to heap, then applies; recoverable failures
// (bad index or boundary) leave the value byte-for-byte unchanged and
// never change the variant.
//
// The zero value has threshold 0 and keeps all non-empty content on
// the heap; use New or FromString for the default threshold of 30.
//
// Assigning a SmartString copies the inline buffer but shares a
// heap buffer; use Clone when an independent copy is needed.
type SmartString struct {
	heap  bool
	buf   []byte        // heap content; meaningful only when heap
	stack pascal.String // inline content; its capacity is the threshold N
}

// New returns an empty inline SmartString with the default threshold.
func New() SmartString {
	return SmartString{stack: pascal.MustNew(DefaultCapacity)}
}

// WithThreshold returns an empty inline SmartString whose inline
// threshold is n bytes. n outside 0..=pascal.MaxCapacity fails with
// pascal.ErrCapacity.
func WithThreshold(n int) (SmartString, error) {
	p, err := pascal.New(n)
	if err != nil {
		return SmartString{}, err
	}
	return SmartString{stack: p}, nil
}

// WithCapacity returns an empty SmartString able to hold capacity
// bytes: inline when capacity fits the default threshold, heap
// otherwise.
func WithCapacity(capacity int) SmartString {
	if capacity <= DefaultCapacity {
		return New()
	}
	s := New()
	s.heap = true
	s.buf = make([]byte, 0, capacity)
	return s
}

// FromString builds a SmartString from s, choosing inline storage if s
// fits the default threshold and heap storage otherwise.
func FromString(s string) SmartString {
	out := New()
	out.PushString(s)
	return out
}

// FromStringThreshold is FromString with an explicit inline threshold.
func FromStringThreshold(s string, n int) (SmartString, error) {
	out, err := WithThreshold(n)
	if err != nil {
		return SmartString{}, err
	}
	out.PushString(s)
	return out, nil
}

// FromRune builds a SmartString holding the single rune r.
func FromRune(r rune) SmartString {
	out := New()
	out.PushRune(r)
	return out
}

// FromBytes validates b as UTF-8 and builds a heap-backed SmartString
// from it. Call TryIntoStack if inline storage is wanted.
func FromBytes(b []byte) (SmartString, error) {
	if err := pascal.ValidateUTF8(b); err != nil {
		return SmartString{}, err
	}
	return Heap(string(b)), nil
}

// FromUTF16 converts v with the standard UTF-16 to UTF-8 conversion
// (unpaired surrogates become U+FFFD) into a heap-backed SmartString.
func FromUTF16(v []uint16) SmartString {
	return Heap(string(utf16.Decode(v)))
}

// TryFromUTF16 is the strict form of FromUTF16: an unpaired surrogate
// fails with an error instead of being substituted.
func TryFromUTF16(v []uint16) (SmartString, error) {
	for i := 0; i < len(v); i++ {
		switch {
		case v[i] >= 0xD800 && v[i] < 0xDC00:
			if i+1 >= len(v) || v[i+1] < 0xDC00 || v[i+1] >= 0xE000 {
				return SmartString{}, fmt.Errorf("%w: unpaired surrogate at index %d", ErrInvalidUTF16, i)
			}
			i++
		case v[i] >= 0xDC00 && v[i] < 0xE000:
			return SmartString{}, fmt.Errorf("%w: unpaired surrogate at index %d", ErrInvalidUTF16, i)
		}
	}
	return FromUTF16(v), nil
}

// Heap builds an explicitly heap-backed SmartString with the default
// threshold, regardless of content length.
func Heap(s string) SmartString {
	out := New()
	out.heap = true
	out.buf = append(out.buf, s...)
	return out
}

// IsHeap reports whether content is currently heap-backed.
func (s *SmartString) IsHeap() bool { return s.heap }

// IsInline reports whether content currently lives in the inline buffer.
func (s *SmartString) IsInline() bool { return !s.heap }

// Threshold returns the inline threshold N in bytes.
func (s *SmartString) Threshold() int { return s.stack.Capacity() }

// Len returns the content length in bytes.
func (s *SmartString) Len() int {
	if s.heap {
		return len(s.buf)
	}
	return s.stack.Len()
}

// IsEmpty reports whether the content is empty.
func (s *SmartString) IsEmpty() bool { return s.Len() == 0 }

// Capacity returns the bytes the value can hold before its next
// allocation: the buffer capacity when heap, the threshold when inline.
func (s *SmartString) Capacity() int {
	if s.heap {
		return cap(s.buf)
	}
	return s.stack.Capacity()
}

// String returns a full copy of the content, whichever variant holds it.
func (s *SmartString) String() string {
	if s.heap {
		return string(s.buf)
	}
	return s.stack.String()
}

// Bytes returns a full copy of the content bytes.
func (s *SmartString) Bytes() []byte {
	if s.heap {
		return append([]byte(nil), s.buf...)
	}
	return s.stack.Bytes()
}

// Clone returns an independent copy; mutating it never affects s.
func (s *SmartString) Clone() SmartString {
	c := *s
	if s.heap {
		c.buf = append([]byte(nil), s.buf...)
	}
	return c
}

// Equal reports whether both values hold the same content, regardless
// of variant.
func (s *SmartString) Equal(o *SmartString) bool {
	return s.contentEqual(o.content())
}

// EqualString reports whether the content equals v.
func (s *SmartString) EqualString(v string) bool {
	return s.contentEqual(v)
}

func (s *SmartString) contentEqual(v string) bool {
	if s.heap {
		return string(s.buf) == v
	}
	return s.stack.EqualString(v)
}

// content returns the current bytes as a string without copying.
// Internal only: aliases the live buffer.
func (s *SmartString) content() string {
	if s.heap {
		return unsafeString(s.buf)
	}
	return s.stack.UnsafeString()
}

// IsCharBoundary reports whether idx sits between whole runes of the
// content.
func (s *SmartString) IsCharBoundary(idx int) bool {
	if !s.heap {
		return s.stack.IsCharBoundary(idx)
	}
	if idx == 0 || idx == len(s.buf) {
		return true
	}
	if idx < 0 || idx > len(s.buf) {
		return false
	}
	return utf8.RuneStart(s.buf[idx])
}

// toHeap promotes inline content into a heap buffer with room for
// extra additional bytes. No-op when already heap-backed.
func (s *SmartString) toHeap(extra int) {
	if s.heap {
		return
	}
	content := s.stack.UnsafeString()
	nb := make([]byte, len(content), len(content)+extra)
	copy(nb, content)
	s.buf = nb
	s.stack.Clear()
	s.heap = true
}

// ToHeap explicitly promotes to heap storage; content is unchanged.
func (s *SmartString) ToHeap() { s.toHeap(0) }

// TryIntoStack attempts the only demotion path: heap content moves
// back inline iff it fits the threshold. It reports whether the value
// is inline after the call. Content is unchanged either way.
func (s *SmartString) TryIntoStack() bool {
	if !s.heap {
		return true
	}
	if len(s.buf) > s.stack.Capacity() {
		return false
	}
	s.stack.Clear()
	if err := s.stack.TryPushString(string(s.buf)); err != nil {
		panic("smartstr: content within threshold must fit inline")
	}
	s.heap = false
	s.buf = nil
	return true
}

// PushString appends v, promoting to heap if the inline buffer would
// overflow. Never fails.
func (s *SmartString) PushString(v string) {
	if s.heap {
		s.buf = append(s.buf, v...)
		return
	}
	if s.stack.TryPushString(v) == nil {
		return
	}
	s.toHeap(len(v))
	s.buf = append(s.buf, v...)
}

// PushRune appends a single rune with the same promotion rule.
func (s *SmartString) PushRune(r rune) {
	if s.heap {
		s.buf = utf8.AppendRune(s.buf, r)
		return
	}
	if s.stack.TryPushRune(r) == nil {
		return
	}
	s.toHeap(utf8.UTFMax)
	s.buf = utf8.AppendRune(s.buf, r)
}

// Reserve ensures room for at least additional more bytes, promoting
// proactively if the headroom cannot fit inline.
func (s *SmartString) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	if s.heap {
		s.buf = slices.Grow(s.buf, additional)
		return
	}
	if s.stack.Capacity()-s.stack.Len() < additional {
		s.toHeap(additional)
	}
}

// ReserveExact is Reserve without amortized over-allocation on the
// heap path.
func (s *SmartString) ReserveExact(additional int) {
	if additional <= 0 {
		return
	}
	if s.heap {
		if cap(s.buf)-len(s.buf) < additional {
			nb := make([]byte, len(s.buf), len(s.buf)+additional)
			copy(nb, s.buf)
			s.buf = nb
		}
		return
	}
	if s.stack.Capacity()-s.stack.Len() < additional {
		s.toHeap(additional)
	}
}

// ShrinkToFit drops excess heap capacity. It does not demote; use
// TryIntoStack for that.
func (s *SmartString) ShrinkToFit() {
	if s.heap && cap(s.buf) > len(s.buf) {
		s.buf = append([]byte(nil), s.buf...)
	}
}

// Truncate shortens the content to newLen bytes without changing the
// variant. newLen beyond the length or off a rune boundary is a
// precondition violation and panics.
func (s *SmartString) Truncate(newLen int) {
	if !s.heap {
		s.stack.Truncate(newLen)
		return
	}
	if newLen < 0 || newLen > len(s.buf) {
		panic("smartstr: truncate beyond content length")
	}
	if !s.IsCharBoundary(newLen) {
		panic("smartstr: truncate index is not a char boundary")
	}
	s.buf = s.buf[:newLen]
}

// Pop removes and returns the last rune; false when empty. The
// variant is preserved.
func (s *SmartString) Pop() (rune, bool) {
	if !s.heap {
		return s.stack.Pop()
	}
	if len(s.buf) == 0 {
		return 0, false
	}
	r, size := utf8.DecodeLastRune(s.buf)
	s.buf = s.buf[:len(s.buf)-size]
	return r, true
}

// Clear empties the content. A heap value stays heap-backed.
func (s *SmartString) Clear() {
	if s.heap {
		s.buf = s.buf[:0]
		return
	}
	s.stack.Clear()
}

// InsertString inserts v at byte index idx. A bad index or boundary is
// a precondition violation and panics; a capacity overflow promotes to
// heap and succeeds. TryInsertString is the recoverable counterpart.
func (s *SmartString) InsertString(idx int, v string) {
	if err := s.TryInsertString(idx, v); err != nil {
		panic("smartstr: insert failed: " + err.Error())
	}
}

// InsertRune inserts a single rune at byte index idx with InsertString
// semantics.
func (s *SmartString) InsertRune(idx int, r rune) {
	if err := s.TryInsertRune(idx, r); err != nil {
		panic("smartstr: insert failed: " + err.Error())
	}
}

// TryInsertString inserts v at byte index idx. Index and boundary
// failures come back as errors with the value untouched; a capacity
// overflow on the inline variant promotes to heap first and then
// succeeds, so promotion plus insert is atomic for the caller.
func (s *SmartString) TryInsertString(idx int, v string) error {
	if s.heap {
		if err := s.checkHeapIndex(idx); err != nil {
			return err
		}
		s.buf = slices.Insert(s.buf, idx, []byte(v)...)
		return nil
	}
	err := s.stack.TryInsertString(idx, v)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pascal.ErrTooLong) {
		return err
	}
	s.toHeap(len(v))
	s.buf = slices.Insert(s.buf, idx, []byte(v)...)
	return nil
}

// TryInsertRune inserts a single rune at byte index idx.
func (s *SmartString) TryInsertRune(idx int, r rune) error {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return s.TryInsertString(idx, string(tmp[:n]))
}

// TryInsertStringTruncated inserts at idx with best-effort semantics
// on the inline variant: the longest whole-rune prefix that fits is
// inserted without promotion and the remainder is returned. On the
// heap variant insertion is complete and the remainder is always "".
// Index and boundary failures come back as errors, value untouched.
func (s *SmartString) TryInsertStringTruncated(idx int, v string) (string, error) {
	if s.heap {
		if err := s.checkHeapIndex(idx); err != nil {
			return "", err
		}
		s.buf = slices.Insert(s.buf, idx, []byte(v)...)
		return "", nil
	}
	return s.stack.TryInsertStringTruncated(idx, v)
}

// InsertStringTruncated is TryInsertStringTruncated, panicking on a
// bad index or boundary.
func (s *SmartString) InsertStringTruncated(idx int, v string) string {
	rem, err := s.TryInsertStringTruncated(idx, v)
	if err != nil {
		panic("smartstr: insert failed: " + err.Error())
	}
	return rem
}

// Remove removes and returns the rune at byte index idx, panicking on
// a bad index or boundary. The variant is preserved.
func (s *SmartString) Remove(idx int) rune {
	r, err := s.TryRemove(idx)
	if err != nil {
		panic("smartstr: remove failed: " + err.Error())
	}
	return r
}

// TryRemove removes and returns the rune at byte index idx.
func (s *SmartString) TryRemove(idx int) (rune, error) {
	if !s.heap {
		return s.stack.TryRemove(idx)
	}
	if idx < 0 || idx >= len(s.buf) {
		return 0, &pascal.OutOfBoundsError{Index: idx, Len: len(s.buf)}
	}
	if !utf8.RuneStart(s.buf[idx]) {
		return 0, &pascal.NotCharBoundaryError{Index: idx}
	}
	r, size := utf8.DecodeRune(s.buf[idx:])
	s.buf = slices.Delete(s.buf, idx, idx+size)
	return r, nil
}

// Retain keeps only the runes for which f returns true, preserving
// their order. The value is promoted to heap first, like the other
// range-wise mutators.
func (s *SmartString) Retain(f func(rune) bool) {
	s.toHeap(0)
	kept := s.buf[:0]
	for i := 0; i < len(s.buf); {
		r, size := utf8.DecodeRune(s.buf[i:])
		if f(r) {
			kept = append(kept, s.buf[i:i+size]...)
		}
		i += size
	}
	s.buf = kept
}

// Drain removes the byte range [begin, end) and returns the removed
// content, promoting to heap first. A bad range is a precondition
// violation and panics; TryDrain is the recoverable counterpart.
func (s *SmartString) Drain(begin, end int) string {
	out, err := s.TryDrain(begin, end)
	if err != nil {
		panic("smartstr: drain failed: " + err.Error())
	}
	return out
}

// TryDrain removes the byte range [begin, end) and returns the removed
// content. Range failures come back as errors with the value and its
// variant untouched; success always leaves the value heap-backed.
func (s *SmartString) TryDrain(begin, end int) (string, error) {
	if err := s.checkRange(begin, end); err != nil {
		return "", err
	}
	s.toHeap(0)
	out := string(s.buf[begin:end])
	s.buf = slices.Delete(s.buf, begin, end)
	return out, nil
}

// ReplaceRange replaces the byte range [begin, end) with v, promoting
// to heap first. A bad range is a precondition violation and panics;
// TryReplaceRange is the recoverable counterpart.
func (s *SmartString) ReplaceRange(begin, end int, v string) {
	if err := s.TryReplaceRange(begin, end, v); err != nil {
		panic("smartstr: replace_range failed: " + err.Error())
	}
}

// TryReplaceRange replaces the byte range [begin, end) with v. Range
// failures come back as errors with the value and its variant
// untouched; success always leaves the value heap-backed.
func (s *SmartString) TryReplaceRange(begin, end int, v string) error {
	if err := s.checkRange(begin, end); err != nil {
		return err
	}
	s.toHeap(len(v))
	s.buf = slices.Replace(s.buf, begin, end, []byte(v)...)
	return nil
}

// checkRange validates [begin, end) as a well-ordered range on rune
// boundaries of the current content.
func (s *SmartString) checkRange(begin, end int) error {
	if err := s.checkIndex(begin); err != nil {
		return err
	}
	if err := s.checkIndex(end); err != nil {
		return err
	}
	if begin > end {
		return &pascal.OutOfBoundsError{Index: begin, Len: end}
	}
	return nil
}

// SplitOff splits the content at byte index at: the receiver keeps the
// prefix (promoted to heap) and the returned value holds the suffix,
// demoted to inline storage when it fits, since split fragments are
// commonly short. A bad index or boundary panics.
func (s *SmartString) SplitOff(at int) SmartString {
	if err := s.checkIndex(at); err != nil {
		panic("smartstr: split_off failed: " + err.Error())
	}
	s.toHeap(0)
	suffix := Heap(string(s.buf[at:]))
	suffix.stack = pascal.MustNew(s.Threshold())
	suffix.TryIntoStack()
	s.buf = s.buf[:at]
	return suffix
}

func (s *SmartString) checkIndex(idx int) error {
	n := s.Len()
	if idx < 0 || idx > n {
		return &pascal.OutOfBoundsError{Index: idx, Len: n}
	}
	if !s.IsCharBoundary(idx) {
		return &pascal.NotCharBoundaryError{Index: idx}
	}
	return nil
}

func (s *SmartString) checkHeapIndex(idx int) error {
	if idx < 0 || idx > len(s.buf) {
		return &pascal.OutOfBoundsError{Index: idx, Len: len(s.buf)}
	}
	if idx < len(s.buf) && !utf8.RuneStart(s.buf[idx]) {
		return &pascal.NotCharBoundaryError{Index: idx}
	}
	return nil
}

// Write appends b after validating it as UTF-8, promoting as needed.
// Implements io.Writer so a SmartString is a fmt.Fprintf target.
func (s *SmartString) Write(b []byte) (int, error) {
	if err := pascal.ValidateUTF8(b); err != nil {
		return 0, err
	}
	s.PushString(string(b))
	return len(b), nil
}

// WriteString appends v; never fails.
func (s *SmartString) WriteString(v string) (int, error) {
	s.PushString(v)
	return len(v), nil
}
