package pascal

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacity means a requested capacity is outside 0..=MaxCapacity.
	ErrCapacity = errors.New("capacity out of range")
	// ErrTooLong means a write would exceed the fixed capacity. The
	// receiver is never modified when this is returned.
	ErrTooLong = errors.New("string too long")
	// ErrInvalidUTF8 means raw bytes are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8")
)

// OutOfBoundsError reports an index beyond the current content length.
type OutOfBoundsError struct {
	Index int
	Len   int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("index out of bounds: idx=%d, len=%d", e.Index, e.Len)
}

// NotCharBoundaryError reports an index that splits a multi-byte rune.
type NotCharBoundaryError struct {
	Index int
}

func (e *NotCharBoundaryError) Error() string {
	return fmt.Sprintf("index is not a char boundary: idx=%d", e.Index)
}

// InvalidUTF8Error reports the byte offset of the first invalid sequence.
type InvalidUTF8Error struct {
	Offset int
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("invalid utf-8 sequence at byte %d", e.Offset)
}

func (e *InvalidUTF8Error) Unwrap() error { return ErrInvalidUTF8 }
