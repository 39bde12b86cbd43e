package pascal

import "fmt"

// FormatInto renders a formatted value into a new String of the given
// capacity. Rendering that does not fit fails with ErrTooLong and the
// partial value is discarded.
func FormatInto(capacity int, format string, args ...any) (String, error) {
	p, err := New(capacity)
	if err != nil {
		return String{}, err
	}
	if _, err := fmt.Fprintf(&p, format, args...); err != nil {
		return String{}, err
	}
	return p, nil
}

// DisplayIsEmpty reports whether rendering v with %v produces no bytes,
// without retaining the rendering. Any non-empty output overflows a
// zero-capacity sink.
func DisplayIsEmpty(v any) bool {
	var sink String // zero value: capacity 0
	_, err := fmt.Fprintf(&sink, "%v", v)
	return err == nil
}
