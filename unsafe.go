package smartstr

import "unsafe"

// unsafeString aliases b as a string without copying. Internal: the
// result is only valid while b is not mutated.
func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// UnsafeString returns the current content as a string aliasing the
// live buffer, without copying.
//
// WARNING: the result shares memory with s. Any later mutation of s
// changes (or invalidates) the string's bytes; do not retain it across
// mutations. Use String for a safe copy.
func (s *SmartString) UnsafeString() string {
	return s.content()
}
