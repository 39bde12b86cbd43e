package pascal

import "unsafe"

// UnsafeString returns the occupied prefix as a string aliasing the
// internal buffer, without copying.
//
// WARNING: the result shares memory with p. Mutating p afterwards
// changes the string's bytes in place; do not retain the result across
// mutations and do not use it as a map key that outlives p. Use
// String for a safe copy.
func (p *String) UnsafeString() string {
	if p.n == 0 {
		return ""
	}
	return unsafe.String(&p.buf[0], int(p.n))
}
