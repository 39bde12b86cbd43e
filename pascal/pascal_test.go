package pascal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapacityBounds(t *testing.T) {
	p, err := New(0)
	require.NoError(t, err)
	require.Equal(t, 0, p.Capacity())

	p, err = New(MaxCapacity)
	require.NoError(t, err)
	require.Equal(t, 255, p.Capacity())

	_, err = New(256)
	require.ErrorIs(t, err, ErrCapacity)
	_, err = New(-1)
	require.ErrorIs(t, err, ErrCapacity)

	require.Panics(t, func() { MustNew(300) })
}

func TestFromStringRoundTrip(t *testing.T) {
	p, err := FromString("abc", 4)
	require.NoError(t, err)
	assert.Equal(t, "abc", p.String())
	assert.Equal(t, 3, p.Len())
	assert.False(t, p.IsEmpty())
	assert.Equal(t, []byte("abc"), p.Bytes())
}

func TestFromStringTooLongRejectsWholesale(t *testing.T) {
	// "€" is 3 bytes, so "ab€" is 5 bytes against capacity 4.
	_, err := FromString("ab€", 4)
	require.ErrorIs(t, err, ErrTooLong)
}

func TestFromBytes(t *testing.T) {
	p, err := FromBytes([]byte("ab"), 4)
	require.NoError(t, err)
	assert.Equal(t, "ab", p.String())

	_, err = FromBytes([]byte{0xff}, 8)
	require.ErrorIs(t, err, ErrInvalidUTF8)
	var utf8Err *InvalidUTF8Error
	require.ErrorAs(t, err, &utf8Err)
	assert.Equal(t, 0, utf8Err.Offset)

	// Validation happens before the length check.
	_, err = FromBytes([]byte{'a', 'b', 0xff, 'c'}, 2)
	require.ErrorIs(t, err, ErrInvalidUTF8)
	require.ErrorAs(t, err, &utf8Err)
	assert.Equal(t, 2, utf8Err.Offset)

	_, err = FromBytes([]byte("abc"), 2)
	require.ErrorIs(t, err, ErrTooLong)
}

func TestFromRune(t *testing.T) {
	p, err := FromRune('€', 4)
	require.NoError(t, err)
	assert.Equal(t, "€", p.String())

	_, err = FromRune('€', 2)
	require.ErrorIs(t, err, ErrTooLong)
}

func TestFromStringTruncatedRespectsBoundary(t *testing.T) {
	// "€ab" is 3+1+1 bytes; capacity 4 keeps "€a", never a split rune.
	p := FromStringTruncated("€ab", 4)
	assert.Equal(t, "€a", p.String())
	assert.Equal(t, 4, p.Len())

	p = FromStringTruncated("hello", 0)
	assert.Equal(t, "", p.String())
}

func TestTryPushStringTooLongDoesNotModify(t *testing.T) {
	p, err := FromString("ab", 4)
	require.NoError(t, err)

	err = p.TryPushString("cde")
	require.ErrorIs(t, err, ErrTooLong)
	assert.Equal(t, "ab", p.String())
}

func TestTryPushRuneTooLongDoesNotModify(t *testing.T) {
	p := MustNew(3)
	require.NoError(t, p.TryPushRune('€'))
	assert.Equal(t, "€", p.String())

	err := p.TryPushRune('a')
	require.ErrorIs(t, err, ErrTooLong)
	assert.Equal(t, "€", p.String())
}

func TestPushStringTruncatedReturnsRemainder(t *testing.T) {
	p := MustNew(4)
	rem := p.PushStringTruncated("€ab")
	assert.Equal(t, "€a", p.String())
	assert.Equal(t, "b", rem)

	rem = p.PushStringTruncated("xyz")
	assert.Equal(t, "€a", p.String())
	assert.Equal(t, "xyz", rem)
}

func TestMustPushPanicsOnOverflow(t *testing.T) {
	require.Panics(t, func() {
		p := MustNew(4)
		p.MustPushString("abcde")
	})
	require.NotPanics(t, func() {
		p := MustNew(4)
		p.MustPushString("abcd")
		p.MustPushRune('e')
	})
}

func TestInsertAndRemoveUnicodeBoundaries(t *testing.T) {
	p, err := FromString("ab", 8)
	require.NoError(t, err)

	p.MustInsertString(1, "€")
	assert.Equal(t, "a€b", p.String())

	removed := p.Remove(1)
	assert.Equal(t, '€', removed)
	assert.Equal(t, "ab", p.String())
}

func TestTryInsertStringTooLongDoesNotModify(t *testing.T) {
	p, err := FromString("ab", 4)
	require.NoError(t, err)

	err = p.TryInsertString(1, "€") // would become 5 bytes
	require.ErrorIs(t, err, ErrTooLong)
	assert.Equal(t, "ab", p.String())
}

func TestTryInsertIndexErrors(t *testing.T) {
	p, err := FromString("a€b", 8)
	require.NoError(t, err)

	err = p.TryInsertString(9, "x")
	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, 9, oob.Index)
	assert.Equal(t, 5, oob.Len)

	err = p.TryInsertString(2, "x") // inside the euro sign
	var ncb *NotCharBoundaryError
	require.ErrorAs(t, err, &ncb)
	assert.Equal(t, 2, ncb.Index)

	assert.Equal(t, "a€b", p.String())

	require.Panics(t, func() { p.MustInsertString(2, "x") })
	require.Panics(t, func() { p.MustInsertRune(9, 'x') })
}

func TestTryInsertStringTruncated(t *testing.T) {
	p, err := FromString("ab", 4)
	require.NoError(t, err)

	rem, err := p.TryInsertStringTruncated(1, "cde")
	require.NoError(t, err)
	assert.Equal(t, "acdb", p.String())
	assert.Equal(t, "e", rem)

	// Index errors still recoverable, value untouched.
	_, err = p.TryInsertStringTruncated(9, "x")
	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, "acdb", p.String())
}

func TestTryInsertStringTruncatedKeepsRuneWhole(t *testing.T) {
	p, err := FromString("ab", 4)
	require.NoError(t, err)

	// 2 bytes available; "€" needs 3 so nothing of it fits.
	rem, err := p.TryInsertStringTruncated(1, "€")
	require.NoError(t, err)
	assert.Equal(t, "ab", p.String())
	assert.Equal(t, "€", rem)
}

func TestTryRemoveErrors(t *testing.T) {
	p, err := FromString("a€b", 8)
	require.NoError(t, err)

	_, err = p.TryRemove(5)
	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)

	_, err = p.TryRemove(2)
	var ncb *NotCharBoundaryError
	require.ErrorAs(t, err, &ncb)

	assert.Equal(t, "a€b", p.String())

	r, err := p.TryRemove(1)
	require.NoError(t, err)
	assert.Equal(t, '€', r)
	assert.Equal(t, "ab", p.String())

	require.Panics(t, func() { p.Remove(7) })
}

func TestTruncate(t *testing.T) {
	p, err := FromString("€a", 4)
	require.NoError(t, err)

	p.Truncate(p.Len()) // no-op
	assert.Equal(t, "€a", p.String())

	p.Truncate(3)
	assert.Equal(t, "€", p.String())

	require.Panics(t, func() {
		q, _ := FromString("€a", 4)
		q.Truncate(1) // inside the euro sign
	})
	require.Panics(t, func() {
		q, _ := FromString("ab", 4)
		q.Truncate(3) // beyond content
	})
}

func TestPop(t *testing.T) {
	p, err := FromString("a€", 4)
	require.NoError(t, err)

	r, ok := p.Pop()
	require.True(t, ok)
	assert.Equal(t, '€', r)
	assert.Equal(t, "a", p.String())

	r, ok = p.Pop()
	require.True(t, ok)
	assert.Equal(t, 'a', r)

	_, ok = p.Pop()
	assert.False(t, ok)
}

func TestClearIdempotent(t *testing.T) {
	p, err := FromString("abc", 4)
	require.NoError(t, err)

	p.Clear()
	assert.True(t, p.IsEmpty())
	assert.Equal(t, "", p.String())
	p.Clear()
	assert.True(t, p.IsEmpty())
	assert.Equal(t, 4, p.Capacity())
}

func TestCapacityZeroBehavior(t *testing.T) {
	var p String // zero value: capacity 0
	assert.Equal(t, 0, p.Len())
	assert.True(t, p.IsEmpty())
	assert.Equal(t, "", p.String())

	require.NoError(t, p.TryPushString(""))
	require.ErrorIs(t, p.TryPushString("a"), ErrTooLong)

	rem := p.PushStringTruncated("hello")
	assert.Equal(t, "", p.String())
	assert.Equal(t, "hello", rem)
}

func TestEqualAndCompareAgreeWithPlainStrings(t *testing.T) {
	a, _ := FromString("abc", 4)
	b, _ := FromString("abc", 200)
	c, _ := FromString("abcd", 8)

	assert.True(t, a.Equal(&b)) // capacity does not matter
	assert.False(t, a.Equal(&c))
	assert.True(t, a.EqualString("abc"))

	assert.Equal(t, strings.Compare("abc", "abcd"), a.Compare(&c))
	assert.Equal(t, strings.Compare("abcd", "abc"), c.Compare(&a))
	assert.Equal(t, 0, a.Compare(&b))
	assert.Equal(t, strings.Compare("abc", "zzz"), a.CompareString("zzz"))
}

func TestMapKeyAgreesWithString(t *testing.T) {
	p, _ := FromString("abc", 40)
	set := map[string]struct{}{"abc": {}}
	_, ok := set[p.String()]
	assert.True(t, ok)
}

func TestIsCharBoundary(t *testing.T) {
	p, _ := FromString("a€b", 8)
	assert.True(t, p.IsCharBoundary(0))
	assert.True(t, p.IsCharBoundary(1))
	assert.False(t, p.IsCharBoundary(2))
	assert.False(t, p.IsCharBoundary(3))
	assert.True(t, p.IsCharBoundary(4))
	assert.True(t, p.IsCharBoundary(5))
	assert.False(t, p.IsCharBoundary(6))
	assert.False(t, p.IsCharBoundary(-1))
}

func TestFprintfTarget(t *testing.T) {
	p := MustNew(16)
	_, err := fmt.Fprintf(&p, "id-%04d", 7)
	require.NoError(t, err)
	assert.Equal(t, "id-0007", p.String())

	q := MustNew(4)
	_, err = fmt.Fprintf(&q, "too big for this")
	require.Error(t, err)
	assert.Equal(t, "", q.String())
}

func TestQuickRoundTrip(t *testing.T) {
	condition := func(s string) bool {
		p, err := FromString(s, MaxCapacity)
		if len(s) > MaxCapacity {
			return errors.Is(err, ErrTooLong)
		}
		return err == nil && p.String() == s
	}
	require.NoError(t, quick.Check(condition, nil))
}

func TestQuickTruncatedIsValidPrefix(t *testing.T) {
	condition := func(s string, capacity uint8) bool {
		p := FromStringTruncated(s, int(capacity))
		out := p.String()
		return utf8.ValidString(out) &&
			len(out) <= int(capacity) &&
			strings.HasPrefix(s, out)
	}
	require.NoError(t, quick.Check(condition, nil))
}

func FuzzFromStringTruncated(f *testing.F) {
	f.Add("€ab", uint8(4))
	f.Add("hello", uint8(0))
	f.Add("", uint8(255))
	f.Fuzz(func(t *testing.T, s string, capacity uint8) {
		if !utf8.ValidString(s) {
			t.Skip("inputs are contractually valid UTF-8")
		}
		p := FromStringTruncated(s, int(capacity))
		out := p.String()
		require.True(t, utf8.ValidString(out))
		require.LessOrEqual(t, len(out), int(capacity))
		require.True(t, strings.HasPrefix(s, out))
		// Longest fitting prefix: the next rune must not have fit.
		if len(out) < len(s) {
			_, size := utf8.DecodeRuneInString(s[len(out):])
			require.Greater(t, len(out)+size, int(capacity))
		}
	})
}

func FuzzPushPopMirror(f *testing.F) {
	f.Add("a€b")
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) || len(s) > MaxCapacity {
			t.Skip()
		}
		p, err := FromString(s, MaxCapacity)
		require.NoError(t, err)
		var popped []rune
		for {
			r, ok := p.Pop()
			if !ok {
				break
			}
			popped = append(popped, r)
		}
		for i := len(popped) - 1; i >= 0; i-- {
			require.NoError(t, p.TryPushRune(popped[i]))
		}
		require.Equal(t, s, p.String())
	})
}
