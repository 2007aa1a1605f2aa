package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/jsphweid/ireal/model"
	"github.com/stretchr/testify/assert"
)

const (
	workBlob = "1r34LbKcu7KQyX74Db7X7bEZL7E 7FZL lKcQyX7bGZL lcKQyXyQ|D4TA*{7F|Qy[*BD7L lcKQyX5b7C|QXy5b7GZL5b7G susZCh7X}  lcFZL l7 A7L7bGZL lcKQyX7bCD*[]QyX5#9b7bAZXyQKcE|QyX7 E7LZEb7XyQ|D7XyQKcl Q ZY|QGXyQZ "
	workText = "{*AT44Db7XyQKcl LZGb7XyQKcl LZF7 E7LZEb7XyQ|D7XyQKcl  }[*BD7sus G7b5LZG7b5XyQ|C7b5XyQKcl LZCh7XyQ|F7XyQ|E7 A7LZAb7b9#5XyQ][*CDb7XyQKcl LZGb7XyQKcl LZF7 E7LZEb7XyQ|D7XyQKcl Q ZY|QGXyQZ "
)

func alphabet(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(letters[i%len(letters)])
	}
	return b.String()
}

func TestDescramblesWork(t *testing.T) {
	text, err := StripMarker(workBlob)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(workText, Descramble(text))
	assert.Equal(text, Scramble(workText))
}

func TestStripMarkerRequiresMarker(t *testing.T) {
	_, err := StripMarker("1r34LbKcu")

	assert := assert.New(t)
	assert.True(errors.Is(err, model.ErrMissingMarker))
}

func TestPermute50IsAnInvolution(t *testing.T) {
	block := []rune(alphabet(50))
	once := Permute50(block)

	assert := assert.New(t)
	assert.NotEqual(block, once)
	assert.Equal(block, Permute50(once))
	// positions 5-9 and 24-25 stay put
	for _, i := range []int{5, 9, 24, 25, 40} {
		assert.Equal(block[i], once[i])
	}
	assert.Equal(block[49], once[0])
	assert.Equal(block[10], once[39])
}

func TestPermute50LeavesOtherLengthsAlone(t *testing.T) {
	block := []rune(alphabet(49))

	assert := assert.New(t)
	assert.Equal(block, Permute50(block))
}

func TestDescrambleShortAndTailBlocks(t *testing.T) {
	assert := assert.New(t)

	// 50 or fewer characters are never shuffled
	assert.Equal(alphabet(50), Descramble(alphabet(50)))
	// a block with only one character after it is left alone
	assert.Equal(alphabet(51), Descramble(alphabet(51)))
	// with two after it, it is shuffled
	in := alphabet(52)
	assert.Equal(string(Permute50([]rune(in[:50])))+in[50:], Descramble(in))
}

func TestDescrambleIsAnInvolution(t *testing.T) {
	assert := assert.New(t)
	for _, n := range []int{0, 1, 49, 50, 51, 52, 99, 100, 101, 102, 250, 333} {
		in := alphabet(n)
		assert.Equal(in, Descramble(Descramble(in)), "length %d", n)
	}
}

func TestDescrambleCountsCharactersNotBytes(t *testing.T) {
	// 55 characters but more bytes
	in := []rune(strings.Repeat("é", 10) + alphabet(45))

	assert := assert.New(t)
	assert.Equal(string(Permute50(in[:50]))+string(in[50:]), Descramble(string(in)))
	assert.Equal(string(in), Descramble(Descramble(string(in))))
}

func TestHexDigitValue(t *testing.T) {
	assert := assert.New(t)
	for i, c := range "0123456789abcdef" {
		v, err := HexDigitValue(c)
		assert.Nil(err)
		assert.Equal(i, v)
	}
	for i, c := range "ABCDEF" {
		v, err := HexDigitValue(c)
		assert.Nil(err)
		assert.Equal(10+i, v)
	}
	_, err := HexDigitValue('g')
	assert.True(errors.Is(err, model.ErrInvalidHexDigit))
}

func TestUnescape(t *testing.T) {
	s, err := Unescape("Monk%20Thelonious%2a%7C%5B")

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal("Monk Thelonious*|[", s)

	s, err = Unescape("no escapes")
	assert.Nil(err)
	assert.Equal("no escapes", s)
}

func TestUnescapeErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Unescape("ab%2")
	assert.True(errors.Is(err, model.ErrTruncatedEscape))

	_, err = Unescape("ab%")
	assert.True(errors.Is(err, model.ErrTruncatedEscape))

	_, err = Unescape("ab%zz")
	var fe *model.FormatError
	assert.True(errors.As(err, &fe))
	assert.Equal(model.InvalidHexDigit, fe.Kind)
	assert.Equal('z', fe.Char)
	assert.Equal(3, fe.Pos)
}

func TestEscapeRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for _, in := range []string{
		"Work=Monk Thelonious==Medium Swing=Db",
		workText,
		"100% {*A} <comment> é ü",
		"\U0001D10C coda",
	} {
		out, err := Unescape(Escape(in))
		assert.Nil(err)
		assert.Equal(in, out)
	}
	assert.Equal("a%20b%23c%25", Escape("a b#c%"))
}
