package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jsphweid/ireal/model"
)

// HexDigitValue returns the value of one hex digit, either case.
func HexDigitValue(ch rune) (int, error) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), nil
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10, nil
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10, nil
	}
	return 0, &model.FormatError{Kind: model.InvalidHexDigit, Char: ch}
}

type unescapeState int

const (
	plain unescapeState = iota
	sawPercent
	sawFirstDigit
)

// Unescape decodes %XX escapes. Each escape becomes the character with
// that code point.
func Unescape(text string) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	state := plain
	num := 0
	pos := 0
	for _, c := range text {
		switch state {
		case plain:
			if c == '%' {
				state = sawPercent
			} else {
				b.WriteRune(c)
			}
		case sawPercent, sawFirstDigit:
			v, err := HexDigitValue(c)
			if err != nil {
				return "", &model.FormatError{Kind: model.InvalidHexDigit, Char: c, Pos: pos}
			}
			if state == sawPercent {
				num = 16 * v
				state = sawFirstDigit
			} else {
				b.WriteRune(rune(num + v))
				state = plain
			}
		}
		pos++
	}
	if state != plain {
		return "", &model.FormatError{Kind: model.TruncatedEscape, Pos: pos}
	}
	return b.String(), nil
}

// unreserved characters are left as they are by Escape
func unreserved(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.ContainsRune("-_.~=^()/,:'!$&;@", c)
}

// Escape is the inverse of Unescape for text whose characters are all
// below U+0100. Other characters are written as-is.
func Escape(text string) string {
	var b strings.Builder
	for _, c := range text {
		if unreserved(c) || c >= utf8.RuneSelf*2 {
			b.WriteRune(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}
