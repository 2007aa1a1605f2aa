package codec

import (
	"strings"

	"github.com/jsphweid/ireal/constants"
	"github.com/jsphweid/ireal/model"
)

// StripMarker checks that blob starts with the music marker and returns
// the text after it.
func StripMarker(blob string) (string, error) {
	if !strings.HasPrefix(blob, constants.MusicMarker) {
		return "", model.ErrMissingMarker
	}
	return blob[len(constants.MusicMarker):], nil
}

// Descramble undoes the block shuffle applied to chart text. The shuffle
// is its own inverse, so the same function scrambles.
func Descramble(text string) string {
	rest := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for len(rest) > constants.BlockSize {
		block := rest[:constants.BlockSize]
		rest = rest[constants.BlockSize:]
		// a block followed by fewer than 2 characters is left alone
		if len(rest) < 2 {
			b.WriteString(string(block))
		} else {
			b.WriteString(string(Permute50(block)))
		}
	}
	b.WriteString(string(rest))
	return b.String()
}

// Scramble is Descramble; the shuffle is an involution.
func Scramble(text string) string {
	return Descramble(text)
}

// Permute50 mirror-swaps positions [0,5) and [10,24) of a 50 character
// block. Any other length is returned as a copy, unchanged.
func Permute50(block []rune) []rune {
	res := make([]rune, len(block))
	copy(res, block)
	if len(res) != constants.BlockSize {
		return res
	}
	last := len(res) - 1
	for i := 0; i < 5; i++ {
		res[i], res[last-i] = res[last-i], res[i]
	}
	for i := 10; i < 24; i++ {
		res[i], res[last-i] = res[last-i], res[i]
	}
	return res
}
