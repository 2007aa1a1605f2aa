package tokenize

import (
	"strconv"

	"github.com/jsphweid/ireal/chord"
	"github.com/jsphweid/ireal/model"
)

type literal struct {
	text string
	kind Kind
}

// Longer spellings come before their prefixes.
var barLines = []literal{
	{"||", Bar},
	{"|", Bar},
	{"[", DoubleBarStart},
	{"]", DoubleBarEnd},
	{"Z", FinalBar},
	{"Kcl", BarAndRepeat},
	{"LZ|", Bar},
	{"LZ", Bar},
}

var controls = []literal{
	{"{", RepeatStart},
	{"}|", RepeatEnd},
	{"}", RepeatEnd},
	{",", Comma},
	{"XyQ", Blank},
	{"r|", RepeatTwoMeasures},
	{"x", RepeatMeasure},
	{"s", Squeeze},
	{"Q", Coda},
	{"S", Segno},
	{"Y", VerticalSpace},
	{"p", PauseSlash},
	{"U", EndingMeasure},
	{"l", Unsqueeze},
	{"f", Fermata},
	{" ", Space},
}

type lexer struct {
	src []rune
	pos int
	// width given to the next chord, switched by s and l
	width Width
}

// Tokenize splits descrambled chart text into tokens. The whole text must
// be consumed; the first position no rule matches is reported as
// UnrecognizedInput.
func Tokenize(text string) ([]Token, error) {
	lx := &lexer{src: []rune(text), width: Wide}
	var res []Token
	for !lx.done() {
		start := lx.pos
		t, ok := lx.next()
		if !ok {
			return nil, &model.FormatError{Kind: model.UnrecognizedInput, Pos: start}
		}
		t.Pos = start
		switch t.Kind {
		case Squeeze:
			lx.width = Narrow
		case Unsqueeze:
			lx.width = Wide
		}
		res = append(res, t)
	}
	return res, nil
}

func (lx *lexer) done() bool {
	return lx.pos >= len(lx.src)
}

func (lx *lexer) next() (Token, bool) {
	if c, ok := lx.chord(); ok {
		return Token{Kind: Chord, Chord: c, Width: lx.width}, true
	}
	if t, ok := lx.literal(barLines); ok {
		return t, true
	}
	if t, ok := lx.literal(controls); ok {
		return t, true
	}
	if t, ok := lx.comment(); ok {
		return t, true
	}
	if t, ok := lx.alternate(); ok {
		return t, true
	}
	if t, ok := lx.prefixed('*', SectionMarker); ok {
		return t, true
	}
	if t, ok := lx.prefixed('N', NumberedEnding); ok {
		return t, true
	}
	return lx.timeSignature()
}

func (lx *lexer) hasPrefix(s string) bool {
	i := lx.pos
	for _, r := range s {
		if i >= len(lx.src) || lx.src[i] != r {
			return false
		}
		i++
	}
	return true
}

// accept consumes s if the input continues with it.
func (lx *lexer) accept(s string) bool {
	if !lx.hasPrefix(s) {
		return false
	}
	lx.pos += len([]rune(s))
	return true
}

func (lx *lexer) literal(table []literal) (Token, bool) {
	for _, l := range table {
		if lx.accept(l.text) {
			return Token{Kind: l.kind, Text: l.text}, true
		}
	}
	return Token{}, false
}

func (lx *lexer) comment() (Token, bool) {
	if !lx.hasPrefix("<") {
		return Token{}, false
	}
	for i := lx.pos + 1; i < len(lx.src); i++ {
		if lx.src[i] == '>' {
			body := string(lx.src[lx.pos+1 : i])
			lx.pos = i + 1
			return Token{Kind: Comment, Text: body}, true
		}
	}
	return Token{}, false
}

func (lx *lexer) alternate() (Token, bool) {
	start := lx.pos
	if !lx.accept("(") {
		return Token{}, false
	}
	c, ok := lx.chord()
	if !ok || !lx.accept(")") {
		lx.pos = start
		return Token{}, false
	}
	return Token{Kind: AlternateChord, Chord: c}, true
}

// prefixed reads a one character label after a fixed glyph, as in *A or N1.
func (lx *lexer) prefixed(glyph rune, kind Kind) (Token, bool) {
	if lx.pos+1 >= len(lx.src) || lx.src[lx.pos] != glyph {
		return Token{}, false
	}
	label := string(lx.src[lx.pos+1])
	lx.pos += 2
	return Token{Kind: kind, Text: label}, true
}

// timeSignature reads T followed by digits. The last digit is the bottom
// number and the rest the top; every signature in the wild has a single
// digit bottom.
func (lx *lexer) timeSignature() (Token, bool) {
	if !lx.hasPrefix("T") {
		return Token{}, false
	}
	end := lx.pos + 1
	for end < len(lx.src) && lx.src[end] >= '0' && lx.src[end] <= '9' {
		end++
	}
	digits := string(lx.src[lx.pos+1 : end])
	if len(digits) < 2 {
		return Token{}, false
	}
	top, err := strconv.Atoi(digits[:len(digits)-1])
	if err != nil {
		return Token{}, false
	}
	bottom := int(digits[len(digits)-1] - '0')
	lx.pos = end
	return Token{Kind: TimeSignature, Top: top, Bottom: bottom}, true
}

func (lx *lexer) chord() (chord.Chord, bool) {
	if lx.accept("n") {
		return chord.NoChord, true
	}
	root, ok := lx.note()
	if !ok {
		return chord.Chord{}, false
	}
	c := chord.Chord{Root: root, Flavor: lx.flavor()}
	c.Alterations = lx.alterations()
	if lx.hasPrefix("/") {
		lx.pos++
		bass, ok := lx.note()
		if !ok {
			// a slash with no note after it is not part of the chord
			lx.pos--
		}
		c.Bass = bass
	}
	return c, true
}

func (lx *lexer) note() (chord.Note, bool) {
	for _, s := range chord.NoteSpellings {
		if lx.accept(s.Text) {
			return s.Note, true
		}
	}
	return chord.NoNote, false
}

func (lx *lexer) number() chord.Number {
	for _, s := range chord.NumberSpellings {
		if lx.accept(s.Text) {
			return s.Number
		}
	}
	return chord.NoNumber
}

func (lx *lexer) flavor() chord.Flavor {
	for _, s := range chord.QualitySymbols {
		if lx.accept(s.Text) {
			f := chord.Flavor{Quality: s.Quality}
			if s.Quality.TakesExtension() {
				f.Extension = lx.number()
			}
			return f
		}
	}
	return chord.Flavor{Quality: chord.Dominant, Extension: lx.number()}
}

func (lx *lexer) alterations() []chord.Alteration {
	var res []chord.Alteration
	for {
		a, ok := lx.alteration()
		if !ok {
			return res
		}
		res = append(res, a)
	}
}

func (lx *lexer) alteration() (chord.Alteration, bool) {
	start := lx.pos
	withNumber := []struct {
		text string
		kind chord.AlterationKind
	}{
		{"b", chord.Flat},
		{"#", chord.Sharp},
		{"add", chord.Add},
	}
	for _, w := range withNumber {
		if !lx.accept(w.text) {
			continue
		}
		if n := lx.number(); n != chord.NoNumber {
			return chord.Alteration{Kind: w.kind, Number: n}, true
		}
		lx.pos = start
	}
	if lx.accept("sus") {
		return chord.Alteration{Kind: chord.Sus}, true
	}
	if lx.accept("alt") {
		return chord.Alteration{Kind: chord.Alt}, true
	}
	return chord.Alteration{}, false
}
