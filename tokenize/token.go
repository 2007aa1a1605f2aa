package tokenize

import (
	"fmt"
	"strings"

	"github.com/jsphweid/ireal/chord"
)

type Kind uint8

const (
	Chord Kind = iota
	// AlternateChord is shown above the chord it follows.
	AlternateChord

	Bar
	DoubleBarStart
	DoubleBarEnd
	FinalBar
	RepeatStart
	RepeatEnd
	BarAndRepeat

	RepeatMeasure
	RepeatTwoMeasures

	Squeeze
	Unsqueeze
	Space
	Comma
	Blank
	VerticalSpace

	SectionMarker
	NumberedEnding
	Comment
	Coda
	Segno
	Fermata
	PauseSlash
	EndingMeasure

	TimeSignature
)

var kindNames = [...]string{
	Chord:             "Chord",
	AlternateChord:    "AlternateChord",
	Bar:               "Bar",
	DoubleBarStart:    "DoubleBarStart",
	DoubleBarEnd:      "DoubleBarEnd",
	FinalBar:          "FinalBar",
	RepeatStart:       "RepeatStart",
	RepeatEnd:         "RepeatEnd",
	BarAndRepeat:      "BarAndRepeat",
	RepeatMeasure:     "RepeatMeasure",
	RepeatTwoMeasures: "RepeatTwoMeasures",
	Squeeze:           "Squeeze",
	Unsqueeze:         "Unsqueeze",
	Space:             "Space",
	Comma:             "Comma",
	Blank:             "Blank",
	VerticalSpace:     "VerticalSpace",
	SectionMarker:     "SectionMarker",
	NumberedEnding:    "NumberedEnding",
	Comment:           "Comment",
	Coda:              "Coda",
	Segno:             "Segno",
	Fermata:           "Fermata",
	PauseSlash:        "PauseSlash",
	EndingMeasure:     "EndingMeasure",
	TimeSignature:     "TimeSignature",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

type Width uint8

const (
	Unknown Width = iota
	Wide
	Narrow
)

func (w Width) String() string {
	switch w {
	case Wide:
		return "wide"
	case Narrow:
		return "narrow"
	}
	return "unknown"
}

// Token is one lexical unit of chart text.
//
// Text holds the literal spelling for delimiters and glyphs, the label for
// section markers and numbered endings, and the body of a comment.
type Token struct {
	Kind   Kind
	Chord  chord.Chord
	Width  Width
	Text   string
	Top    int
	Bottom int
	// Pos is the rune offset of the token in the text it was read from.
	Pos int
}

// String returns the token as chart text.
func (t Token) String() string {
	switch t.Kind {
	case Chord:
		return t.Chord.Encode()
	case AlternateChord:
		return "(" + t.Chord.Encode() + ")"
	case SectionMarker:
		return "*" + t.Text
	case NumberedEnding:
		return "N" + t.Text
	case Comment:
		return "<" + t.Text + ">"
	case TimeSignature:
		return fmt.Sprintf("T%d%d", t.Top, t.Bottom)
	}
	return t.Text
}

// Describe is a debugging form of the token.
func (t Token) Describe() string {
	switch t.Kind {
	case Chord:
		return fmt.Sprintf("%v(%v, %v)", t.Kind, t.Chord, t.Width)
	case AlternateChord:
		return fmt.Sprintf("%v(%v)", t.Kind, t.Chord)
	case TimeSignature:
		return fmt.Sprintf("%v(%d/%d)", t.Kind, t.Top, t.Bottom)
	case SectionMarker, NumberedEnding, Comment:
		return fmt.Sprintf("%v(%q)", t.Kind, t.Text)
	}
	return t.Kind.String()
}

// Join writes tokens back out as chart text.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
	}
	return b.String()
}
