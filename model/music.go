package model

import (
	"fmt"

	"github.com/jsphweid/ireal/chord"
	"golang.org/x/exp/slices"
)

type TimeSignature struct {
	Top    int
	Bottom int
}

var CommonTime = TimeSignature{Top: 4, Bottom: 4}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Top, ts.Bottom)
}

type MarkerKind uint8

const (
	SectionMarker MarkerKind = iota
	NumberedEnding
	TimeSignatureMarker
	Coda
	Segno
	Fermata
)

// Marker is a label or glyph printed next to a bar's chords.
type Marker struct {
	Kind  MarkerKind
	Label string
	Time  TimeSignature
}

func (m Marker) String() string {
	switch m.Kind {
	case SectionMarker:
		return "[" + m.Label + "]"
	case NumberedEnding:
		return "N" + m.Label
	case TimeSignatureMarker:
		return m.Time.String()
	case Coda:
		return "\U0001D10C"
	case Segno:
		return "\U0001D10B"
	default:
		return "\U0001D110"
	}
}

// Element is a chord sitting on a beat slot. Alternate chords are shown
// above the primary chord of the same slot.
type Element struct {
	Chord     chord.Chord
	Alternate bool
}

type RepeatKind uint8

const (
	NoRepeat RepeatKind = iota
	// OneBar was written as "x" or "Kcl".
	OneBar
	// TwoBar is one half of an "r|".
	TwoBar
)

// Bar is a fixed number of beat slots plus its bar-line decorations.
// len(Beats) is decided when the bar is opened and never changes.
type Bar struct {
	Beats [][]Element

	RepeatStart    bool
	DoubleBarStart bool
	Markers        []Marker

	Trailing     []Marker
	Comments     []string
	RepeatEnd    bool
	DoubleBarEnd bool
	FinalBar     bool

	// Repeat records that the beats were copied from an earlier bar.
	Repeat RepeatKind
}

func NewBar(slots int) Bar {
	return Bar{Beats: make([][]Element, slots)}
}

// CloneBeats returns a bar holding a deep copy of b's beats and none of
// its decorations.
func (b Bar) CloneBeats() Bar {
	beats := make([][]Element, len(b.Beats))
	for i, slot := range b.Beats {
		if slot == nil {
			continue
		}
		beats[i] = make([]Element, len(slot))
		for j, el := range slot {
			beats[i][j] = Element{Chord: el.Chord.Clone(), Alternate: el.Alternate}
		}
	}
	return Bar{Beats: beats}
}

// Chords returns the primary chords in beat order.
func (b Bar) Chords() []chord.Chord {
	var res []chord.Chord
	for _, slot := range b.Beats {
		for _, el := range slot {
			if !el.Alternate {
				res = append(res, el.Chord)
			}
		}
	}
	return res
}

func (b Bar) IsEmpty() bool {
	return !slices.ContainsFunc(b.Beats, func(slot []Element) bool { return len(slot) > 0 })
}

// Music is one song's parsed chart.
type Music struct {
	// RepeatStart is the index of the first bar that opens a repeat.
	RepeatStart *int
	// Raw is the descrambled text the bars were parsed from.
	Raw  string
	Bars []Bar
}

// Chords returns every primary chord of the song in order.
func (m *Music) Chords() []chord.Chord {
	var res []chord.Chord
	for _, b := range m.Bars {
		res = append(res, b.Chords()...)
	}
	return res
}
