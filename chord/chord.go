package chord

import (
	"strings"

	"golang.org/x/exp/slices"
)

type Quality uint8

const (
	Dominant Quality = iota
	Major
	Minor
	Augmented
	Diminished
	HalfDiminished
	DiminishedMajor
	MinorMajor
	SixthNinth
	MinorSixthNinth
)

// QualitySymbols is ordered so that longer symbols come before their
// prefixes ("-69" before "-^" before "-"). Dominant has no symbol and is
// the fallback.
var QualitySymbols = []struct {
	Text    string
	Quality Quality
}{
	{"69", SixthNinth},
	{"-69", MinorSixthNinth},
	{"-^", MinorMajor},
	{"-", Minor},
	{"^", Major},
	{"h", HalfDiminished},
	{"o^", DiminishedMajor},
	{"o", Diminished},
	{"+", Augmented},
}

func (q Quality) String() string {
	for _, s := range QualitySymbols {
		if s.Quality == q {
			return s.Text
		}
	}
	return ""
}

// TakesExtension reports whether the quality may carry a Number.
func (q Quality) TakesExtension() bool {
	return q != SixthNinth && q != MinorSixthNinth
}

type Flavor struct {
	Quality   Quality
	Extension Number
}

func (f Flavor) String() string {
	return f.Quality.String() + f.Extension.String()
}

type AlterationKind uint8

const (
	Flat AlterationKind = iota
	Sharp
	Add
	Sus
	Alt
)

type Alteration struct {
	Kind   AlterationKind
	Number Number
}

func (a Alteration) String() string {
	switch a.Kind {
	case Flat:
		return "b" + a.Number.String()
	case Sharp:
		return "#" + a.Number.String()
	case Add:
		return "add" + a.Number.String()
	case Sus:
		return "sus"
	default:
		return "alt"
	}
}

// Chord is either NC (no chord) or a root with a flavor, alterations in
// written order and an optional bass note.
type Chord struct {
	NC          bool
	Root        Note
	Flavor      Flavor
	Alterations []Alteration
	Bass        Note
}

// NoChord is the "n" chord.
var NoChord = Chord{NC: true}

func Basic(root Note, flavor Flavor) Chord {
	return Chord{Root: root, Flavor: flavor}
}

func (c Chord) Equal(o Chord) bool {
	if c.NC || o.NC {
		return c.NC == o.NC
	}
	return c.Root == o.Root &&
		c.Flavor == o.Flavor &&
		c.Bass == o.Bass &&
		slices.Equal(c.Alterations, o.Alterations)
}

// Clone returns a copy that shares no memory with c.
func (c Chord) Clone() Chord {
	c.Alterations = slices.Clone(c.Alterations)
	return c
}

func (c Chord) write(b *strings.Builder, root func(Note) string) {
	b.WriteString(root(c.Root))
	b.WriteString(c.Flavor.String())
	for _, a := range c.Alterations {
		b.WriteString(a.String())
	}
	if c.Bass != NoNote {
		b.WriteString("/")
		b.WriteString(root(c.Bass))
	}
}

// Encode returns the chord as the protocol writes it.
func (c Chord) Encode() string {
	if c.NC {
		return "n"
	}
	var b strings.Builder
	c.write(&b, Note.Encode)
	return b.String()
}

func (c Chord) String() string {
	if c.NC {
		return "N.C."
	}
	var b strings.Builder
	c.write(&b, Note.String)
	return b.String()
}
