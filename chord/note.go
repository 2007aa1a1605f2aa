package chord

// Note is a spelled note as written in a chart. The zero value is "no
// note" and marks an absent bass note.
type Note uint8

const (
	NoNote Note = iota
	AFlat
	A
	ASharp
	BFlat
	B
	CFlat
	C
	CSharp
	DFlat
	D
	DSharp
	EFlat
	E
	F
	FSharp
	GFlat
	G
	GSharp
	// W has no root of its own. "W/C" shows just "/C".
	W
)

// NoteSpellings is ordered longest first so a prefix match never cuts a
// two-character spelling short.
var NoteSpellings = []struct {
	Text string
	Note Note
}{
	{"Ab", AFlat}, {"A#", ASharp}, {"A", A},
	{"Bb", BFlat}, {"B", B},
	{"Cb", CFlat}, {"C#", CSharp}, {"C", C},
	{"Db", DFlat}, {"D#", DSharp}, {"D", D},
	{"Eb", EFlat}, {"E", E},
	{"F#", FSharp}, {"F", F},
	{"Gb", GFlat}, {"G#", GSharp}, {"G", G},
	{"W", W},
}

var noteText = map[Note]string{}

func init() {
	for _, s := range NoteSpellings {
		noteText[s.Note] = s.Text
	}
}

// pitch classes, C = 0
var pitchClass = map[Note]int{
	AFlat: 8, A: 9, ASharp: 10,
	BFlat: 10, B: 11,
	CFlat: 11, C: 0, CSharp: 1,
	DFlat: 1, D: 2, DSharp: 3,
	EFlat: 3, E: 4,
	F: 5, FSharp: 6,
	GFlat: 6, G: 7, GSharp: 8,
}

var canonical = [12]Note{C, DFlat, D, EFlat, E, F, GFlat, G, AFlat, A, BFlat, B}

// Encode returns the protocol spelling.
func (n Note) Encode() string {
	return noteText[n]
}

func (n Note) String() string {
	if n == W {
		return ""
	}
	return noteText[n]
}

// PitchClass returns 0-11 with C at 0, or -1 for NoNote and W.
func (n Note) PitchClass() int {
	pc, ok := pitchClass[n]
	if !ok {
		return -1
	}
	return pc
}

// Canonical returns the protocol's preferred spelling of the note's pitch
// class. NoNote and W are returned unchanged.
func (n Note) Canonical() Note {
	pc := n.PitchClass()
	if pc < 0 {
		return n
	}
	return canonical[pc]
}

// Number is an extension or scale degree. The zero value means none.
type Number uint8

const (
	NoNumber Number = iota
	Two
	Three
	Five
	Six
	Seven
	Nine
	Eleven
	Thirteen
)

// NumberSpellings lists every number the protocol writes.
var NumberSpellings = []struct {
	Text   string
	Number Number
}{
	{"2", Two}, {"3", Three}, {"5", Five}, {"6", Six},
	{"7", Seven}, {"9", Nine}, {"11", Eleven}, {"13", Thirteen},
}

func (n Number) String() string {
	for _, s := range NumberSpellings {
		if s.Number == n {
			return s.Text
		}
	}
	return ""
}
