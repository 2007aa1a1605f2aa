package model

// Song is one chart of a collection with its positional metadata fields.
type Song struct {
	ID        string
	Title     string
	Composer  string
	Style     string
	Key       string
	Transpose string
	Music     *Music
	CompStyle string
	BPM       uint32
	Repeats   string
	// Record is the undecoded "="-separated record the song came from.
	Record string
}

// SongFailure is a record that could not be decoded.
type SongFailure struct {
	Index int
	Title string
	Err   error
}

type Collection struct {
	Title    string
	Songs    []Song
	Failures []SongFailure
}
