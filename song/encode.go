package song

import (
	"strconv"
	"strings"

	"github.com/jsphweid/ireal/codec"
	"github.com/jsphweid/ireal/constants"
	"github.com/jsphweid/ireal/model"
)

// Record writes a song back out as an "="-separated record. The music is
// taken from Music.Raw and scrambled again.
func Record(s model.Song) string {
	fields := make([]string, numFields)
	fields[fieldTitle] = s.Title
	fields[fieldComposer] = s.Composer
	fields[fieldStyle] = s.Style
	fields[fieldKey] = s.Key
	fields[fieldTranspose] = s.Transpose
	if s.Music != nil {
		fields[fieldMusic] = constants.MusicMarker + codec.Scramble(s.Music.Raw)
	}
	fields[fieldCompStyle] = s.CompStyle
	fields[fieldBPM] = bpmField(s)
	fields[fieldRepeats] = s.Repeats
	return strings.Join(fields, constants.FieldSeparator)
}

// bpmField keeps an empty bpm field empty. Both "" and "0" parse to a zero
// BPM, so the record the song came from decides which one to write.
func bpmField(s model.Song) string {
	if s.BPM == 0 && s.Record != "" {
		if parts := strings.Split(s.Record, constants.FieldSeparator); len(parts) > fieldBPM {
			return parts[fieldBPM]
		}
	}
	return strconv.FormatUint(uint64(s.BPM), 10)
}

// Encode builds a collection URL that ParseURL reads back into the same
// songs.
func Encode(c *model.Collection) string {
	parts := make([]string, 0, len(c.Songs)+1)
	for _, s := range c.Songs {
		parts = append(parts, Record(s))
	}
	parts = append(parts, c.Title)
	return constants.URLScheme + codec.Escape(strings.Join(parts, constants.CollectionSeparator))
}
