package song

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/ireal/codec"
	"github.com/jsphweid/ireal/constants"
	"github.com/jsphweid/ireal/model"
	"github.com/jsphweid/ireal/parse"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// songNamespace scopes song IDs, which are derived from the song record.
var songNamespace = uuid.MustParse("9f7c6a3e-4d1b-5e2f-8a90-1c3d5e7f9b2a")

// positions of the "="-separated fields of a song record
const (
	fieldTitle = iota
	fieldComposer
	_
	fieldStyle
	fieldKey
	fieldTranspose
	fieldMusic
	fieldCompStyle
	fieldBPM
	fieldRepeats
	numFields
)

// DecodeMusic strips the music marker from a song's music field,
// descrambles it and parses the chart.
func DecodeMusic(blob string) (*model.Music, error) {
	return decodeMusic(blob, parse.NewParser())
}

func decodeMusic(blob string, p *parse.Parser) (*model.Music, error) {
	text, err := codec.StripMarker(blob)
	if err != nil {
		return nil, err
	}
	return p.Text(codec.Descramble(text))
}

// ParseSong reads one "="-separated song record and decodes its music.
func ParseSong(record string) (model.Song, error) {
	return parseSong(record, parse.NewParser())
}

func parseSong(record string, p *parse.Parser) (model.Song, error) {
	parts := strings.Split(record, constants.FieldSeparator)
	if len(parts) < numFields {
		return model.Song{}, &model.FormatError{
			Kind:   model.MissingField,
			Detail: fmt.Sprintf("song record has %d fields, want %d", len(parts), numFields),
		}
	}
	s := model.Song{
		ID:        uuid.NewSHA1(songNamespace, []byte(record)).String(),
		Title:     parts[fieldTitle],
		Composer:  parts[fieldComposer],
		Style:     parts[fieldStyle],
		Key:       parts[fieldKey],
		Transpose: parts[fieldTranspose],
		CompStyle: parts[fieldCompStyle],
		Repeats:   parts[fieldRepeats],
		Record:    record,
	}
	if bpm := parts[fieldBPM]; bpm != "" {
		n, err := strconv.ParseUint(bpm, 10, 32)
		if err != nil {
			return model.Song{}, &model.FormatError{Kind: model.MissingField, Detail: "bad bpm " + strconv.Quote(bpm)}
		}
		s.BPM = uint32(n)
	}
	music, err := decodeMusic(parts[fieldMusic], p)
	if err != nil {
		return model.Song{}, fmt.Errorf("song %q: %w", s.Title, err)
	}
	s.Music = music
	return s, nil
}

// SplitURL checks the scheme, unescapes the URL and splits it into song
// records and the collection title.
func SplitURL(url string) ([]string, string, error) {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, constants.URLScheme) {
		return nil, "", &model.FormatError{Kind: model.InvalidURL, Detail: "expected URL to start with " + constants.URLScheme}
	}
	unescaped, err := codec.Unescape(url[len(constants.URLScheme):])
	if err != nil {
		return nil, "", fmt.Errorf("unescaping url: %w", err)
	}
	parts := strings.Split(unescaped, constants.CollectionSeparator)
	title := constants.DefaultCollectionTitle
	if len(parts) > 1 {
		title = parts[len(parts)-1]
		parts = parts[:len(parts)-1]
	}
	return parts, title, nil
}

// ParseURL decodes every song of a collection URL, stopping at the first
// song that fails.
func ParseURL(url string) (*model.Collection, error) {
	records, title, err := SplitURL(url)
	if err != nil {
		return nil, err
	}
	res := &model.Collection{Title: title}
	for _, record := range records {
		s, err := ParseSong(record)
		if err != nil {
			return nil, err
		}
		res.Songs = append(res.Songs, s)
	}
	return res, nil
}

type Decoder struct {
	log     *zap.Logger
	workers int
}

type Option func(*Decoder)

func WithLogger(log *zap.Logger) Option {
	return func(d *Decoder) {
		d.log = log
	}
}

// WithWorkers bounds how many songs are decoded at once.
func WithWorkers(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.workers = n
		}
	}
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{log: zap.NewNop(), workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DecodeCollection decodes the songs of a collection URL in parallel.
// Songs that fail are skipped and listed in Failures; only a malformed URL
// or a cancelled context fails the whole call.
func (d *Decoder) DecodeCollection(ctx context.Context, url string) (*model.Collection, error) {
	records, title, err := SplitURL(url)
	if err != nil {
		return nil, err
	}

	songs := make([]*model.Song, len(records))
	failures := make([]*model.SongFailure, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i, record := range records {
		i, record := i, record
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := parse.NewParser(parse.WithLogger(d.log))
			s, err := parseSong(record, p)
			if err != nil {
				d.log.Warn("skipping song", zap.Int("index", i), zap.Error(err))
				failures[i] = &model.SongFailure{Index: i, Title: recordTitle(record), Err: err}
				return nil
			}
			songs[i] = &s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &model.Collection{Title: title}
	for i := range records {
		if songs[i] != nil {
			res.Songs = append(res.Songs, *songs[i])
		}
		if failures[i] != nil {
			res.Failures = append(res.Failures, *failures[i])
		}
	}
	d.log.Debug("decoded collection",
		zap.String("title", title),
		zap.Int("songs", len(res.Songs)),
		zap.Int("failures", len(res.Failures)))
	return res, nil
}

func recordTitle(record string) string {
	title, _, _ := strings.Cut(record, constants.FieldSeparator)
	return title
}
