package parse

import (
	"github.com/jsphweid/ireal/model"
	"github.com/jsphweid/ireal/tokenize"
)

// pending holds decorations read before the bar they belong to is opened.
type pending struct {
	markers        []model.Marker
	comments       []string
	repeatStart    bool
	doubleBarStart bool
}

type state struct {
	bars    []model.Bar
	current *model.Bar
	// cursor is the slot the next chord goes to
	cursor int
	// lastSlot is where the current bar's latest chord went, -1 if none
	lastSlot  int
	signature model.TimeSignature
	increment int
	pending   pending
}

func newState() *state {
	return &state{
		lastSlot:  -1,
		signature: model.CommonTime,
		increment: wideIncrement,
	}
}

func (st *state) step(tok tokenize.Token) error {
	switch tok.Kind {
	case tokenize.Bar:
		st.seal()
	case tokenize.FinalBar:
		st.close(func(b *model.Bar) { b.FinalBar = true })
	case tokenize.DoubleBarEnd:
		st.close(func(b *model.Bar) { b.DoubleBarEnd = true })
	case tokenize.RepeatEnd:
		st.close(func(b *model.Bar) { b.RepeatEnd = true })
	case tokenize.DoubleBarStart:
		st.seal()
		st.pending.doubleBarStart = true
	case tokenize.RepeatStart:
		if st.current != nil {
			st.current.RepeatStart = true
		} else {
			st.pending.repeatStart = true
		}

	case tokenize.Chord:
		st.ensureOpen()
		if err := st.place(tok, model.Element{Chord: tok.Chord}, st.cursor); err != nil {
			return err
		}
		st.lastSlot = st.cursor
		st.cursor += st.increment
	case tokenize.AlternateChord:
		st.ensureOpen()
		slot := st.lastSlot
		if slot < 0 {
			slot = st.cursor
		}
		return st.place(tok, model.Element{Chord: tok.Chord, Alternate: true}, slot)

	case tokenize.RepeatMeasure:
		last := st.lastSealed()
		if last == nil {
			return &model.SemanticError{Kind: model.NoPriorBar, Pos: tok.Pos, Token: tok.String()}
		}
		st.reopen(repeatOf(*last, model.OneBar))
	case tokenize.RepeatTwoMeasures:
		if len(st.bars) < 2 {
			return &model.SemanticError{Kind: model.InsufficientHistory, Pos: tok.Pos, Token: tok.String()}
		}
		first := repeatOf(st.bars[len(st.bars)-2], model.TwoBar)
		second := repeatOf(st.bars[len(st.bars)-1], model.TwoBar)
		st.reopen(first)
		st.seal()
		st.open(second)
	case tokenize.BarAndRepeat:
		st.seal()
		last := st.lastSealed()
		if last == nil {
			return &model.SemanticError{Kind: model.NoPriorBar, Pos: tok.Pos, Token: tok.String()}
		}
		st.open(repeatOf(*last, model.OneBar))

	case tokenize.Squeeze:
		st.increment = narrowIncrement
	case tokenize.Unsqueeze:
		st.increment = wideIncrement

	case tokenize.SectionMarker:
		st.mark(model.Marker{Kind: model.SectionMarker, Label: tok.Text})
	case tokenize.NumberedEnding:
		st.mark(model.Marker{Kind: model.NumberedEnding, Label: tok.Text})
	case tokenize.TimeSignature:
		ts := model.TimeSignature{Top: tok.Top, Bottom: tok.Bottom}
		st.signature = ts
		st.mark(model.Marker{Kind: model.TimeSignatureMarker, Time: ts})
	case tokenize.Coda:
		st.glyph(model.Marker{Kind: model.Coda})
	case tokenize.Segno:
		st.glyph(model.Marker{Kind: model.Segno})
	case tokenize.Fermata:
		st.glyph(model.Marker{Kind: model.Fermata})
	case tokenize.Comment:
		if st.current != nil {
			st.current.Comments = append(st.current.Comments, tok.Text)
		} else {
			st.pending.comments = append(st.pending.comments, tok.Text)
		}

	default:
		// Space, Comma, Blank, VerticalSpace, PauseSlash and EndingMeasure
		// only affect how the app lays out cells.
	}
	return nil
}

func repeatOf(bar model.Bar, kind model.RepeatKind) model.Bar {
	res := bar.CloneBeats()
	res.Repeat = kind
	return res
}

func (st *state) lastSealed() *model.Bar {
	if len(st.bars) == 0 {
		return nil
	}
	return &st.bars[len(st.bars)-1]
}

// open makes bar the current bar and gives it the pending decorations.
func (st *state) open(bar model.Bar) {
	bar.RepeatStart = bar.RepeatStart || st.pending.repeatStart
	bar.DoubleBarStart = bar.DoubleBarStart || st.pending.doubleBarStart
	bar.Markers = append(bar.Markers, st.pending.markers...)
	bar.Comments = append(bar.Comments, st.pending.comments...)
	st.pending = pending{}
	st.current = &bar
	st.cursor = 0
	st.lastSlot = -1
}

func (st *state) ensureOpen() {
	if st.current == nil {
		st.open(model.NewBar(st.signature.Top))
	}
}

// reopen replaces the current bar, if any, with bar. Decorations already
// given to the replaced bar move over to the new one.
func (st *state) reopen(bar model.Bar) {
	if cur := st.current; cur != nil {
		st.pending.markers = append(cur.Markers, st.pending.markers...)
		st.pending.comments = append(cur.Comments, st.pending.comments...)
		st.pending.repeatStart = st.pending.repeatStart || cur.RepeatStart
		st.pending.doubleBarStart = st.pending.doubleBarStart || cur.DoubleBarStart
		st.current = nil
	}
	st.open(bar)
}

// seal pushes the current bar onto the bar list. With no bar open it does
// nothing.
func (st *state) seal() {
	if st.current == nil {
		return
	}
	st.bars = append(st.bars, *st.current)
	st.current = nil
	st.cursor = 0
	st.lastSlot = -1
}

// close sets a closing flag on the open bar and seals it. Sealed bars are
// left alone, so with no bar open this does nothing.
func (st *state) close(set func(*model.Bar)) {
	if st.current == nil {
		return
	}
	set(st.current)
	st.seal()
}

func (st *state) place(tok tokenize.Token, el model.Element, slot int) error {
	if slot >= len(st.current.Beats) {
		return &model.SemanticError{Kind: model.BarOverflow, Pos: tok.Pos, Token: tok.String()}
	}
	st.current.Beats[slot] = append(st.current.Beats[slot], el)
	return nil
}

func (st *state) mark(m model.Marker) {
	if st.current != nil {
		st.current.Markers = append(st.current.Markers, m)
		return
	}
	st.pending.markers = append(st.pending.markers, m)
}

// glyph attaches coda, segno and fermata signs. Once a bar is open they
// follow its chords.
func (st *state) glyph(m model.Marker) {
	if st.current != nil {
		st.current.Trailing = append(st.current.Trailing, m)
		return
	}
	st.pending.markers = append(st.pending.markers, m)
}

func (st *state) finish() *model.Music {
	if st.current != nil && !st.current.IsEmpty() {
		st.seal()
	}
	music := &model.Music{Bars: st.bars}
	for i, b := range st.bars {
		if b.RepeatStart {
			i := i
			music.RepeatStart = &i
			break
		}
	}
	return music
}
