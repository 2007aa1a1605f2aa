package render

import (
	"strings"
	"unicode/utf8"

	"github.com/jsphweid/ireal/constants"
	"github.com/jsphweid/ireal/model"
)

// Render lays a song out as a fixed width chart with four bars to a line.
func Render(music *model.Music) string {
	var b strings.Builder
	for i, bar := range music.Bars {
		writeBar(&b, bar)
		if (i+1)%constants.BarsPerLine == 0 {
			b.WriteString("|\n")
		}
	}
	if len(music.Bars)%constants.BarsPerLine != 0 {
		b.WriteString("|\n")
	}
	return b.String()
}

// Bar renders one bar without the bar line that closes it.
func Bar(bar model.Bar) string {
	var b strings.Builder
	writeBar(&b, bar)
	return b.String()
}

func writeBar(b *strings.Builder, bar model.Bar) {
	b.WriteString("|")
	if bar.DoubleBarStart {
		b.WriteString("|")
	}
	if bar.RepeatStart {
		b.WriteString(":")
	}
	for _, m := range bar.Markers {
		b.WriteString(" ")
		b.WriteString(m.String())
	}

	if bar.Repeat != model.NoRepeat {
		writeRepeat(b, bar.Repeat)
	} else {
		for _, slot := range bar.Beats {
			writeSlot(b, slot)
		}
		for i := len(bar.Beats); i < constants.MinDisplaySlots; i++ {
			b.WriteString(blank(constants.CellWidth))
		}
	}

	for _, m := range bar.Trailing {
		b.WriteString(" ")
		b.WriteString(m.String())
	}
	if bar.RepeatEnd {
		b.WriteString(":")
	}
	if bar.DoubleBarEnd {
		b.WriteString("|")
	}
}

// writeSlot right-justifies the slot's chords in one cell. An empty slot
// is blank, so a chord followed by an empty slot reads as a wide cell.
func writeSlot(b *strings.Builder, slot []model.Element) {
	if len(slot) == 0 {
		b.WriteString(blank(constants.CellWidth))
		return
	}
	var text strings.Builder
	for _, el := range slot {
		if el.Alternate {
			text.WriteString("(" + el.Chord.String() + ")")
		} else {
			text.WriteString(el.Chord.String())
		}
	}
	b.WriteString(" ")
	b.WriteString(padLeft(text.String(), constants.CellWidth))
}

// writeRepeat centers a % across the width of an empty four slot bar. Each
// half of a two bar repeat is split in two by a bar line, with a % on
// either side, and keeps the same overall width.
func writeRepeat(b *strings.Builder, kind model.RepeatKind) {
	width := constants.MinDisplaySlots * constants.CellWidth
	b.WriteString(" ")
	if kind == model.TwoBar {
		left := (width - 1) / 2
		b.WriteString(centered(left))
		b.WriteString("|")
		b.WriteString(centered(width - left - 1))
		return
	}
	b.WriteString(centered(width))
}

func centered(width int) string {
	left := width / 2
	return blank(left) + "%" + blank(width-left-1)
}

func padLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return blank(width-n) + s
}

func blank(n int) string {
	return strings.Repeat(" ", n)
}
