package render

import (
	"strings"
	"testing"

	"github.com/jsphweid/ireal/model"
	"github.com/jsphweid/ireal/parse"
	"github.com/stretchr/testify/assert"
)

const workText = "{*AT44Db7XyQKcl LZGb7XyQKcl LZF7 E7LZEb7XyQ|D7XyQKcl  }[*BD7sus G7b5LZG7b5XyQ|C7b5XyQKcl LZCh7XyQ|F7XyQ|E7 A7LZAb7b9#5XyQ][*CDb7XyQKcl LZGb7XyQKcl LZF7 E7LZEb7XyQ|D7XyQKcl Q ZY|QGXyQZ "

const workChart = "|: [A] 4/4    Db7                  |             %           |    Gb7                  |             %           |\n" +
	"|     F7           E7      |    Eb7                  |     D7                  |             %           :|\n" +
	"|| [B]  D7sus         G7b5      |   G7b5                  |   C7b5                  |             %           |\n" +
	"|    Ch7                  |     F7                  |     E7           A7      | Ab7b9#5                  ||\n" +
	"|| [C]    Db7                  |             %           |    Gb7                  |             %           |\n" +
	"|     F7           E7      |    Eb7                  |     D7                  |             %            \U0001D10C|\n" +
	"| \U0001D10C      G                  |\n"

func renderText(t *testing.T, text string) string {
	t.Helper()
	music, err := parse.Text(text)
	if err != nil {
		t.Fatalf("parsing %q: %v", text, err)
	}
	return Render(music)
}

func TestRendersWork(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(workChart, renderText(t, workText))
}

func TestRenderIsDeterministic(t *testing.T) {
	music, err := parse.Text(workText)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(Render(music), Render(music))
}

func TestShortBarsArePadded(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("| 3/4     C7           D7      |\n", renderText(t, "T34C7D7|"))
}

func TestAlternateSharesCell(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("| C7(D7)                  |\n", renderText(t, "C7(D7)|"))
}

func TestNoChordAndSlash(t *testing.T) {
	out := renderText(t, "n W/C|")

	assert := assert.New(t)
	assert.True(strings.HasPrefix(out, "|   N.C."+strings.Repeat(" ", 11)+"/C"))
}

func TestLinesHoldFourBars(t *testing.T) {
	out := renderText(t, "C|D|E|F|G|")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	assert := assert.New(t)
	assert.Len(lines, 2)
	assert.Equal(4, strings.Count(lines[0], "|")-1)
	assert.True(strings.HasSuffix(lines[1], "|"))
}

func TestEmptyMusic(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("", Render(&model.Music{}))
}

func TestBar(t *testing.T) {
	bar := model.NewBar(4)
	bar.RepeatStart = true
	bar.DoubleBarEnd = true

	assert := assert.New(t)
	assert.Equal("|:"+strings.Repeat(" ", 24)+"|", Bar(bar))
}

func TestTwoBarRepeatIsSplit(t *testing.T) {
	music, err := parse.Text("C7|D7|r| |x")
	if err != nil {
		t.Fatal(err)
	}

	assert := assert.New(t)
	half := "|" + strings.Repeat(" ", 6) + "%" + strings.Repeat(" ", 5) + "|" + strings.Repeat(" ", 6) + "%" + strings.Repeat(" ", 5)
	one := "|" + strings.Repeat(" ", 13) + "%" + strings.Repeat(" ", 11)
	if assert.Len(music.Bars, 5) {
		assert.Equal(half, Bar(music.Bars[2]))
		assert.Equal(half, Bar(music.Bars[3]))
		assert.Equal(one, Bar(music.Bars[4]))
		assert.Equal(len(one), len(half))
	}
	lines := strings.SplitAfter(Render(music), "\n")
	assert.True(strings.HasSuffix(lines[0], half+half+"|\n"))
	assert.Equal(one+"|\n", lines[1])
}
