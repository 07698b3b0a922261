package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const banner = `
'||    ||' '||''|.   ____    ..|'''.| '||                      '||      .
 |||  |||   ||   ||  ||  ` + "`" + ` .|'     '   || ..     ....    ....   ||  ..
 |'|..'||   ||    || ||_   ||          ||' ||  .|...|| .|   ''  || .'
 | '|' ||   ||    || |/ \  '|.      .  ||  ||  ||      ||       ||'|.
.|. | .||. .||...|'     ))  ''|....'  .||. ||.  '|...'  '|...' .||. ||.
                       //
                      /'
`

// Reporter prints the status lines a user watches while a run progresses.
type Reporter struct {
	out    io.Writer
	tag    *color.Color
	label  *color.Color
	value  *color.Color
	accent *color.Color
	warn   *color.Color
}

func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = color.Output
	}
	return &Reporter{
		out:    out,
		tag:    color.New(color.FgGreen),
		label:  color.New(color.FgBlue),
		value:  color.New(color.FgYellow),
		accent: color.New(color.FgWhite),
		warn:   color.New(color.FgRed),
	}
}

func Default() *Reporter {
	return NewReporter(color.Output)
}

// DisableColor strips escape codes, e.g. when writing to a file or in tests.
func DisableColor() {
	color.NoColor = true
}

func (r *Reporter) Banner() {
	r.label.Fprintln(r.out, banner)
}

func (r *Reporter) line(mark string, markColor *color.Color, label, value string) {
	r.tag.Fprint(r.out, "[")
	markColor.Fprint(r.out, mark)
	r.tag.Fprint(r.out, "] ")
	r.label.Fprint(r.out, label)
	if value != "" {
		r.accent.Fprint(r.out, ": ")
		r.value.Fprint(r.out, value)
	}
	fmt.Fprintln(r.out)
}

func (r *Reporter) Info(label, value string) {
	r.line("i", r.accent, label, value)
}

func (r *Reporter) Ask(label, value string) {
	r.line("?", r.value, label, value)
}

func (r *Reporter) Error(label, value string) {
	r.line("!", r.warn, label, value)
}

func (r *Reporter) Separator() {
	r.tag.Fprintln(r.out, "\n  -------------------------------------------------------------  ")
}

func (r *Reporter) Found(entry string) {
	r.Info("Hash found", entry)
}

func (r *Reporter) Summary(total int, outFile string) {
	r.Info("Total hashes found", fmt.Sprint(total))
	r.Info("All hashes written to", outFile)
}

