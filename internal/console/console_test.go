package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporterLines(t *testing.T) {
	DisableColor()
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Found("d077f244def8a70e5ea758bd8352fcd8:cat")
	r.Summary(1, "out.txt")
	r.Error("Error", "boom")

	assert.Equal(t,
		"[i] Hash found: d077f244def8a70e5ea758bd8352fcd8:cat\n"+
			"[i] Total hashes found: 1\n"+
			"[i] All hashes written to: out.txt\n"+
			"[!] Error: boom\n",
		buf.String())
}
