/* Package softbreak runs a soft break pass over a markdown document.

Each line longer than the column limit is broken once after the last word
that fits, its continuation indented to line up under any list item,
blockquote, or indentation lead-in. Lines within fenced code blocks are left
alone. The pass works through a Document capability, so that a host editor
buffer may be rewritten in place just as well as the in-memory Lines.

*/
package softbreak

import (
	"fmt"

	"github.com/jcorbin/softbreak/internal/wrap"
)

// Document is the line-indexed text buffer that a pass rewrites.
// SetLine may be given text containing a newline, in which case the
// Document must insert the extra line(s) after i, shifting later lines.
type Document interface {
	LineCount() int
	Line(i int) string
	SetLine(i int, text string)
}

// Options controls a pass.
type Options struct {
	// Col is the column limit; it must be at least 2.
	Col int

	// Recheck causes continuation lines to be examined again after a split,
	// so that a long line is broken as many times as needed. Otherwise each
	// original line is split at most once.
	Recheck bool
}

// Stats counts what a pass did.
type Stats struct {
	Lines  int // lines examined
	Split  int // lines split
	Fenced int // lines skipped inside code fences
}

// Apply runs a pass over doc, splitting overlong lines in place.
func Apply(doc Document, opts Options) (stats Stats) {
	inCode := false
	for i := 0; i < doc.LineCount(); i++ {
		line := doc.Line(i)
		if wrap.IsFence(line) {
			inCode = !inCode
		}
		if inCode {
			stats.Fenced++
			continue
		}
		stats.Lines++
		sp, ok := wrap.Line(line, opts.Col)
		if !ok {
			continue
		}
		doc.SetLine(i, sp.String())
		stats.Split++
		if !opts.Recheck {
			i++
		}
	}
	return stats
}

// Format writes a terse summary of the receiver stats.
func (stats Stats) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "lines:%v split:%v fenced:%v", stats.Lines, stats.Split, stats.Fenced)
}
