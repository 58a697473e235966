package softbreak

import (
	"io"
	"strings"

	"github.com/jcorbin/softbreak/internal/sbutil"
)

// Lines is an in-memory Document, holding one string per line.
// Setting a line to text that contains newlines replaces it with several
// lines, shifting the index of every line after it.
type Lines struct {
	lines []string

	// CRLF is true when the document was parsed with "\r\n" separators,
	// which are then also used by WriteTo.
	CRLF bool

	// Final is true when the document ended with a line separator.
	Final bool
}

// ParseLines splits text into Lines, noting its separator style and whether
// it ends with a separator.
func ParseLines(text string) *Lines {
	var ls Lines
	ls.CRLF = strings.Contains(text, "\r\n")
	if ls.CRLF {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	if strings.HasSuffix(text, "\n") {
		ls.Final = true
		text = text[:len(text)-1]
	}
	ls.lines = strings.Split(text, "\n")
	return &ls
}

// ReadLines reads all of r and parses it with ParseLines.
func ReadLines(r io.Reader) (*Lines, error) {
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return nil, err
	}
	return ParseLines(sb.String()), nil
}

// LineCount returns the number of lines.
func (ls *Lines) LineCount() int { return len(ls.lines) }

// Line returns the text of line i.
func (ls *Lines) Line(i int) string { return ls.lines[i] }

// SetLine replaces line i with text, which may span several lines.
func (ls *Lines) SetLine(i int, text string) {
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		ls.lines[i] = text
		return
	}
	n := len(parts) - 1
	ls.lines = append(ls.lines, make([]string, n)...)
	copy(ls.lines[i+1+n:], ls.lines[i+1:])
	copy(ls.lines[i:], parts)
}

func (ls *Lines) sep() string {
	if ls.CRLF {
		return "\r\n"
	}
	return "\n"
}

// String returns the document text.
func (ls *Lines) String() string {
	var sb strings.Builder
	ls.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the document text into w, returning the number of bytes
// written and any write error.
func (ls *Lines) WriteTo(w io.Writer) (int64, error) {
	cw := countWriter{w: w}
	i := 0
	err := sbutil.WriteLines(&cw, func(w io.Writer) bool {
		if i >= len(ls.lines) {
			return false
		}
		io.WriteString(w, ls.lines[i])
		if i++; i < len(ls.lines) || ls.Final {
			io.WriteString(w, ls.sep())
		}
		return true
	})
	return cw.n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
