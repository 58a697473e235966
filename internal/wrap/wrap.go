// Package wrap decides where a single overlong markdown line should take a
// soft break, and what whitespace its continuation should carry so that it
// lines up under the content of a list item, blockquote, or indented block.
package wrap

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Split is the result of breaking a line: First is a leading piece of the
// original line, ending on a word; Second is the continuation, starting with
// the line's continuation prefix.
type Split struct {
	First  string
	Second string
}

// String joins the split with a newline, as it should be written back.
func (sp Split) String() string { return sp.First + "\n" + sp.Second }

// Format writes the split quoted under %v, or one piece per line under %+v.
func (sp Split) Format(f fmt.State, c rune) {
	switch c {
	case 'v', 's':
		if f.Flag('+') {
			fmt.Fprintf(f, "first: %q\nsecond: %q", sp.First, sp.Second)
		} else {
			fmt.Fprintf(f, "%q|%q", sp.First, sp.Second)
		}
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}

// leadIn patterns, in priority order; the first that matches wins.
var leadIns = []struct {
	pattern *regexp.Regexp
	blank   bool // replace the lead-in with spaces, rather than reuse it
}{
	{regexp.MustCompile(`^(\t*| *)-[ \t]+`), true},       // unordered item
	{regexp.MustCompile(`^(\t*| *)[0-9]+\.[ \t]+`), true}, // ordered item
	{regexp.MustCompile(`^(\t*| *)>[ \t]+`), true},       // blockquote
	{regexp.MustCompile(`^\t* +`), false},                // indentation
}

// Prefix returns the continuation prefix for line: the structural lead-in
// found at its start, blanked to spaces for list and quote markers, or kept
// verbatim for plain indentation. Returns "" when line has no lead-in.
//
// NOTE indentation made only of tabs is not a lead-in.
func Prefix(line string) string {
	for _, li := range leadIns {
		m := li.pattern.FindString(line)
		if m == "" {
			continue
		}
		if li.blank {
			return strings.Repeat(" ", len(m))
		}
		return m
	}
	return ""
}

// Line breaks raw so that its first part ends at or before the word that
// overflows column col, returning false if raw should be left unchanged:
// because it already fits, because the overflowing text is one unbreakable
// token, or because there is no earlier word to break after.
//
// col must be at least 2, and raw must not contain a newline. Columns count
// characters (runes), with tab counting as one.
func Line(raw string, col int) (Split, bool) {
	line, offs := decode(raw)
	if len(line) <= col {
		return Split{}, false
	}

	prefix := Prefix(raw)
	work := line
	if prefix != "" {
		work = make([]rune, 0, len(line))
		work = append(work, []rune(prefix)...)
		work = append(work, line[len(prefix):]...)
	}

	beg, ok := overflowWordBeg(work, col)
	if !ok {
		return Split{}, false
	}

	end := lastIndex(work[:beg], notSpace)
	if end < 0 {
		return Split{}, false
	}

	// end lies past the lead-in, so both pieces slice raw as-is
	return Split{
		First:  raw[:offs[end+1]],
		Second: prefix + raw[offs[beg]:],
	}, true
}

// decode splits s into runes, along with the byte offset of each rune and
// a final offset of len(s). Invalid bytes decode as one rune each.
func decode(s string) (line []rune, offs []int) {
	line = make([]rune, 0, len(s))
	offs = make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		line = append(line, r)
		offs = append(offs, i)
		i += n
	}
	return line, append(offs, len(s))
}

// overflowWordBeg finds the start of the word that crosses, or starts at or
// after, col; a result of len(line) means only whitespace lies past col.
func overflowWordBeg(line []rune, col int) (int, bool) {
	if isSpace(line[col]) {
		if i := index(line, col+1, notSpace); i >= 0 {
			return i, true
		}
		return len(line), true
	}

	if i := lastIndex(line[:col], isSpace); i >= 0 {
		return i + 1, true
	}

	// the word at the start of the line runs through col
	next := index(line, col+1, isSpace)
	if next < 0 {
		return 0, false
	}
	if i := index(line, next+1, notSpace); i >= 0 {
		return i, true
	}
	return 0, false
}

func isSpace(r rune) bool  { return r == ' ' || r == '\t' }
func notSpace(r rune) bool { return !isSpace(r) }

func index(line []rune, from int, pred func(rune) bool) int {
	for i := from; i < len(line); i++ {
		if pred(line[i]) {
			return i
		}
	}
	return -1
}

func lastIndex(line []rune, pred func(rune) bool) int {
	for i := len(line) - 1; i >= 0; i-- {
		if pred(line[i]) {
			return i
		}
	}
	return -1
}

// IsFence reports whether line opens or closes a fenced code block: after
// any leading whitespace it starts with three backticks.
func IsFence(line string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "```")
}
