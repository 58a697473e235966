// Package mdcheck compares the block structure of two markdown documents,
// to confirm that a rewrite only moved text around within blocks.
package mdcheck

import (
	"fmt"
	"strings"

	blackfriday "github.com/russross/blackfriday/v2"
)

func parser() *blackfriday.Markdown {
	return blackfriday.New(blackfriday.WithExtensions(0 |
		blackfriday.NoIntraEmphasis |
		blackfriday.FencedCode |
		blackfriday.Autolink |
		blackfriday.Strikethrough |
		blackfriday.SpaceHeadings |
		blackfriday.BackslashLineBreak,
	))
}

var blockTypes = map[blackfriday.NodeType]bool{
	blackfriday.Document:       true,
	blackfriday.BlockQuote:     true,
	blackfriday.List:           true,
	blackfriday.Item:           true,
	blackfriday.Paragraph:      true,
	blackfriday.Heading:        true,
	blackfriday.HorizontalRule: true,
	blackfriday.CodeBlock:      true,
	blackfriday.HTMLBlock:      true,
	blackfriday.Table:          true,
}

// Outline returns one entry per block in src, in document order, each
// indented two spaces per level of nesting.
func Outline(src []byte) []string {
	var (
		outline []string
		depth   int
	)
	parser().Parse(src).Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !blockTypes[node.Type] {
			return blackfriday.GoToNext
		}
		if !entering {
			depth--
			return blackfriday.GoToNext
		}
		entry := strings.Repeat("  ", depth) + node.Type.String()
		if node.Type == blackfriday.Heading {
			entry += fmt.Sprint(node.Level)
		}
		outline = append(outline, entry)
		if node.IsContainer() {
			depth++
		}
		return blackfriday.GoToNext
	})
	return outline
}

// MismatchError describes the first block where two outlines differ.
// An empty Before or After means that outline ran out of blocks.
type MismatchError struct {
	Index  int
	Before string
	After  string
}

func (err *MismatchError) Error() string {
	return fmt.Sprintf("block structure changed at block %v: %q became %q",
		err.Index+1, strings.TrimSpace(err.Before), strings.TrimSpace(err.After))
}

// Compare returns a *MismatchError if after does not have the same block
// structure as before, nil otherwise.
func Compare(before, after []byte) error {
	a, b := Outline(before), Outline(after)
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y string
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			return &MismatchError{Index: i, Before: x, After: y}
		}
	}
	return nil
}
