package wrap_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/jcorbin/softbreak/internal/wrap"
)

func TestLine(t *testing.T) {
	for _, tc := range []struct {
		name  string
		col   int
		in    string
		split bool
		first string
		rest  string
	}{
		{name: "fits", col: 10, in: "short"},
		{name: "exactly fits", col: 10, in: "0123456789"},
		{
			name: "inside a word",
			col:  10, in: "one two three",
			split: true, first: "one two", rest: "three",
		},
		{
			name: "unordered item",
			col:  10, in: "- item one two three four",
			split: true, first: "- item one", rest: "  two three four",
		},
		{
			name: "ordered item",
			col:  10, in: "12. alpha beta gamma",
			split: true, first: "12. alpha", rest: "    beta gamma",
		},
		{
			name: "blockquote",
			col:  8, in: "> quoted text here",
			split: true, first: "> quoted", rest: "  text here",
		},
		{
			name: "indented",
			col:  12, in: "    indented words go here",
			split: true, first: "    indented", rest: "    words go here",
		},
		{
			name: "tab then spaces indent kept verbatim",
			col:  8, in: "\t  alpha beta",
			split: true, first: "\t  alpha", rest: "\t  beta",
		},
		{
			name: "tab only indent is not a lead-in",
			col:  8, in: "\talpha beta gamma",
			split: true, first: "\talpha", rest: "beta gamma",
		},
		{
			name: "tabbed item blanks tabs to spaces",
			col:  8, in: "\t- item words",
			split: true, first: "\t- item", rest: "   words",
		},
		{
			name: "leading long word",
			col:  5, in: "abcdefghijkl mno",
			split: true, first: "abcdefghijkl", rest: "mno",
		},
		{name: "leading long word then only spaces", col: 5, in: "abcdefghijkl   "},
		{name: "single token", col: 10, in: "xxxxxxxxxxxxxxxxxxxx"},
		{
			name: "trailing whitespace past col",
			col:  8, in: "one two   ",
			split: true, first: "one two", rest: "",
		},
		{name: "break would land in the lead-in", col: 10, in: "- xxxxxxxxxxxxxxxxxxx yyy"},
		{
			name: "tab separates words",
			col:  6, in: "one\ttwothree four",
			split: true, first: "one", rest: "twothree four",
		},
		{
			name: "space run at col",
			col:  9, in: "one two    three",
			split: true, first: "one two", rest: "three",
		},
		{
			name: "columns count characters",
			col:  8, in: "héllo wörld ñandú",
			split: true, first: "héllo", rest: "wörld ñandú",
		},
		{
			name: "invalid bytes kept as-is",
			col:  10, in: "ab\xff cd ef gh ij kl",
			split: true, first: "ab\xff cd ef", rest: "gh ij kl",
		},
		{
			name: "dash without space is content",
			col:  8, in: "-dashed words here",
			split: true, first: "-dashed", rest: "words here",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sp, ok := Line(tc.in, tc.col)
			if !assert.Equal(t, tc.split, ok, "expected split decision, got %v", sp) {
				return
			}
			if ok {
				assert.Equal(t, tc.first, sp.First, "expected first part")
				assert.Equal(t, tc.rest, sp.Second, "expected continuation")
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out string
	}{
		{"- x", "  "},
		{"-\tx", "  "},
		{"  - x", "    "},
		{"\t\t- x", "    "},
		{" \t- x", " "},
		{"3. x", "   "},
		{"10.\tx", "    "},
		{"  1.  x", "      "},
		{"> x", "  "},
		{"\t> x", "   "},
		{">x", ""},
		{"-x", ""},
		{"1.x", ""},
		{"    x", "    "},
		{"\t  x", "\t  "},
		{"\tx", ""},
		{"plain", ""},
		{"", ""},
	} {
		assert.Equal(t, tc.out, Prefix(tc.in), "expected prefix for %q", tc.in)
	}
}

func TestIsFence(t *testing.T) {
	for _, tc := range []struct {
		in string
		is bool
	}{
		{"```", true},
		{"```go", true},
		{"   ```", true},
		{"\t```", true},
		{"````", true},
		{"``", false},
		{"text ```", false},
		{"~~~", false},
		{"", false},
	} {
		assert.Equal(t, tc.is, IsFence(tc.in), "expected IsFence(%q)", tc.in)
	}
}

func TestSplit_String(t *testing.T) {
	sp := Split{First: "one two", Second: "three"}
	assert.Equal(t, "one two\nthree", sp.String())
}

func TestLine_properties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	leads := []string{"", "- ", "\t- ", "  - ", "1. ", "23.\t", "> ", "    ", "\t  ", "\t"}
	words := []string{"a", "be", "sea", "word", "longer", "extraordinary", "x\ty", "é"}
	seps := []string{" ", "  ", "\t", " \t"}

	for n := 0; n < 2000; n++ {
		var sb strings.Builder
		sb.WriteString(leads[rng.Intn(len(leads))])
		for i, m := 0, 1+rng.Intn(12); i < m; i++ {
			if i > 0 {
				sb.WriteString(seps[rng.Intn(len(seps))])
			}
			sb.WriteString(words[rng.Intn(len(words))])
		}
		if rng.Intn(4) == 0 {
			sb.WriteString("   ")
		}
		raw := sb.String()
		col := 2 + rng.Intn(30)

		sp, ok := Line(raw, col)
		line := []rune(raw)
		if len(line) <= col {
			assert.False(t, ok, "short line %q must be unchanged at col %v", raw, col)
			continue
		}
		if !ok {
			continue
		}

		first := []rune(sp.First)
		if !assert.True(t, strings.HasPrefix(raw, sp.First), "first part of %q must be a prefix: %v", raw, sp) {
			continue
		}
		if assert.NotEmpty(t, first, "first part of %q", raw) {
			last := first[len(first)-1]
			assert.False(t, last == ' ' || last == '\t', "first part of %q must end on a word: %v", raw, sp)
		}
		if len(first) < len(line) {
			next := line[len(first)]
			assert.True(t, next == ' ' || next == '\t', "split of %q must not be mid-word: %v", raw, sp)
		}

		prefix := Prefix(raw)
		assert.True(t, strings.HasPrefix(sp.Second, prefix), "continuation of %q must carry prefix %q: %v", raw, prefix, sp)
		assert.Equal(t, "", strings.Trim(prefix, " \t"), "prefix of %q must be blank", raw)
	}
}

func TestLine_keepsBytes(t *testing.T) {
	for _, raw := range []string{
		"ab\xff cd ef gh ij kl",
		"\xc3 \xe2\x82 words after bad bytes",
		"- caf\xe9 au lait with\x80 milk",
	} {
		sp, ok := Line(raw, 10)
		if !assert.True(t, ok, "expected %q to split", raw) {
			continue
		}
		assert.True(t, strings.HasPrefix(raw, sp.First), "first part of %q must be original bytes: %v", raw, sp)
		rest := strings.TrimPrefix(sp.Second, Prefix(raw))
		assert.True(t, strings.HasSuffix(raw, rest), "continuation of %q must be original bytes: %v", raw, sp)
	}
}

func TestLine_singleToken(t *testing.T) {
	for col := 2; col < 20; col++ {
		_, ok := Line(strings.Repeat("x", 20), col)
		assert.False(t, ok, "single token must be unchanged at col %v", col)
	}
}
