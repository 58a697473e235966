// Command softbreak inserts soft line breaks into markdown documents so that
// no line runs past a column limit, keeping list, blockquote, and indented
// text aligned and leaving fenced code alone.
package main

import (
	"io"
	"log"
	"os"
)

const logPrefix = "softbreak: "

func main() {
	log.SetFlags(0)
	log.SetPrefix(logPrefix)
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		log.Fatalln(err)
	}
}

// verbose returns a logger writing to w when on, and discarding otherwise.
func verbose(on bool, w io.Writer) *log.Logger {
	if !on {
		w = io.Discard
	}
	return log.New(w, logPrefix, 0)
}
