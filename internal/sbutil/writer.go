package sbutil

import (
	"bytes"
	"io"
)

// WriteBuffer accumulates output in a byte buffer, handing complete chunks
// to To as decided by its FlushPolicy.
type WriteBuffer struct {
	FlushPolicy
	To io.Writer
	bytes.Buffer
}

// FlushPolicy decides how many leading bytes of a WriteBuffer are ready to
// be flushed; 0 means none.
type FlushPolicy interface {
	ShouldFlush(b []byte) int
}

// FlushPolicyFunc adapts a function to FlushPolicy.
type FlushPolicyFunc func(b []byte) int

// ShouldFlush calls f.
func (f FlushPolicyFunc) ShouldFlush(b []byte) int { return f(b) }

// Flush writes everything buffered into To, regardless of FlushPolicy.
func (buf *WriteBuffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return err
}

// MaybeFlush writes however many bytes FlushPolicy allows into To,
// defaulting to FlushLineChunks.
func (buf *WriteBuffer) MaybeFlush() error {
	if buf.FlushPolicy == nil {
		buf.FlushPolicy = FlushPolicyFunc(FlushLineChunks)
	}
	b := buf.Bytes()
	if n := buf.ShouldFlush(b); n > 0 {
		m, err := buf.To.Write(b[:n])
		buf.Next(m)
		return err
	}
	return nil
}

// FlushLineChunks flushes through the last buffered newline.
func FlushLineChunks(b []byte) int {
	return bytes.LastIndexByte(b, '\n') + 1
}

// ErrWriter latches the first error returned by Writer, refusing any later
// write.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes p through to Writer until an error has been seen.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// WriteLines calls next with a buffered writer until it returns false or a
// write fails, flushing complete lines after each call.
func WriteLines(to io.Writer, next func(w io.Writer) bool) error {
	ew, _ := to.(*ErrWriter)
	if ew == nil {
		ew = &ErrWriter{Writer: to}
	}
	var buf WriteBuffer
	buf.To = ew
	for ew.Err == nil && next(&buf) {
		buf.MaybeFlush()
	}
	buf.Flush()
	return ew.Err
}
