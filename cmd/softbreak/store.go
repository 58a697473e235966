package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/google/renameio"
)

var (
	errStoreNotExists = errors.New("document does not exist")
	errBufferClosed   = errors.New("write to closed buffer")
)

// store is where a document is read from, and its rewrite written to.
type store interface {
	name() string
	open() (io.ReadCloser, error)
	update() (cleanupWriteCloser, error)
}

// cleanupWriteCloser commits its content on Close; calling Cleanup without
// Close discards it. Cleanup after Close is a no-op, so it may be deferred.
type cleanupWriteCloser interface {
	io.WriteCloser
	Cleanup() error
}

// fsStore rewrites a file in place, atomically replacing it on Close.
type fsStore struct {
	filename string
	fileinfo os.FileInfo
}

func (fst *fsStore) name() string { return fst.filename }

func (fst *fsStore) open() (io.ReadCloser, error) {
	f, err := os.Open(fst.filename)
	if os.IsNotExist(err) {
		return nil, &os.PathError{Op: "open", Path: fst.filename, Err: errStoreNotExists}
	} else if err != nil {
		return nil, err
	}
	if fst.fileinfo, err = f.Stat(); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (fst *fsStore) update() (cleanupWriteCloser, error) {
	if fst.fileinfo == nil {
		info, err := os.Stat(fst.filename)
		if os.IsNotExist(err) {
			return nil, &os.PathError{Op: "update", Path: fst.filename, Err: errStoreNotExists}
		} else if err != nil {
			return nil, err
		}
		fst.fileinfo = info
	}
	pf, err := renameio.TempFile("", fst.filename)
	if err != nil {
		return nil, err
	}
	if err := pf.Chmod(fst.fileinfo.Mode().Perm()); err != nil {
		pf.Cleanup()
		return nil, err
	}
	return &pendingUpdateFile{PendingFile: pf}, nil
}

type pendingUpdateFile struct {
	*renameio.PendingFile
}

func (uf *pendingUpdateFile) Close() error { return uf.CloseAtomicallyReplace() }

// pipeStore reads from one stream and writes its update to another, as when
// filtering stdin to stdout, or printing a rewritten file.
type pipeStore struct {
	label string
	in    func() (io.ReadCloser, error)
	out   io.Writer
}

func stdioStore(in io.Reader, out io.Writer) *pipeStore {
	return &pipeStore{
		label: "<stdin>",
		in:    func() (io.ReadCloser, error) { return io.NopCloser(in), nil },
		out:   out,
	}
}

func printStore(filename string, out io.Writer) *pipeStore {
	fst := fsStore{filename: filename}
	return &pipeStore{label: filename, in: fst.open, out: out}
}

func (ps *pipeStore) name() string { return ps.label }
func (ps *pipeStore) open() (io.ReadCloser, error) { return ps.in() }

func (ps *pipeStore) update() (cleanupWriteCloser, error) {
	return &pendingBuffer{sink: func(s string) error {
		_, err := io.WriteString(ps.out, s)
		return err
	}}, nil
}

// memStore holds a document in memory.
type memStore struct {
	label   string
	cur     string
	defined bool
}

func (ms *memStore) name() string { return ms.label }

func (ms *memStore) open() (io.ReadCloser, error) {
	if !ms.defined {
		return nil, errStoreNotExists
	}
	return io.NopCloser(strings.NewReader(ms.cur)), nil
}

func (ms *memStore) update() (cleanupWriteCloser, error) {
	if !ms.defined {
		return nil, errStoreNotExists
	}
	pb := &pendingBuffer{sink: ms.set}
	pb.buf.Grow(len(ms.cur) + len(ms.cur)/8)
	return pb, nil
}

func (ms *memStore) set(content string) error {
	ms.cur = content
	ms.defined = true
	return nil
}

// pendingBuffer collects writes, handing them to sink on Close.
type pendingBuffer struct {
	buf    strings.Builder
	closed bool
	sink   func(string) error
}

func (pb *pendingBuffer) Write(p []byte) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.Write(p)
}

func (pb *pendingBuffer) WriteString(s string) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.WriteString(s)
}

func (pb *pendingBuffer) Close() error {
	if pb.closed {
		return nil
	}
	pb.closed = true
	return pb.sink(pb.buf.String())
}

func (pb *pendingBuffer) Cleanup() error {
	pb.closed = true
	return nil
}
