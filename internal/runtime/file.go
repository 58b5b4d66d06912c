package runtime

import (
	"bufio"
	"fmt"
	"io"
)

// FileMode names the three OPENFILE access modes.
type FileMode string

const (
	ModeRead   FileMode = "READ"
	ModeWrite  FileMode = "WRITE"
	ModeAppend FileMode = "APPEND"
)

// File is an open file handle as seen by pseudocode: a name, a mode, and
// (for READ) a line scanner that tracks end-of-file. The concrete
// io.ReadCloser or io.WriteCloser is supplied by the driver's file handler, so this
// package never touches the OS directly.
type File struct {
	Name    string
	Mode    FileMode
	handle  io.Closer
	scanner *bufio.Scanner
	writer  io.Writer
	eof     bool
}

// NewReadFile wraps an opened reader for READ mode.
func NewReadFile(name string, r io.ReadCloser) *File {
	return &File{Name: name, Mode: ModeRead, handle: r, scanner: bufio.NewScanner(r)}
}

// NewWriteFile wraps an opened writer for WRITE or APPEND mode.
func NewWriteFile(name string, mode FileMode, wc io.WriteCloser) *File {
	return &File{Name: name, Mode: mode, handle: wc, writer: wc}
}

// ReadLine returns the next line from a READ file. EOF is reported on the
// call that finds no further input, matching the source's "EOF becomes
// true only once a read actually fails" behaviour rather than peeking
// ahead.
func (f *File) ReadLine() (string, error) {
	if f.scanner == nil {
		return "", fmt.Errorf("file %q is not open for reading", f.Name)
	}
	if f.scanner.Scan() {
		return f.scanner.Text(), nil
	}
	f.eof = true
	if err := f.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// EOF reports whether the last ReadLine ran out of input.
func (f *File) EOF() bool { return f.eof }

// WriteLine appends a line (with trailing newline) to a WRITE/APPEND file.
func (f *File) WriteLine(s string) error {
	if f.writer == nil {
		return fmt.Errorf("file %q is not open for writing", f.Name)
	}
	_, err := fmt.Fprintln(f.writer, s)
	return err
}

// Close releases the underlying handle.
func (f *File) Close() error {
	if f.handle == nil {
		return nil
	}
	return f.handle.Close()
}

func (f *File) String() string {
	return fmt.Sprintf("FILE %q (%s)", f.Name, f.Mode)
}
