// File: stream.go
// Title: Lookahead Byte Stream
// Description: Buffered forward-only byte cursor over a script source with
//              multi-byte peek, offset/line/column tracking and a short tail
//              of consumed bytes for error snippets.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial stream implementation

package parser

import (
	"bufio"
	"errors"
	"io"
)

const (
	// DefaultWindowSize is the default lookahead window in bytes
	DefaultWindowSize = 512

	// MinWindowSize is the smallest accepted window
	MinWindowSize = 128

	// refillThreshold is the buffered size below which PeekAll refills
	refillThreshold = 100

	// DefaultSnippetLength is how many bytes of context an error carries
	// on each side of the failure position
	DefaultSnippetLength = 32
)

// Position represents a position in the source
type Position struct {
	Offset int64 // Byte offset (0-based)
	Line   int   // Line number (1-based)
	Column int   // Column number (1-based)
}

// Stream is a forward-only cursor with lookahead. Reading past the end of
// input yields empty results; callers treat that as end of stream.
type Stream struct {
	r      *bufio.Reader
	window int
	pos    Position

	tail    []byte
	tailMax int

	err error // sticky non-EOF read error
}

// NewStream creates a stream reading from r with a lookahead window of
// window bytes. Values below MinWindowSize are raised to it.
func NewStream(r io.Reader, window int) *Stream {
	if window < MinWindowSize {
		window = MinWindowSize
	}
	return &Stream{
		r:       bufio.NewReaderSize(r, window),
		window:  window,
		pos:     Position{Line: 1, Column: 1},
		tailMax: DefaultSnippetLength,
	}
}

// SetTailSize sets how many consumed bytes are retained for snippets
func (s *Stream) SetTailSize(n int) {
	if n > 0 {
		s.tailMax = n
	}
}

// Peek returns up to n unconsumed bytes without advancing. The returned
// slice is only valid until the next read.
func (s *Stream) Peek(n int) []byte {
	if n > s.window {
		n = s.window
	}
	b, err := s.r.Peek(n)
	s.record(err)
	return b
}

// PeekAll returns the buffered lookahead window. When fewer than
// refillThreshold bytes are buffered the window is refilled first, so prefix
// matching always sees as much input as is available.
func (s *Stream) PeekAll() []byte {
	if n := s.r.Buffered(); n >= refillThreshold {
		return s.Peek(n)
	}
	return s.Peek(s.window)
}

// PeekByte returns the next byte without advancing
func (s *Stream) PeekByte() (byte, bool) {
	b := s.Peek(1)
	if len(b) == 0 {
		return 0, false
	}
	return b[0], true
}

// HasPrefix reports whether the unconsumed input starts with token
func (s *Stream) HasPrefix(token string) bool {
	b := s.Peek(len(token))
	return len(b) == len(token) && string(b) == token
}

// Next consumes one byte
func (s *Stream) Next() (byte, bool) {
	b, err := s.r.ReadByte()
	if err != nil {
		s.record(err)
		return 0, false
	}
	s.advance(b)
	return b, true
}

// Read consumes and returns up to n bytes
func (s *Stream) Read(n int) []byte {
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		b, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, b)
	}
	return out
}

// Skip consumes len(token) bytes
func (s *Stream) Skip(token string) {
	s.Read(len(token))
}

// Offset returns the number of bytes consumed so far
func (s *Stream) Offset() int64 {
	return s.pos.Offset
}

// Position returns the current cursor position
func (s *Stream) Position() Position {
	return s.pos
}

// Recent returns the most recently consumed bytes, at most the tail size
func (s *Stream) Recent() []byte {
	if len(s.tail) <= s.tailMax {
		return s.tail
	}
	return s.tail[len(s.tail)-s.tailMax:]
}

// Err returns the first read error other than io.EOF
func (s *Stream) Err() error {
	return s.err
}

func (s *Stream) advance(b byte) {
	s.pos.Offset++
	if b == '\n' {
		s.pos.Line++
		s.pos.Column = 1
	} else {
		s.pos.Column++
	}

	s.tail = append(s.tail, b)
	if len(s.tail) >= 2*s.tailMax {
		n := copy(s.tail, s.tail[len(s.tail)-s.tailMax:])
		s.tail = s.tail[:n]
	}
}

func (s *Stream) record(err error) {
	if err == nil || s.err != nil {
		return
	}
	if errors.Is(err, io.EOF) || errors.Is(err, bufio.ErrBufferFull) {
		return
	}
	s.err = err
}
