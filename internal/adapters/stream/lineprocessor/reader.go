package lineprocessor

import (
	"bytes"
	"io"

	"github.com/baditaflorin/go_sms_normalizer/internal/pool"
)

// Constants for line reading
const (
	// DefaultChunkSize defines the default size of each chunk for reading
	DefaultChunkSize = 64 * 1024 // 64KB

	// Common newline characters
	CR = '\r'
	LF = '\n'
)

var (
	chunkPools = map[int]*pool.ChunkBufferPool{
		DefaultChunkSize: pool.NewChunkBufferPool(DefaultChunkSize),
	}
	linePool = pool.NewLineBufferPool()
)

// Reader splits a byte stream into lines using pooled chunk buffers.
//
// Lines may end in LF (Unix), CRLF (Windows) or a lone CR (old Mac); a final
// line without a terminator is still returned. Reader is not safe for
// concurrent use.
type Reader struct {
	src   io.Reader
	chunk *pool.ChunkBuffer
	line  *pool.LineBuffer
	cpool *pool.ChunkBufferPool

	buf []byte // unread part of the current chunk
	pos int

	// skipLF is set after a CR terminator so that a following LF, possibly
	// in the next chunk, is treated as part of the same CRLF break.
	skipLF bool
	reset  bool
	err    error

	lines int
	bytes int64
}

// NewReader creates a line reader with the default chunk size.
func NewReader(src io.Reader) *Reader {
	return NewReaderSize(src, DefaultChunkSize)
}

// NewReaderSize creates a line reader reading chunkSize bytes at a time.
func NewReaderSize(src io.Reader, chunkSize int) *Reader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	cp, ok := chunkPools[chunkSize]
	if !ok {
		cp = pool.NewChunkBufferPool(chunkSize)
	}
	return &Reader{
		src:   src,
		chunk: cp.Get(),
		line:  linePool.Get(),
		cpool: cp,
	}
}

// Next returns the next line without its terminator. The returned slice is
// only valid until the following call. At the end of input Next returns
// io.EOF; read errors are returned as they occur.
func (r *Reader) Next() ([]byte, error) {
	if r.chunk == nil {
		return nil, io.EOF
	}
	if r.reset {
		r.line.Bytes = r.line.Bytes[:0]
		r.reset = false
	}

	for {
		if r.skipLF && r.pos < len(r.buf) {
			if r.buf[r.pos] == LF {
				r.pos++
			}
			r.skipLF = false
		}

		if i := bytes.IndexAny(r.buf[r.pos:], "\r\n"); i >= 0 {
			end := r.pos + i
			r.line.Bytes = append(r.line.Bytes, r.buf[r.pos:end]...)
			r.skipLF = r.buf[end] == CR
			r.pos = end + 1
			return r.emit(), nil
		}

		// Carry the partial line over to the next chunk
		r.line.Bytes = append(r.line.Bytes, r.buf[r.pos:]...)
		r.pos = len(r.buf)

		if r.err != nil {
			if r.err != io.EOF {
				return nil, r.err
			}
			if len(r.line.Bytes) > 0 {
				return r.emit(), nil
			}
			return nil, io.EOF
		}

		n, err := r.src.Read(r.chunk.Bytes)
		r.bytes += int64(n)
		r.buf = r.chunk.Bytes[:n]
		r.pos = 0
		if err != nil {
			r.err = err
		}
	}
}

func (r *Reader) emit() []byte {
	r.lines++
	r.reset = true
	return r.line.Bytes
}

// Lines returns the number of lines returned so far.
func (r *Reader) Lines() int {
	return r.lines
}

// BytesRead returns the number of bytes consumed from the source.
func (r *Reader) BytesRead() int64 {
	return r.bytes
}

// Close releases the reader's buffers. It does not close the source.
func (r *Reader) Close() error {
	if r.chunk == nil {
		return nil
	}
	r.cpool.Put(r.chunk)
	linePool.Put(r.line)
	r.chunk, r.line, r.buf = nil, nil, nil
	return nil
}
