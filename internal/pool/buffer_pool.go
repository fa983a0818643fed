package pool

import (
	"sync"
)

// ChunkBuffer is a fixed-size buffer used for chunked reads.
type ChunkBuffer struct {
	Bytes []byte
}

// ChunkBufferPool implements a pool of chunk buffers for efficient memory reuse
type ChunkBufferPool struct {
	pool      sync.Pool
	chunkSize int
}

// NewChunkBufferPool creates a new chunk buffer pool with buffers of the specified size
func NewChunkBufferPool(chunkSize int) *ChunkBufferPool {
	return &ChunkBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &ChunkBuffer{Bytes: make([]byte, chunkSize)}
			},
		},
		chunkSize: chunkSize,
	}
}

// Get retrieves a chunk buffer from the pool or creates a new one if none are available
func (cbp *ChunkBufferPool) Get() *ChunkBuffer {
	buffer := cbp.pool.Get().(*ChunkBuffer)

	// Ensure buffer has correct size
	if cap(buffer.Bytes) < cbp.chunkSize {
		buffer.Bytes = make([]byte, cbp.chunkSize)
	} else {
		buffer.Bytes = buffer.Bytes[:cbp.chunkSize]
	}

	return buffer
}

// Put returns a chunk buffer to the pool for reuse
func (cbp *ChunkBufferPool) Put(cb *ChunkBuffer) {
	cbp.pool.Put(cb)
}

// LineBuffer accumulates the bytes of one line.
type LineBuffer struct {
	Bytes []byte
}

// LineBufferPool implements a pool of line buffers
type LineBufferPool struct {
	pool sync.Pool
}

// NewLineBufferPool creates a new line buffer pool
func NewLineBufferPool() *LineBufferPool {
	return &LineBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				// Most messages are under 256 bytes
				return &LineBuffer{Bytes: make([]byte, 0, 256)}
			},
		},
	}
}

// Get retrieves a line buffer from the pool
func (lbp *LineBufferPool) Get() *LineBuffer {
	return lbp.pool.Get().(*LineBuffer)
}

// Put returns a line buffer to the pool
func (lbp *LineBufferPool) Put(lb *LineBuffer) {
	// Reset length but keep capacity
	lb.Bytes = lb.Bytes[:0]
	lbp.pool.Put(lb)
}
