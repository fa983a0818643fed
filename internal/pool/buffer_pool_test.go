package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkBufferPool(t *testing.T) {
	p := NewChunkBufferPool(16)
	buf := p.Get()
	assert.Len(t, buf.Bytes, 16)

	buf.Bytes = buf.Bytes[:3]
	p.Put(buf)

	again := p.Get()
	assert.Len(t, again.Bytes, 16)
}

func TestLineBufferPoolResets(t *testing.T) {
	p := NewLineBufferPool()
	buf := p.Get()
	buf.Bytes = append(buf.Bytes, "ham"...)
	p.Put(buf)

	assert.Empty(t, buf.Bytes)
	assert.Empty(t, p.Get().Bytes)
}
