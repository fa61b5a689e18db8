package common

import "sync"

// ChunkPool manages fixed-size byte slices used for chunked reads
type ChunkPool struct {
	size int
	pool sync.Pool
}

// NewChunkPool creates a new pool handing out slices of exactly size bytes
func NewChunkPool(size int) *ChunkPool {
	if size <= 0 {
		size = 4096
	}
	cp := &ChunkPool{size: size}
	cp.pool.New = func() interface{} {
		b := make([]byte, size)
		return &b
	}
	return cp
}

// Size returns the length of slices handed out by the pool
func (cp *ChunkPool) Size() int {
	return cp.size
}

// Get retrieves a chunk from the pool
func (cp *ChunkPool) Get() *[]byte {
	return cp.pool.Get().(*[]byte)
}

// Put returns a chunk to the pool; slices of a foreign size are dropped
func (cp *ChunkPool) Put(b *[]byte) {
	if b == nil || len(*b) != cp.size {
		return
	}
	cp.pool.Put(b)
}
