package buffers

import (
	"sync"
)

// MaxBlockSize is the largest SPECK block, in bytes.
const MaxBlockSize = 16

// BufferPool hands out fixed-size byte slices backed by a sync.Pool.
// A slice belongs to the caller between Get and Put.
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a pool of size-byte buffers.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		},
		size: size,
	}
}

// Size returns the length of the buffers handed out by Get.
func (p *BufferPool) Size() int { return p.size }

// Get returns a buffer of exactly Size bytes. Its content is unspecified.
func (p *BufferPool) Get() []byte {
	buffer := *(p.pool.Get().(*[]byte))
	if cap(buffer) < p.size {
		buffer = make([]byte, p.size)
	}
	return buffer[:p.size]
}

// GetN returns a buffer of n bytes, n <= Size.
func (p *BufferPool) GetN(n int) []byte {
	if n > p.size {
		return make([]byte, n)
	}
	return p.Get()[:n]
}

// Put returns buffer to the pool. The buffer is zeroed first since it may
// have held key-dependent data.
func (p *BufferPool) Put(buffer []byte) {
	if buffer == nil || cap(buffer) < p.size {
		return
	}
	buffer = buffer[:p.size]
	clear(buffer)
	p.pool.Put(&buffer)
}

// BlockPool serves scratch blocks for seal/open requests.
var BlockPool = NewBufferPool(MaxBlockSize)
