// This file delivers computed terms into caller-owned buffers.

package fibdev

import (
	"bytes"
	"fmt"
	"math/bits"
	"strconv"
	"sync"

	apperrors "github.com/agbru/fibdev/internal/errors"
)

// DefaultStagingLimit is the largest staging buffer PoolAllocator hands out
// when no explicit limit is configured.
const DefaultStagingLimit = 1 << 20

// MaxCallerBuffer is the most NewCallerBuffer allocates. A longer requested
// length still reaches Write, which refuses it with ErrOutOfMemory or
// ErrFault.
const MaxCallerBuffer = DefaultStagingLimit

// Allocator provides the transient staging buffers used by Transfer.
// Alloc returns a zeroed buffer of exactly size bytes or an error; every
// buffer obtained from Alloc is handed back through Free.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}

// ─────────────────────────────────────────────────────────────────────────────
// Staging Pools
// ─────────────────────────────────────────────────────────────────────────────

// stagingPools pools staging buffers by size class: 32, 128, 512, 2K, 8K bytes.
// A decimal int64 and its terminator fit the smallest class; larger classes
// serve callers asking for long transfers.
var stagingPools = [...]sync.Pool{
	{New: func() any { b := make([]byte, 32); return &b }},
	{New: func() any { b := make([]byte, 128); return &b }},
	{New: func() any { b := make([]byte, 512); return &b }},
	{New: func() any { b := make([]byte, 2048); return &b }},
	{New: func() any { b := make([]byte, 8192); return &b }},
}

// stagingSizes defines the size classes for staging pools.
var stagingSizes = [...]int{32, 128, 512, 2048, 8192}

// stagingPoolIndex returns the pool index for a given size, or -1 if the
// size is too large for pooling. Classes are powers of 4 starting at 32.
func stagingPoolIndex(size int) int {
	if size <= stagingSizes[0] {
		return 0
	}
	if size > stagingSizes[len(stagingSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 4) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// PoolAllocator serves staging buffers from size-classed sync.Pools and
// refuses requests above its limit.
type PoolAllocator struct {
	limit int
}

// NewPoolAllocator returns an allocator refusing requests above limit bytes.
// A non-positive limit selects DefaultStagingLimit.
func NewPoolAllocator(limit int) *PoolAllocator {
	if limit <= 0 {
		limit = DefaultStagingLimit
	}
	return &PoolAllocator{limit: limit}
}

// Limit returns the configured staging limit.
func (a *PoolAllocator) Limit() int { return a.limit }

// Alloc returns a zeroed buffer of size bytes.
func (a *PoolAllocator) Alloc(size int) ([]byte, error) {
	if size > a.limit {
		return nil, apperrors.MemoryError{Requested: uint64(size), Limit: uint64(a.limit)}
	}
	idx := stagingPoolIndex(size)
	if idx < 0 {
		return make([]byte, size), nil
	}
	buf := *(stagingPools[idx].Get().(*[]byte))
	clear(buf)
	return buf[:size], nil
}

// Free returns buf to its pool. Buffers that did not come from a pool are
// left to the garbage collector.
func (a *PoolAllocator) Free(buf []byte) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := stagingPoolIndex(c)
	if idx >= 0 && stagingSizes[idx] == c {
		full := buf[:c]
		stagingPools[idx].Put(&full)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Transfer
// ─────────────────────────────────────────────────────────────────────────────

// Transfer formats terms as decimal ASCII and copies them across the
// ownership boundary into caller buffers.
type Transfer struct {
	alloc Allocator
}

// NewTransfer returns a Transfer drawing staging buffers from alloc, or from
// a default PoolAllocator when alloc is nil.
func NewTransfer(alloc Allocator) *Transfer {
	if alloc == nil {
		alloc = NewPoolAllocator(0)
	}
	return &Transfer{alloc: alloc}
}

// Deliver writes the unsigned decimal form of value into dst[0:n].
//
// The n bytes written hold the digits followed by NUL padding; when n is
// shorter than the digits the output is truncated and not terminated. It
// fails with ErrOutOfMemory when no staging buffer of n bytes can be
// allocated and with ErrFault when dst[0:n] is not addressable, in which
// case dst is left untouched.
func (t *Transfer) Deliver(dst []byte, n int, value int64) error {
	if n < 0 {
		return apperrors.NewDeviceError("write", apperrors.EFAULT,
			fmt.Errorf("negative length %d", n))
	}
	staging, err := t.alloc.Alloc(n)
	if err != nil {
		return apperrors.NewDeviceError("write", apperrors.ENOMEM, err)
	}
	defer t.alloc.Free(staging)

	digits := strconv.AppendUint(make([]byte, 0, 20), uint64(value), 10)
	copy(staging, digits)

	if err := copyOut(dst, staging); err != nil {
		return apperrors.NewDeviceError("write", apperrors.EFAULT, err)
	}
	return nil
}

// copyOut copies all of src into dst, refusing when dst cannot hold it.
func copyOut(dst, src []byte) error {
	if len(src) == 0 {
		return nil
	}
	if dst == nil {
		return fmt.Errorf("nil destination for %d bytes", len(src))
	}
	if len(src) > len(dst) {
		return fmt.Errorf("destination holds %d bytes, %d requested", len(dst), len(src))
	}
	copy(dst, src)
	return nil
}

// NewCallerBuffer returns a zeroed destination for a write of n bytes. It
// holds at most MaxCallerBuffer bytes and is empty for negative n.
func NewCallerBuffer(n int) []byte {
	return make([]byte, min(max(n, 0), MaxCallerBuffer))
}

// TermText returns the delivered digits in buf, up to the first NUL byte.
func TermText(buf []byte) []byte {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return buf[:i]
	}
	return buf
}

// DecodeTerm parses the decimal term delivered by Write. Parsing stops at
// the first NUL byte.
func DecodeTerm(buf []byte) (int64, error) {
	v, err := strconv.ParseUint(string(TermText(buf)), 10, 64)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}
