// Package framebuf packs pixel lists into the 8-byte wire records consumed by
// the display engine.
//
// Record layout (little-endian):
//
//	0..1  x  int16
//	2..3  y  int16
//	4     r
//	5     g
//	6     b
//	7     a  round(alpha*255)
//
// There is no header; a buffer is a plain concatenation of records.
package framebuf

import (
	"encoding/binary"
	"fmt"

	"ledgl/gfx/pixel"
	"ledgl/hal"
)

// RecordSize is the encoded size of one pixel.
const RecordSize = 8

// Oversize is how many records per display cell a FrameBuffer can hold, so
// overlapping shapes and text still fit into one frame.
const Oversize = 5

// FrameBuffer is a fixed-capacity byte buffer plus a write cursor.
//
// Clear only rewinds the cursor; stale bytes past it are never read.
type FrameBuffer struct {
	data []byte
	size int
}

// Capacity returns the byte capacity used for a width x height display.
func Capacity(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return width * height * RecordSize * Oversize
}

// New allocates a FrameBuffer for a width x height display.
func New(width, height int) *FrameBuffer {
	return &FrameBuffer{data: make([]byte, Capacity(width, height))}
}

// Alloc reserves the capacity from the primary memory pool, falling back to
// the secondary pool. When both refuse, it logs and returns a buffer with no
// capacity: every append is then dropped.
func Alloc(width, height int, mem hal.Memory, log hal.Logger) *FrameBuffer {
	n := Capacity(width, height)
	if mem == nil {
		return New(width, height)
	}
	for _, pool := range []hal.MemoryPool{mem.Primary(), mem.Secondary()} {
		if pool != nil && pool.Reserve(n) {
			return &FrameBuffer{data: make([]byte, n)}
		}
	}
	if log != nil {
		log.WriteLineString(fmt.Sprintf("framebuf: failed to allocate %d bytes", n))
	}
	return &FrameBuffer{}
}

// Clear rewinds the cursor.
func (f *FrameBuffer) Clear() { f.size = 0 }

// Len is the number of valid bytes.
func (f *FrameBuffer) Len() int { return f.size }

// Cap is the fixed capacity in bytes.
func (f *FrameBuffer) Cap() int { return len(f.data) }

// Records is the number of complete records written.
func (f *FrameBuffer) Records() int { return f.size / RecordSize }

// Bytes returns the valid prefix. It aliases the buffer.
func (f *FrameBuffer) Bytes() []byte { return f.data[:f.size] }

// Append encodes one pixel at the cursor. It reports false, leaving the
// buffer untouched, when a whole record no longer fits.
func (f *FrameBuffer) Append(p pixel.Pixel) bool {
	if f.size+RecordSize > len(f.data) {
		return false
	}
	PutRecord(f.data[f.size:], p)
	f.size += RecordSize
	return true
}

// AppendPixels encodes as many pixels as fit and returns that count.
func (f *FrameBuffer) AppendPixels(px []pixel.Pixel) int {
	for i, p := range px {
		if !f.Append(p) {
			return i
		}
	}
	return len(px)
}

// Reset rewinds the cursor and encodes px from offset zero.
func (f *FrameBuffer) Reset(px []pixel.Pixel) int {
	f.size = 0
	return f.AppendPixels(px)
}

// Pixels decodes the valid records, appending them to dst.
func (f *FrameBuffer) Pixels(dst []pixel.Pixel) []pixel.Pixel {
	Decode(f.Bytes(), func(p pixel.Pixel) {
		dst = append(dst, p)
	})
	return dst
}

// PutRecord encodes p into b[:RecordSize]. Coordinates are truncated to int16.
func PutRecord(b []byte, p pixel.Pixel) {
	_ = b[RecordSize-1]
	binary.LittleEndian.PutUint16(b[0:], uint16(int16(p.X)))
	binary.LittleEndian.PutUint16(b[2:], uint16(int16(p.Y)))
	b[4] = p.R
	b[5] = p.G
	b[6] = p.B
	b[7] = p.Alpha8()
}

// ReadRecord decodes one record from b[:RecordSize].
func ReadRecord(b []byte) pixel.Pixel {
	_ = b[RecordSize-1]
	return pixel.Pixel{
		X: int(int16(binary.LittleEndian.Uint16(b[0:]))),
		Y: int(int16(binary.LittleEndian.Uint16(b[2:]))),
		Color: pixel.Color{
			R: b[4],
			G: b[5],
			B: b[6],
			A: pixel.FromAlpha8(b[7]),
		},
	}
}

// Decode calls fn for every complete record in data. A trailing partial
// record is ignored.
func Decode(data []byte, fn func(pixel.Pixel)) {
	for off := 0; off+RecordSize <= len(data); off += RecordSize {
		fn(ReadRecord(data[off:]))
	}
}
