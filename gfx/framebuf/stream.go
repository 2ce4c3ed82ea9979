package framebuf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// StreamMagic is "LEDF" in little-endian.
const StreamMagic = 0x4644454C

// StreamVersion is the only stream version understood.
const StreamVersion = 1

// HeaderSize is the fixed size of a stream header.
const HeaderSize = 16

var (
	ErrBadMagic   = errors.New("framebuf: invalid stream magic")
	ErrBadVersion = errors.New("framebuf: unsupported stream version")
	ErrBadFrame   = errors.New("framebuf: invalid frame length")
)

// Header describes a recorded frame stream.
//
// A stream is a header followed by frames, each a uint32 byte length and that
// many bytes of records.
type Header struct {
	Magic    uint32
	Version  uint16
	Width    uint16
	Height   uint16
	FPS      uint16
	Reserved [4]byte
}

// NewHeader returns a valid header for the given display.
func NewHeader(width, height, fps int) Header {
	return Header{
		Magic:   StreamMagic,
		Version: StreamVersion,
		Width:   uint16(width),
		Height:  uint16(height),
		FPS:     uint16(fps),
	}
}

// Validate checks the header invariants.
func (h *Header) Validate() error {
	if h.Magic != StreamMagic {
		return ErrBadMagic
	}
	if h.Version != StreamVersion {
		return ErrBadVersion
	}
	if h.Width == 0 || h.Height == 0 {
		return errors.New("framebuf: invalid stream geometry")
	}
	for i := range h.Reserved {
		if h.Reserved[i] != 0 {
			return errors.New("framebuf: reserved must be 0")
		}
	}
	return nil
}

// MaxFrameBytes is the largest frame a stream with this header may carry.
func (h *Header) MaxFrameBytes() int { return Capacity(int(h.Width), int(h.Height)) }

// WriteHeader writes h to w.
func WriteHeader(w io.Writer, h Header) error {
	if err := h.Validate(); err != nil {
		return err
	}
	var raw [HeaderSize]byte
	binary.LittleEndian.PutUint32(raw[0:4], h.Magic)
	binary.LittleEndian.PutUint16(raw[4:6], h.Version)
	binary.LittleEndian.PutUint16(raw[6:8], h.Width)
	binary.LittleEndian.PutUint16(raw[8:10], h.Height)
	binary.LittleEndian.PutUint16(raw[10:12], h.FPS)
	copy(raw[12:16], h.Reserved[:])
	_, err := w.Write(raw[:])
	return err
}

// ReadHeader reads and validates a stream header.
func ReadHeader(r io.Reader) (Header, error) {
	var raw [HeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return Header{}, fmt.Errorf("framebuf: read header: %w", err)
	}
	h := Header{
		Magic:   binary.LittleEndian.Uint32(raw[0:4]),
		Version: binary.LittleEndian.Uint16(raw[4:6]),
		Width:   binary.LittleEndian.Uint16(raw[6:8]),
		Height:  binary.LittleEndian.Uint16(raw[8:10]),
		FPS:     binary.LittleEndian.Uint16(raw[10:12]),
	}
	copy(h.Reserved[:], raw[12:16])
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// WriteFrame writes the valid bytes of fb as one frame.
func WriteFrame(w io.Writer, fb *FrameBuffer) error {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(fb.Len()))
	if _, err := w.Write(n[:]); err != nil {
		return err
	}
	_, err := w.Write(fb.Bytes())
	return err
}

// ReadFrame reads the next frame into buf and returns the frame bytes.
// It returns io.EOF at a clean end of stream.
func ReadFrame(r io.Reader, h *Header, buf []byte) ([]byte, error) {
	var n [4]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("framebuf: short frame length: %w", err)
		}
		return nil, err
	}
	size := int(binary.LittleEndian.Uint32(n[:]))
	if size%RecordSize != 0 || size > h.MaxFrameBytes() {
		return nil, fmt.Errorf("%w: %d", ErrBadFrame, size)
	}
	if cap(buf) < size {
		buf = make([]byte, size)
	}
	buf = buf[:size]
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("framebuf: read frame: %w", err)
	}
	return buf, nil
}
