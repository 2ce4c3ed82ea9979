package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/image/bmp"
)

var (
	ErrNotBMP            = errors.New("texture: not a BMP file")
	ErrUnsupportedFormat = errors.New("texture: unsupported BMP format")
)

const bmpMinSize = 54

// BI_RGB and BI_BITFIELDS.
const (
	bmpCompressionNone      = 0
	bmpCompressionBitfields = 3
)

// BMPInfo is the part of a BMP header checked before decoding.
type BMPInfo struct {
	Width, Height int
	BitsPerPixel  int
	Compression   uint32
	DataOffset    uint32
}

// ParseBMPHeader validates the fixed BMP header. Only uncompressed bottom-up
// 24 and 32 bit images are accepted.
func ParseBMPHeader(data []byte) (BMPInfo, error) {
	if len(data) < bmpMinSize {
		return BMPInfo{}, fmt.Errorf("%w: %d bytes", ErrNotBMP, len(data))
	}
	if data[0] != 'B' || data[1] != 'M' {
		return BMPInfo{}, fmt.Errorf("%w: bad signature 0x%04x", ErrNotBMP, binary.LittleEndian.Uint16(data))
	}
	info := BMPInfo{
		DataOffset:   binary.LittleEndian.Uint32(data[10:]),
		Width:        int(int32(binary.LittleEndian.Uint32(data[18:]))),
		Height:       int(int32(binary.LittleEndian.Uint32(data[22:]))),
		BitsPerPixel: int(binary.LittleEndian.Uint16(data[28:])),
		Compression:  binary.LittleEndian.Uint32(data[30:]),
	}
	if info.Width <= 0 || info.Height <= 0 {
		return info, fmt.Errorf("%w: dimensions %dx%d", ErrUnsupportedFormat, info.Width, info.Height)
	}
	if int(info.DataOffset) >= len(data) {
		return info, fmt.Errorf("%w: pixel data offset out of bounds", ErrUnsupportedFormat)
	}
	switch info.BitsPerPixel {
	case 24:
		if info.Compression != bmpCompressionNone {
			return info, fmt.Errorf("%w: compression %d", ErrUnsupportedFormat, info.Compression)
		}
	case 32:
		if info.Compression != bmpCompressionNone && info.Compression != bmpCompressionBitfields {
			return info, fmt.Errorf("%w: compression %d", ErrUnsupportedFormat, info.Compression)
		}
	default:
		return info, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedFormat, info.BitsPerPixel)
	}
	return info, nil
}

// DecodeBMP reads a BMP image into a texture. On any error the returned
// texture is invalid, never nil.
func DecodeBMP(r io.Reader) (*Texture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Invalid(), fmt.Errorf("texture: read: %w", err)
	}
	if _, err := ParseBMPHeader(data); err != nil {
		return Invalid(), err
	}
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return Invalid(), fmt.Errorf("texture: decode: %w", err)
	}
	return FromImage(img), nil
}

// LoadBMP reads a BMP file from disk.
func LoadBMP(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return Invalid(), fmt.Errorf("texture: %w", err)
	}
	defer f.Close()
	t, err := DecodeBMP(f)
	if err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
