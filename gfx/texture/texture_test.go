package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"ledgl/gfx/pixel"

	"golang.org/x/image/bmp"
)

func checker() *Texture {
	return New([][]pixel.Color{
		{pixel.Red, pixel.Green},
		{pixel.Blue, pixel.White},
	})
}

func TestSampleRepeat(t *testing.T) {
	tex := checker()
	tests := []struct {
		u, v int
		want pixel.Color
	}{
		{0, 0, pixel.Red},
		{1, 1, pixel.White},
		{2, 0, pixel.Red},
		{-1, 0, pixel.Green},
		{-1, -1, pixel.White},
		{5, 4, pixel.Green},
	}
	for _, tt := range tests {
		if got := tex.Sample(tt.u, tt.v); got != tt.want {
			t.Fatalf("sample(%d,%d): expected %v, got %v", tt.u, tt.v, tt.want, got)
		}
	}
}

func TestSampleClamp(t *testing.T) {
	tex := checker()
	tex.SetWrapMode(Clamp)
	if got := tex.Sample(-5, 9); got != pixel.Blue {
		t.Fatalf("expected blue, got %v", got)
	}
	if got := tex.Sample(9, -5); got != pixel.Green {
		t.Fatalf("expected green, got %v", got)
	}
}

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

func TestWrapModeNameFallback(t *testing.T) {
	tex := checker()
	tex.SetWrapMode(Clamp)
	var log lines
	tex.SetWrapModeName("mirror", &log)
	if tex.WrapMode() != Repeat || len(log) != 1 {
		t.Fatalf("expected fallback to repeat with a warning, got %v %v", tex.WrapMode(), log)
	}
}

func TestInvalidSamplesBlack(t *testing.T) {
	if got := Invalid().Sample(0, 0); got != pixel.Black {
		t.Fatalf("expected black, got %v", got)
	}
	if New([][]pixel.Color{{pixel.Red}, {}}).Valid() {
		t.Fatalf("expected ragged rows to be invalid")
	}
}

func encodeBMP(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 0xFF})
	img.Set(2, 1, color.RGBA{R: 200, G: 100, B: 50, A: 0xFF})
	for _, p := range []image.Point{{1, 0}, {2, 0}, {0, 1}, {1, 1}} {
		img.Set(p.X, p.Y, color.RGBA{A: 0xFF})
	}
	tex, err := DecodeBMP(bytes.NewReader(encodeBMP(t, img)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tex.Width() != 3 || tex.Height() != 2 {
		t.Fatalf("expected 3x2, got %dx%d", tex.Width(), tex.Height())
	}
	if got := tex.Sample(0, 0); got != pixel.RGB(10, 20, 30) {
		t.Fatalf("expected top-left 10,20,30 got %v", got)
	}
	if got := tex.Sample(2, 1); got != pixel.RGB(200, 100, 50) {
		t.Fatalf("expected bottom-right 200,100,50 got %v", got)
	}
}

func TestDecodeBMPRejects(t *testing.T) {
	if tex, err := DecodeBMP(bytes.NewReader([]byte("BM"))); !errors.Is(err, ErrNotBMP) || tex.Valid() {
		t.Fatalf("expected ErrNotBMP for short input, got %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	data := encodeBMP(t, img)

	bad := append([]byte(nil), data...)
	bad[0] = 'X'
	if _, err := DecodeBMP(bytes.NewReader(bad)); !errors.Is(err, ErrNotBMP) {
		t.Fatalf("expected ErrNotBMP for bad signature, got %v", err)
	}

	topDown := append([]byte(nil), data...)
	binary.LittleEndian.PutUint32(topDown[22:], uint32(0xFFFFFFFE)) // -2
	if _, err := DecodeBMP(bytes.NewReader(topDown)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected top-down image to be rejected, got %v", err)
	}

	paletted := append([]byte(nil), data...)
	binary.LittleEndian.PutUint16(paletted[28:], 8)
	if _, err := DecodeBMP(bytes.NewReader(paletted)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected 8 bpp image to be rejected, got %v", err)
	}
}
