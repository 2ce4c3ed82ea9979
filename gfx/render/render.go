// Package render flattens a shape scene into a pixel list for one frame.
package render

import (
	"fmt"

	"ledgl/gfx/fonts"
	"ledgl/gfx/framebuf"
	"ledgl/gfx/pixel"
	"ledgl/gfx/shape"
	"ledgl/hal"
)

const (
	// MaxSize bounds each canvas dimension.
	MaxSize = 512

	fallbackSize = 64
)

// Renderer rasterizes scenes onto a fixed-size canvas.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	w, h int
	log  hal.Logger

	// slot maps a canvas cell to its index+1 in the list being built, 0 when
	// the cell has not been written this frame.
	slot    []int32
	scratch []pixel.Pixel
}

// New returns a renderer for a width x height canvas. Sizes outside
// (0, MaxSize] fall back to 64x64.
func New(width, height int, log hal.Logger) *Renderer {
	if width <= 0 || width > MaxSize || height <= 0 || height > MaxSize {
		if log != nil {
			log.WriteLineString(fmt.Sprintf("render: invalid size %dx%d, using %dx%d",
				width, height, fallbackSize, fallbackSize))
		}
		width, height = fallbackSize, fallbackSize
	}
	return &Renderer{
		w:    width,
		h:    height,
		log:  log,
		slot: make([]int32, width*height),
	}
}

func (r *Renderer) Width() int  { return r.w }
func (r *Renderer) Height() int { return r.h }

// Render clears dst and fills it with the pixels of scene, in paint order.
// A pixel painted twice keeps its first position in the list and takes the
// later color.
func (r *Renderer) Render(dst []pixel.Pixel, scene *shape.Collection) []pixel.Pixel {
	dst = dst[:0]
	if scene == nil {
		return dst
	}
	clear(r.slot)
	c := &canvas{r: r, out: dst, dedupe: true}
	shape.Draw(c, scene)
	return c.out
}

// DrawText appends the lit pixels of text to dst, starting with the top-left
// corner of the first cell at (x, y). A newline starts a new line; with wrap
// set, so does a glyph that would cross the right edge of the canvas. A nil
// font draws nothing.
func (r *Renderer) DrawText(dst []pixel.Pixel, text string, x, y int, font fonts.Font, c pixel.Color, wrap bool) []pixel.Pixel {
	if font == nil {
		return dst
	}
	cv := &canvas{r: r, out: dst}
	lineH := font.Height()
	cx, cy := x, y
	for _, ch := range text {
		if ch == '\n' {
			cx, cy = x, cy+lineH
			continue
		}
		if wrap && cx > x && cx+font.CharWidth(ch) > r.w {
			cx, cy = x, cy+lineH
		}
		ox, oy := cx, cy
		font.Glyph(ch, func(gx, gy int) {
			cv.SetPixel(ox+gx, oy+gy, c)
		})
		cx += fonts.Advance(font, ch)
	}
	return cv.out
}

// RenderTo renders scene into fb, replacing its contents. Pixels past the
// buffer capacity are dropped.
func (r *Renderer) RenderTo(fb *framebuf.FrameBuffer, scene *shape.Collection) {
	if fb == nil {
		r.logf("render: invalid FrameBuffer")
		return
	}
	r.scratch = r.Render(r.scratch, scene)
	fb.Reset(r.scratch)
}

// DrawTextTo appends text to fb after what it already holds. A nil font uses
// the default font.
func (r *Renderer) DrawTextTo(fb *framebuf.FrameBuffer, text string, x, y int, font fonts.Font, c pixel.Color, wrap bool) {
	if fb == nil {
		return
	}
	if font == nil {
		font = fonts.Default()
	}
	r.scratch = r.DrawText(r.scratch[:0], text, x, y, font, c, wrap)
	if n := fb.AppendPixels(r.scratch); n < len(r.scratch) {
		r.logf("render: FrameBuffer overflow")
	}
}

func (r *Renderer) logf(format string, args ...any) {
	if r.log == nil {
		return
	}
	r.log.WriteLineString(fmt.Sprintf(format, args...))
}

// canvas collects pixels clipped to the renderer bounds.
type canvas struct {
	r      *Renderer
	out    []pixel.Pixel
	dedupe bool
}

func (c *canvas) Size() (int, int) { return c.r.w, c.r.h }

func (c *canvas) SetPixel(x, y int, col pixel.Color) {
	if x < 0 || y < 0 || x >= c.r.w || y >= c.r.h {
		return
	}
	p := pixel.Pixel{X: x, Y: y, Color: col}
	if !c.dedupe {
		c.out = append(c.out, p)
		return
	}
	i := y*c.r.w + x
	if s := c.r.slot[i]; s > 0 {
		c.out[s-1] = p
		return
	}
	c.out = append(c.out, p)
	c.r.slot[i] = int32(len(c.out))
}
