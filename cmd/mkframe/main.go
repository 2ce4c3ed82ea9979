package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"
	"time"

	"ledgl/app"
	"ledgl/gfx/display"
	"ledgl/gfx/framebuf"
	"ledgl/gfx/render"
	"ledgl/hal"

	xdraw "golang.org/x/image/draw"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Input .ledf file (decode mode).")
		outPath = flag.String("out", "", "Output file (.ledf for encode, .png for decode).")
		mode    = flag.String("mode", "encode", "encode|decode.")
		demo    = flag.String("demo", "shapes", "Demo to record: "+strings.Join(app.DemoNames(), ", ")+".")
		width   = flag.Int("width", 64, "Display width in LEDs.")
		height  = flag.Int("height", 64, "Display height in LEDs.")
		frames  = flag.Int("frames", 60, "Frames to record.")
		fps     = flag.Int("fps", 30, "Frame rate stored in the header.")
		font    = flag.String("font", "tiny", "Text demo font: tiny, basic, mono.")
		index   = flag.Int("frame", -1, "Frame to decode (-1 = last).")
		scale   = flag.Int("scale", 8, "PNG pixels per LED.")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: mkframe -mode encode -demo solar -out out.ledf [-frames 60] [-width 64 -height 64]\n       mkframe -mode decode -in in.ledf -out out.png [-frame N] [-scale 8]")
	}

	switch strings.ToLower(*mode) {
	case "encode":
		if err := encodeDemo(*outPath, *demo, *font, *width, *height, *frames, *fps); err != nil {
			fatalf("encode: %v", err)
		}
	case "decode":
		if *inPath == "" {
			fatalf("decode: -in is required")
		}
		if err := decodeToPNG(*inPath, *outPath, *index, *scale); err != nil {
			fatalf("decode: %v", err)
		}
	default:
		fatalf("unknown mode: %s", *mode)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

type stderrLogger struct{}

func (stderrLogger) WriteLineString(s string) { _, _ = fmt.Fprintln(os.Stderr, s) }
func (stderrLogger) WriteLineBytes(b []byte)  { _, _ = fmt.Fprintln(os.Stderr, string(b)) }

func encodeDemo(outPath, name, font string, w, h, frames, fps int) error {
	if frames <= 0 {
		return fmt.Errorf("frames out of range: %d", frames)
	}
	hdr := framebuf.NewHeader(w, h, fps)
	if err := hdr.Validate(); err != nil {
		return err
	}
	d, err := app.NewDemo(name, w, h, app.DemoOptions{Font: font, Log: stderrLogger{}})
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriterSize(out, 64*1024)

	if err := framebuf.WriteHeader(bw, hdr); err != nil {
		return err
	}
	r := render.New(w, h, stderrLogger{})
	fb := framebuf.New(w, h)
	for i := 0; i < frames; i++ {
		fb.Clear()
		d.Frame(r, fb, uint64(i))
		if err := framebuf.WriteFrame(bw, fb); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// decodeToPNG replays the stream through a display engine on a virtual panel
// and saves what the LEDs show after the selected frame.
func decodeToPNG(inPath, outPath string, index, scale int) error {
	if scale <= 0 {
		return fmt.Errorf("scale out of range: %d", scale)
	}
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()
	br := bufio.NewReader(in)

	hdr, err := framebuf.ReadHeader(br)
	if err != nil {
		return err
	}
	w, h := int(hdr.Width), int(hdr.Height)

	drv := &hal.VirtualDriver{}
	e := display.New(drv, nil, nil, stderrLogger{}, display.Config{PanelWidth: w, PanelHeight: h, ChainLength: 1})
	e.Start()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.WaitReady(ctx); err != nil {
		return fmt.Errorf("virtual panel: %w", err)
	}

	var buf []byte
	n := 0
	for index < 0 || n <= index {
		buf, err = framebuf.ReadFrame(br, &hdr, buf)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", n, err)
		}
		e.SetBufferFromRaw(buf, len(buf), true)
		n++
	}
	if n == 0 {
		return fmt.Errorf("no frames")
	}
	if index >= 0 && n <= index {
		return fmt.Errorf("frame %d out of range (%d frames)", index, n)
	}

	rgb := drv.Panel().Snapshot(nil)
	src := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			src.SetNRGBA(x, y, color.NRGBA{R: rgb[i], G: rgb[i+1], B: rgb[i+2], A: 0xFF})
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w*scale, h*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(out, dst); err != nil {
		_ = out.Close()
		return err
	}
	st := e.Stats()
	fmt.Fprintf(os.Stderr, "decoded %d frames, %d LED writes\n", n, st.Writes)
	return out.Close()
}
