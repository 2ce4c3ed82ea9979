package app

import (
	"fmt"
	"slices"

	"ledgl/gfx/fonts"
	"ledgl/gfx/framebuf"
	"ledgl/gfx/pixel"
	"ledgl/gfx/render"
	"ledgl/gfx/shape"
	"ledgl/gfx/texture"
	"ledgl/hal"

	"seehuhn.de/go/geom/vec"
)

// DemoOptions carries the knobs some demos read.
type DemoOptions struct {
	Font        string
	TexturePath string
	Log         hal.Logger
}

// Demo is an animated scene.
type Demo struct {
	Name string

	scene *shape.Collection
	step  func(frame uint64)
	draw  func(r *render.Renderer, fb *framebuf.FrameBuffer, frame uint64)
}

// Frame advances the demo to frame and encodes it into fb.
func (d *Demo) Frame(r *render.Renderer, fb *framebuf.FrameBuffer, frame uint64) {
	if d.step != nil {
		d.step(frame)
	}
	if d.draw != nil {
		d.draw(r, fb, frame)
		return
	}
	r.RenderTo(fb, d.scene)
}

// Scene returns the demo's root collection, nil for text-only demos.
func (d *Demo) Scene() *shape.Collection { return d.scene }

type demoFunc func(w, h int, opt DemoOptions) (*Demo, error)

var demos = map[string]demoFunc{
	"shapes":    shapesDemo,
	"solar":     solarDemo,
	"collision": collisionDemo,
	"text":      textDemo,
	"texture":   textureDemo,
	"qr":        qrDemo,
}

// DemoNames lists the available demos.
func DemoNames() []string {
	names := make([]string, 0, len(demos))
	for n := range demos {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// NewDemo builds the named demo for a w x h display.
func NewDemo(name string, w, h int, opt DemoOptions) (*Demo, error) {
	fn, ok := demos[name]
	if !ok {
		return nil, fmt.Errorf("unknown demo %q", name)
	}
	d, err := fn(w, h, opt)
	if err != nil {
		return nil, fmt.Errorf("demo %s: %w", name, err)
	}
	d.Name = name
	return d, nil
}

func shapesDemo(_, _ int, _ DemoOptions) (*Demo, error) {
	scene := shape.NewCollection(0, 0)
	scene.Add(shape.NewLineSegment(0, 20, 63, 35, pixel.White))
	scene.Add(shape.NewRectangle(6, 6, 6, 6, true, pixel.Red))
	scene.Add(shape.NewCircle(18, 6, 5, true, pixel.Blue))
	scene.Add(shape.NewRegularPolygon(48, 48, 6, 10, true, pixel.Green))
	scene.Add(shape.NewRegularPolygon(48, 16, 5, 8, true, pixel.Yellow))
	scene.Add(shape.NewPolygon(16, 48, []vec.Vec2{
		{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: 15}, {X: 0, Y: 10},
	}, true, pixel.Magenta))
	scene.Add(shape.NewLineSegment(32, 0, 20, 40, pixel.RGB(0, 100, 50)))
	scene.Add(shape.NewRectangle(25, 20, 8, 5, true, pixel.RGB(155, 0, 0)))
	scene.Add(shape.NewPoint(32, 42, pixel.RGB(155, 255, 255)))
	return &Demo{scene: scene}, nil
}

// solarDemo nests collections: the planets orbit the sun with their
// collection, and the moon orbits the earth with its own.
func solarDemo(_, _ int, _ DemoOptions) (*Demo, error) {
	grey := pixel.RGB(100, 100, 100)

	sun := shape.NewCollection(32, 32)
	sun.SetPivot(32, 32)
	sun.Add(shape.NewCircle(32, 32, 8, true, pixel.Yellow))

	planets := shape.NewCollection(32, 32)
	planets.SetPivot(32, 32)
	planets.SetZ(5)

	earth := shape.NewCircle(52, 32, 4, true, pixel.RGB(0, 150, 255))
	earth.SetZ(10)
	planets.Add(earth)
	alien := shape.NewCircle(12, 32, 4, true, pixel.RGB(0, 255, 100))
	alien.SetZ(10)
	planets.Add(alien)

	moons := shape.NewCollection(52, 32)
	moons.SetZ(10)
	moon := shape.NewCircle(60, 32, 2, true, pixel.RGB(200, 200, 200))
	moon.SetZ(10)
	moons.Add(moon)
	planets.Add(moons)
	sun.Add(planets)

	earthOrbit := shape.NewCircle(32, 32, 20, false, grey)
	earthOrbit.SetZ(1)
	sun.Add(earthOrbit)
	moonOrbit := shape.NewCircle(52, 32, 8, false, grey)
	moonOrbit.SetZ(1)
	planets.Add(moonOrbit)

	return &Demo{
		scene: sun,
		step: func(uint64) {
			planets.Rotate(1.5)
			moons.Rotate(3)
		},
	}, nil
}

// collisionDemo drops a block onto a triangle, which turns red while they
// touch.
func collisionDemo(_, h int, opt DemoOptions) (*Demo, error) {
	scene := shape.NewCollection(32, 32)
	triangle := shape.NewRegularPolygon(32, 60, 3, 4, true, pixel.Green)
	enemy := shape.NewRectangle(20, 0, 10, 10, true, pixel.Red)
	triangle.AddCollider(nil)
	enemy.AddCollider(nil)
	scene.Add(triangle)
	scene.Add(enemy)

	hit := false
	return &Demo{
		scene: scene,
		step: func(uint64) {
			enemy.Translate(0, 1)
			if enemy.Y() > float64(h) {
				enemy.SetY(-enemy.Height())
			}
			now := triangle.Intersects(enemy)
			if now {
				triangle.SetColor(pixel.Red)
			} else {
				triangle.SetColor(pixel.Green)
			}
			if now && !hit && opt.Log != nil {
				opt.Log.WriteLineString(fmt.Sprintf("collision: enemy y=%g", enemy.Y()))
			}
			hit = now
		},
	}, nil
}

func pickFont(name string) (fonts.Font, error) {
	switch name {
	case "", "tiny":
		return fonts.Default(), nil
	case "basic":
		return fonts.Basic(), nil
	case "mono":
		return fonts.Mono(10)
	default:
		return nil, fmt.Errorf("unknown font %q", name)
	}
}

// textDemo alternates between the alphabet and the symbol set.
func textDemo(_, _ int, opt DemoOptions) (*Demo, error) {
	font, err := pickFont(opt.Font)
	if err != nil {
		return nil, err
	}
	const period = 60
	return &Demo{
		draw: func(r *render.Renderer, fb *framebuf.FrameBuffer, frame uint64) {
			fb.Clear()
			if (frame/period)%2 == 1 {
				r.DrawTextTo(fb, "!\"#$%&'()*+,-./:;<=>?@[\\]^_`|~ ", 0, 0, font, pixel.Yellow, true)
				return
			}
			r.DrawTextTo(fb, "ABCDEFGHIJKLMNOPQRSTUVWXYZ", 0, 0, font, pixel.Red, true)
			r.DrawTextTo(fb, "abcdefghijklmnopqrstuvwxyz", 0, 24, font, pixel.Green, true)
			r.DrawTextTo(fb, "0123456789", 0, 48, font, pixel.Blue, true)
		},
	}, nil
}

// textureDemo spins an oversized textured square while the texture stays
// fixed to the screen.
func textureDemo(_, _ int, opt DemoOptions) (*Demo, error) {
	tex := brickTexture()
	if opt.TexturePath != "" {
		loaded, err := texture.LoadBMP(opt.TexturePath)
		if err != nil {
			if opt.Log != nil {
				opt.Log.WriteLineString(fmt.Sprintf("texture: %v", err))
			}
		} else {
			tex = loaded
		}
	}
	tex.SetWrapMode(texture.Repeat)

	scene := shape.NewCollection(29, 29)
	rect := shape.NewRectangle(-13, -13, 91, 91, true, pixel.White)
	rect.SetTexture(tex)
	rect.SetFixTexture(true)
	rect.SetTextureScale(4, 4)
	rect.SetPivot(32, 32)
	scene.Add(rect)

	return &Demo{
		scene: scene,
		step:  func(uint64) { rect.Rotate(1) },
	}, nil
}

// brickTexture is a 16x8 running-bond brick pattern.
func brickTexture() *texture.Texture {
	brick := pixel.RGB(170, 60, 40)
	mortar := pixel.RGB(90, 90, 90)
	rows := make([][]pixel.Color, 8)
	for y := range rows {
		rows[y] = make([]pixel.Color, 16)
		shift := 0
		if y >= 4 {
			shift = 4
		}
		for x := range rows[y] {
			if y%4 == 3 || (x+shift)%8 == 7 {
				rows[y][x] = mortar
			} else {
				rows[y][x] = brick
			}
		}
	}
	return texture.New(rows)
}

func qrDemo(w, h int, _ DemoOptions) (*Demo, error) {
	q, err := shape.NewQRCode(0, 0, "LEDGL DEMO", 1, pixel.White)
	if err != nil {
		return nil, err
	}
	n := float64(q.Modules())
	x, y := float64((w-q.Modules())/2), float64((h-q.Modules())/2)
	q.SetPosition(x, y)

	scene := shape.NewCollection(0, 0)
	scene.Add(shape.NewRectangle(x-2, y-2, n+4, n+4, false, pixel.Cyan))
	scene.Add(q)
	return &Demo{scene: scene}, nil
}
