package confetti

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math/rand"
	"time"
)

// GIFOptions controls RenderGIF.
type GIFOptions struct {
	Width      int
	Height     int
	Duration   time.Duration
	FPS        int
	Particles  int
	Seed       int64
	Background color.RGBA
}

func (o GIFOptions) withDefaults() GIFOptions {
	if o.Width <= 0 {
		o.Width = 480
	}
	if o.Height <= 0 {
		o.Height = 270
	}
	if o.Duration <= 0 {
		o.Duration = 1400 * time.Millisecond
	}
	if o.FPS <= 0 {
		o.FPS = 50
	}
	if o.Particles <= 0 {
		o.Particles = DefaultParticles
	}
	if o.Background == (color.RGBA{}) {
		o.Background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return o
}

// RenderGIF simulates one burst with synthetic frame timestamps and writes it
// as an animated GIF. The same seed always yields the same animation.
func RenderGIF(w io.Writer, opts GIFOptions) error {
	opts = opts.withDefaults()

	raster := NewRaster(opts.Width, opts.Height, opts.Background)
	width, height := raster.Size()
	particles := Spawn(rand.New(rand.NewSource(opts.Seed)), width, height, opts.Particles)

	palette := make(color.Palette, 0, len(Palette)+1)
	palette = append(palette, opts.Background)
	for _, c := range Palette {
		palette = append(palette, c)
	}

	step := time.Second / time.Duration(opts.FPS)
	delay := max(1, 100/opts.FPS)
	anim := &gif.GIF{LoopCount: -1}
	for elapsed := step; ; elapsed += step {
		done := drawFrame(raster, particles, elapsed, opts.Duration)
		anim.Image = append(anim.Image, toPaletted(raster.Snapshot(), palette))
		anim.Delay = append(anim.Delay, delay)
		if done {
			break
		}
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode confetti gif: %w", err)
	}
	return nil
}

func toPaletted(src *image.RGBA, palette color.Palette) *image.Paletted {
	dst := image.NewPaletted(src.Bounds(), palette)
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	return dst
}
