package confetti

import (
	"image"
	"image/color"
	"math"
	"sync"
)

// Surface is a 2D drawing target sized to the viewport.
type Surface interface {
	Size() (width, height float64)
	Clear()
	// FillRect fills a w×h rectangle centred on (cx, cy) and rotated by rot radians.
	FillRect(cx, cy, w, h, rot float64, c color.RGBA)
	// Flush ends a frame.
	Flush() error
}

// Raster is an in-memory Surface backed by an RGBA image.
type Raster struct {
	mu         sync.Mutex
	img        *image.RGBA
	background color.RGBA
}

// NewRaster allocates a width×height raster cleared to background.
func NewRaster(width, height int, background color.RGBA) *Raster {
	r := &Raster{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
	r.Clear()
	return r
}

func (r *Raster) Size() (float64, float64) {
	b := r.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (r *Raster) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	pix := r.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = r.background.R
		pix[i+1] = r.background.G
		pix[i+2] = r.background.B
		pix[i+3] = r.background.A
	}
}

// FillRect tests every pixel centre in the rotated rectangle's bounding
// circle against the rectangle in its local frame.
func (r *Raster) FillRect(cx, cy, w, h, rot float64, c color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()

	radius := math.Hypot(w, h) / 2
	bounds := r.img.Bounds()
	minX := max(bounds.Min.X, int(math.Floor(cx-radius)))
	maxX := min(bounds.Max.X, int(math.Ceil(cx+radius)))
	minY := max(bounds.Min.Y, int(math.Floor(cy-radius)))
	maxY := min(bounds.Max.Y, int(math.Ceil(cy+radius)))
	if minX >= maxX || minY >= maxY {
		return
	}

	sin, cos := math.Sincos(rot)
	halfW, halfH := w/2, h/2
	for y := minY; y < maxY; y++ {
		dy := float64(y) + 0.5 - cy
		for x := minX; x < maxX; x++ {
			dx := float64(x) + 0.5 - cx
			lx := dx*cos + dy*sin
			ly := -dx*sin + dy*cos
			if math.Abs(lx) <= halfW && math.Abs(ly) <= halfH {
				r.img.SetRGBA(x, y, c)
			}
		}
	}
}

func (r *Raster) Flush() error { return nil }

// Snapshot copies the current pixels.
func (r *Raster) Snapshot() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := image.NewRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}
