package confetti

import (
	"image/color"
	"math"
	"math/rand"
)

const (
	// DefaultParticles is how many pieces one play spawns.
	DefaultParticles = 80
	// Gravity is added to the vertical velocity every frame.
	Gravity = 0.02
)

// Palette holds the confetti colours.
var Palette = []color.RGBA{
	{R: 0xff, G: 0xb8, B: 0x6b, A: 0xff},
	{R: 0x7c, G: 0xe7, B: 0xc7, A: 0xff},
	{R: 0x8b, G: 0xe9, B: 0xfd, A: 0xff},
	{R: 0xff, G: 0x8b, B: 0xcb, A: 0xff},
	{R: 0xca, G: 0xa2, B: 0xff, A: 0xff},
}

// Particle is one falling rectangle. Positions are in surface pixels,
// velocities in pixels per frame and rotation in radians.
type Particle struct {
	X, Y   float64
	W, H   float64
	VX, VY float64
	Rot    float64
	VR     float64
	Color  color.RGBA
}

// Spawn creates n particles spread across the surface width and stacked
// above its top edge, so they rain in over the first frames.
func Spawn(rnd *rand.Rand, width, height float64, n int) []Particle {
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = Particle{
			X:     rnd.Float64() * width,
			Y:     rnd.Float64() * -height,
			W:     6 + rnd.Float64()*8,
			H:     8 + rnd.Float64()*8,
			VX:    -2 + rnd.Float64()*4,
			VY:    2 + rnd.Float64()*6,
			Color: Palette[rnd.Intn(len(Palette))],
			Rot:   rnd.Float64() * math.Pi * 2,
			VR:    -0.1 + rnd.Float64()*0.2,
		}
	}
	return particles
}

// Step advances every particle by one frame.
func Step(particles []Particle) {
	for i := range particles {
		p := &particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.VY += Gravity
		p.Rot += p.VR
	}
}
