package confetti

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpawnIsDeterministicForSeed(t *testing.T) {
	a := Spawn(rand.New(rand.NewSource(42)), 800, 600, DefaultParticles)
	b := Spawn(rand.New(rand.NewSource(42)), 800, 600, DefaultParticles)

	require.Len(t, a, DefaultParticles)
	require.Equal(t, a, b)
}

func TestSpawnRanges(t *testing.T) {
	const width, height = 320.0, 200.0
	for _, p := range Spawn(rand.New(rand.NewSource(7)), width, height, 500) {
		require.True(t, p.X >= 0 && p.X < width, "x out of range: %v", p.X)
		require.True(t, p.Y >= -height && p.Y <= 0, "y should start above the surface: %v", p.Y)
		require.True(t, p.W >= 6 && p.W < 14, "w out of range: %v", p.W)
		require.True(t, p.H >= 8 && p.H < 16, "h out of range: %v", p.H)
		require.True(t, p.VX >= -2 && p.VX < 2, "vx out of range: %v", p.VX)
		require.True(t, p.VY >= 2 && p.VY < 8, "vy out of range: %v", p.VY)
		require.True(t, p.Rot >= 0 && p.Rot < 2*math.Pi, "rot out of range: %v", p.Rot)
		require.True(t, p.VR >= -0.1 && p.VR < 0.1, "vr out of range: %v", p.VR)
		require.Contains(t, Palette, p.Color)
	}
}

func TestStepIntegratesVelocityAndGravity(t *testing.T) {
	ps := []Particle{{X: 10, Y: -5, VX: 1.5, VY: 3, Rot: 0.5, VR: 0.1}}

	Step(ps)
	Step(ps)

	p := ps[0]
	require.InDelta(t, 13, p.X, 1e-9)
	require.InDelta(t, 1.02, p.Y, 1e-9)
	require.InDelta(t, 3.04, p.VY, 1e-9)
	require.InDelta(t, 0.7, p.Rot, 1e-9)
}
