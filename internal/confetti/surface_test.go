package confetti

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	pink  = Palette[3]
)

func TestRasterFillRectAxisAligned(t *testing.T) {
	r := NewRaster(20, 20, white)
	r.FillRect(10, 10, 4, 6, 0, pink)

	img := r.Snapshot()
	require.Equal(t, pink, img.RGBAAt(10, 10), "centre")
	require.Equal(t, pink, img.RGBAAt(8, 7), "corner")
	require.Equal(t, white, img.RGBAAt(12, 10), "outside width")
	require.Equal(t, white, img.RGBAAt(10, 13), "outside height")
}

func TestRasterFillRectRotated(t *testing.T) {
	r := NewRaster(40, 40, white)
	// A 2×20 bar turned a quarter turn lies horizontally.
	r.FillRect(20, 20, 2, 20, math.Pi/2, pink)

	img := r.Snapshot()
	require.Equal(t, pink, img.RGBAAt(12, 20))
	require.Equal(t, white, img.RGBAAt(20, 12))
}

func TestRasterClipsAndClears(t *testing.T) {
	r := NewRaster(10, 10, white)
	r.FillRect(-50, -50, 10, 10, 0.3, pink)
	r.FillRect(0, 0, 6, 6, 0, pink)

	require.Equal(t, pink, r.Snapshot().RGBAAt(0, 0))
	r.Clear()
	require.Equal(t, white, r.Snapshot().RGBAAt(0, 0))
}
