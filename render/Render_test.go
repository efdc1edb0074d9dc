package render

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/gridlearn/action"
	"github.com/samuelfneumann/gridlearn/environment/maze"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// values evaluates each action to the same value in every state
type values [action.Count]float64

func (v values) Evaluate(_ ts.Position, a action.Action) float64 {
	return v[a]
}

const grid = "2 0 1\n0 0 0\n1 0 3\n"

func mustGrid(t *testing.T) *maze.Grid {
	t.Helper()
	g, err := maze.LoadGrid(strings.NewReader(grid))
	require.NoError(t, err)
	return g
}

// at returns the colour at the centre of cell p
func at(t *testing.T, img interface {
	At(x, y int) color.Color
}, p ts.Position) color.RGBA {
	t.Helper()
	x := p.Col*DefaultCellSize + DefaultCellSize/2
	y := p.Row*DefaultCellSize + DefaultCellSize/2
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestFrameCells(t *testing.T) {
	g := mustGrid(t)
	img := Frame(g, ts.Position{Row: 1, Col: 1}, nil, DefaultCellSize)

	bounds := img.Bounds()
	assert.Equal(t, 3*DefaultCellSize, bounds.Dx())
	assert.Equal(t, 3*DefaultCellSize, bounds.Dy())

	white := color.RGBA{255, 255, 255, 255}
	blue := color.RGBA{0, 0, 255, 255}
	black := color.RGBA{0, 0, 0, 255}

	assert.Equal(t, white, at(t, img, ts.Position{Row: 0, Col: 2}))
	assert.Equal(t, white, at(t, img, ts.Position{Row: 2, Col: 0}))
	assert.Equal(t, color.RGBA{255, 255, 0, 255},
		at(t, img, ts.Position{Row: 2, Col: 2}))
	assert.Equal(t, blue, at(t, img, ts.Position{Row: 0, Col: 0}))
	assert.Equal(t, blue, at(t, img, ts.Position{Row: 1, Col: 1}))
	assert.Equal(t, black, at(t, img, ts.Position{Row: 1, Col: 0}))
}

func TestFrameValueMap(t *testing.T) {
	g := mustGrid(t)

	// Up is positive, Down is the largest magnitude, Left is negative
	v := values{5, 10, -10, 0}
	img := Frame(g, ts.Position{Row: 1, Col: 1}, v, DefaultCellSize)

	assert.Equal(t, color.RGBA{0, 127, 0, 255},
		at(t, img, ts.Position{Row: 0, Col: 1}))
	assert.Equal(t, color.RGBA{0, 255, 0, 255},
		at(t, img, ts.Position{Row: 2, Col: 1}))
	assert.Equal(t, color.RGBA{255, 0, 0, 255},
		at(t, img, ts.Position{Row: 1, Col: 0}))

	// A zero value is not shaded
	assert.Equal(t, color.RGBA{0, 0, 0, 255},
		at(t, img, ts.Position{Row: 1, Col: 2}))
}

func TestFrameSkipsTargets(t *testing.T) {
	g := mustGrid(t)
	img := Frame(g, ts.Position{Row: 2, Col: 1}, values{0, 0, 0, -5},
		DefaultCellSize)
	assert.Equal(t, color.RGBA{255, 255, 0, 255},
		at(t, img, ts.Position{Row: 2, Col: 2}))
}

func TestValueColour(t *testing.T) {
	c, ok := ValueColour(2, 4)
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{0, 127, 0, 255}, c)

	c, ok = ValueColour(-8, 4)
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, c)

	_, ok = ValueColour(0, 4)
	assert.False(t, ok)
}

func TestMaxAbs(t *testing.T) {
	g := mustGrid(t)
	assert.Equal(t, 7.0, MaxAbs(g, values{1, -7, 3, 0}))
	assert.Equal(t, 1.0, MaxAbs(g, values{}))
}

func TestText(t *testing.T) {
	g := mustGrid(t)
	text := Text(g, ts.Position{Row: 1, Col: 1},
		[]ts.Position{{Row: 1, Col: 2}})

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "S ")
	assert.Contains(t, lines[0], "# ")
	assert.Contains(t, lines[1], "A ")
	assert.Contains(t, lines[1], ". ")
	assert.Contains(t, lines[2], "T ")
}

func TestRecorder(t *testing.T) {
	g := mustGrid(t)
	dir := filepath.Join(t.TempDir(), "frames")
	r := NewRecorder(g, values{}, dir, 2)

	for episode := 0; episode < 4; episode++ {
		r.Track(ts.New(ts.First, 0, ts.Position{}, 0))
		r.Track(ts.New(ts.Last, -1, ts.Position{Row: 1}, 1))
	}
	require.NoError(t, r.Save())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	assert.ElementsMatch(t, []string{
		"episode-2-step-0.png", "episode-2-step-1.png",
		"episode-4-step-0.png", "episode-4-step-1.png",
	}, names)
}

func TestSavePNGError(t *testing.T) {
	g := mustGrid(t)
	err := SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png"), g,
		ts.Position{}, nil, DefaultCellSize)
	assert.Error(t, err)
}
