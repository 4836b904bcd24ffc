package drawing_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

func TestSnapshot(t *testing.T) {
	session := &drawing.Session{
		Color: drawing.ColorGreen,
		Strokes: []drawing.Stroke{
			{Points: []drawing.Point{{X: 10, Y: 10}, {X: 50, Y: 10}}},
			{Points: []drawing.Point{{X: 30, Y: 30}}},
		},
	}

	data, err := session.Snapshot(16)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	// the horizontal stroke spans the top row, the dot sits mid-canvas
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.NotEqual(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(15, 0).RGBA()
	assert.NotEqual(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(8, 8).RGBA()
	assert.NotEqual(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(0, 15).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}

func TestSnapshotIsDeterministic(t *testing.T) {
	session := &drawing.Session{
		Color:   drawing.ColorRed,
		Strokes: []drawing.Stroke{{Points: []drawing.Point{{X: 0, Y: 0}, {X: 20, Y: 35}, {X: 40, Y: 5}}}},
	}

	first, err := session.Snapshot(drawing.DefaultSnapshotSize)
	require.NoError(t, err)
	second, err := session.Snapshot(drawing.DefaultSnapshotSize)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSnapshotErrors(t *testing.T) {
	_, err := (&drawing.Session{Color: drawing.ColorBlue}).Snapshot(32)
	assert.True(t, errors.IsFailedPrecondition(err))

	session := &drawing.Session{Strokes: []drawing.Stroke{{Points: []drawing.Point{{X: 1, Y: 1}}}}}
	_, err = session.Snapshot(1)
	assert.True(t, errors.IsInvalidArgument(err))
}
