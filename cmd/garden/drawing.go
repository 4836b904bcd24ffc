package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/recorder"
)

// drawingFile is the on-disk drawing format
type drawingFile struct {
	Color   string         `json:"color"`
	Strokes [][][2]float64 `json:"strokes"`
}

// readDrawing loads a drawing file ("-" for stdin) and replays it through a
// recorder configured with the stroke ceiling. colorOverride, when set,
// replaces the file's color.
func readDrawing(path, colorOverride string, stdin io.Reader, maxStrokes int) (*drawing.Session, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("drawing file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read drawing %s", path)
	}

	var file drawingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "drawing is not valid JSON").
			WithMeta("path", path)
	}

	name := file.Color
	if colorOverride != "" {
		name = colorOverride
	}
	color, err := drawing.ParseColor(name)
	if err != nil {
		return nil, err
	}

	strokes := make([][]drawing.Point, len(file.Strokes))
	for i, stroke := range file.Strokes {
		strokes[i] = make([]drawing.Point, len(stroke))
		for j, p := range stroke {
			strokes[i][j] = drawing.Point{X: p[0], Y: p[1]}
		}
	}

	rec, err := recorder.New(&recorder.Config{
		MaxStrokes:       maxStrokes,
		MinPointDistance: recorder.DefaultMinPointDistance,
		CanvasSize:       recorder.DefaultCanvasSize,
	})
	if err != nil {
		return nil, err
	}

	session, err := rec.Record(strokes, color)
	if err != nil {
		return nil, err
	}
	if dropped := len(file.Strokes) - len(session.Strokes); dropped > 0 {
		slog.Warn("drawing strokes were dropped",
			"path", path,
			"dropped", dropped,
			"max_strokes", maxStrokes)
	}

	return session, nil
}
