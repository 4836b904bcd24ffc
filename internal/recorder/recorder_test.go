package recorder_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/recorder"
)

type RecorderTestSuite struct {
	suite.Suite
	rec *recorder.Recorder
}

func TestRecorderSuite(t *testing.T) {
	suite.Run(t, new(RecorderTestSuite))
}

func (s *RecorderTestSuite) SetupTest() {
	rec, err := recorder.New(&recorder.Config{
		MaxStrokes:       3,
		MinPointDistance: 1,
		CanvasSize:       100,
	})
	s.Require().NoError(err)
	s.rec = rec
}

func (s *RecorderTestSuite) drawLine(from, to drawing.Point) {
	s.Require().True(s.rec.BeginStroke())
	s.rec.AddPoint(from)
	s.rec.AddPoint(to)
	s.rec.EndStroke()
}

func (s *RecorderTestSuite) TestAddPointWithoutOpenStrokeIsDropped() {
	s.False(s.rec.AddPoint(drawing.Point{X: 1, Y: 1}))
	s.Equal(0, s.rec.StrokeCount())
}

func (s *RecorderTestSuite) TestCloseSamplesAreDropped() {
	s.Require().True(s.rec.BeginStroke())
	s.True(s.rec.AddPoint(drawing.Point{X: 10, Y: 10}))
	s.False(s.rec.AddPoint(drawing.Point{X: 10.5, Y: 10}))
	s.True(s.rec.AddPoint(drawing.Point{X: 12, Y: 10}))
	s.True(s.rec.EndStroke())

	g := s.rec.Geometry()
	s.Equal(2, g.PointCount)
	s.InDelta(2.0, g.PathLength, 1e-9)
}

func (s *RecorderTestSuite) TestStrokeCeiling() {
	for i := 0; i < 3; i++ {
		s.drawLine(drawing.Point{X: 0, Y: float64(i * 10)}, drawing.Point{X: 10, Y: float64(i * 10)})
	}

	s.False(s.rec.BeginStroke())
	s.False(s.rec.AddPoint(drawing.Point{X: 50, Y: 50}))
	s.Equal(3, s.rec.StrokeCount())
}

func (s *RecorderTestSuite) TestPointsAreClampedToCanvas() {
	s.drawLine(drawing.Point{X: -20, Y: 50}, drawing.Point{X: 140, Y: 50})

	session, err := s.rec.Finish(drawing.ColorRed)
	s.Require().NoError(err)
	s.Equal([]drawing.Point{{X: 0, Y: 50}, {X: 100, Y: 50}}, session.Strokes[0].Points)
}

func (s *RecorderTestSuite) TestEmptyStrokeIsDiscarded() {
	s.Require().True(s.rec.BeginStroke())
	s.False(s.rec.EndStroke())
	s.Equal(0, s.rec.StrokeCount())
}

func (s *RecorderTestSuite) TestFinishWithoutStrokes() {
	session, err := s.rec.Finish(drawing.ColorGreen)

	s.Nil(session)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *RecorderTestSuite) TestFinishClosesOpenStrokeAndResets() {
	s.drawLine(drawing.Point{X: 0, Y: 0}, drawing.Point{X: 10, Y: 0})
	s.Require().True(s.rec.BeginStroke())
	s.rec.AddPoint(drawing.Point{X: 20, Y: 20})

	session, err := s.rec.Finish(drawing.ColorBlue)
	s.Require().NoError(err)
	s.Len(session.Strokes, 2)
	s.Equal(drawing.ColorBlue, session.Color)
	s.Equal(0, s.rec.StrokeCount())

	_, err = s.rec.Finish(drawing.ColorBlue)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *RecorderTestSuite) TestFinishRejectsUnknownColor() {
	s.drawLine(drawing.Point{X: 0, Y: 0}, drawing.Point{X: 10, Y: 0})

	_, err := s.rec.Finish(drawing.Color("purple"))
	s.True(errors.IsInvalidArgument(err))
	s.Equal(1, s.rec.StrokeCount())
}

func (s *RecorderTestSuite) TestReset() {
	s.drawLine(drawing.Point{X: 0, Y: 0}, drawing.Point{X: 10, Y: 0})
	s.rec.Reset()
	s.Equal(0, s.rec.StrokeCount())
}

func (s *RecorderTestSuite) TestRecordReplaysStrokes() {
	session, err := s.rec.Record([][]drawing.Point{
		{{X: 0, Y: 0}, {X: 10, Y: 0}},
		{},
		{{X: 0, Y: 5}, {X: 0, Y: 5.2}, {X: 0, Y: 15}},
		{{X: 50, Y: 50}, {X: 60, Y: 60}},
		{{X: 70, Y: 70}, {X: 80, Y: 80}},
	}, drawing.ColorGreen)
	s.Require().NoError(err)

	g := session.Geometry()
	s.Equal(3, g.StrokeCount)
	s.Equal(6, g.PointCount)
}

func (s *RecorderTestSuite) TestInvalidConfig() {
	_, err := recorder.New(&recorder.Config{MaxStrokes: 0, CanvasSize: -1})
	s.True(errors.IsInvalidArgument(err))

	rec, err := recorder.New(nil)
	s.NoError(err)
	s.NotNil(rec)
}
