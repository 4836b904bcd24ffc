package quality_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/quality"
)

type ScorerTestSuite struct {
	suite.Suite
	scorer *quality.Scorer
}

func TestScorerSuite(t *testing.T) {
	suite.Run(t, new(ScorerTestSuite))
}

func (s *ScorerTestSuite) SetupTest() {
	scorer, err := quality.New(nil)
	s.Require().NoError(err)
	s.scorer = scorer
}

func (s *ScorerTestSuite) TestScoreIsWeightedSum() {
	session := &drawing.Session{Strokes: []drawing.Stroke{
		{Points: []drawing.Point{{X: 0, Y: 0}, {X: 30, Y: 40}}},
		{Points: []drawing.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}},
	}}

	// 2 strokes * 2.0 + 70 length * 0.5 + 5 points * 0.1
	s.InDelta(39.5, s.scorer.Score(session), 1e-9)
	s.Equal(0.0, s.scorer.Score(nil))
}

func (s *ScorerTestSuite) TestLengthOutweighsStalling() {
	stalled := &drawing.Session{Strokes: []drawing.Stroke{{Points: make([]drawing.Point, 40)}}}
	traced := &drawing.Session{Strokes: []drawing.Stroke{
		{Points: []drawing.Point{{X: 0, Y: 0}, {X: 40, Y: 0}}},
	}}

	s.Greater(s.scorer.Score(traced), s.scorer.Score(stalled))
}

func (s *ScorerTestSuite) TestMultiplierClamps() {
	for _, score := range []float64{-10, 0, 19.99, 20} {
		s.Equal(1.3, s.scorer.Multiplier(score), "score %v", score)
	}
	for _, score := range []float64{200, 200.01, 5000} {
		s.Equal(1.8, s.scorer.Multiplier(score), "score %v", score)
	}
	s.InDelta(1.55, s.scorer.Multiplier(110), 1e-9)
}

func (s *ScorerTestSuite) TestNonFiniteGeometryGetsFloor() {
	session := &drawing.Session{Strokes: []drawing.Stroke{
		{Points: []drawing.Point{{X: 0, Y: 0}, {X: math.NaN(), Y: 5}}},
		{Points: []drawing.Point{{X: 0, Y: 0}, {X: math.Inf(1), Y: 0}}},
	}}

	score, multiplier := s.scorer.Rate(session)
	s.Equal(0.0, score)
	s.Equal(1.3, multiplier)
	s.Equal(1.3, s.scorer.Multiplier(math.NaN()))
	s.Equal(1.8, s.scorer.Multiplier(math.Inf(1)))
}

func (s *ScorerTestSuite) TestMultiplierIsMonotonic() {
	prev := s.scorer.Multiplier(-50)
	for score := -50.0; score <= 300; score += 0.5 {
		m := s.scorer.Multiplier(score)
		s.GreaterOrEqual(m, prev, "score %v", score)
		s.GreaterOrEqual(m, 1.0)
		prev = m
	}
}

func (s *ScorerTestSuite) TestRate() {
	session := &drawing.Session{Strokes: []drawing.Stroke{
		{Points: []drawing.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}},
	}}

	score, multiplier := s.scorer.Rate(session)
	s.InDelta(52.2, score, 1e-9)
	s.InDelta(s.scorer.Multiplier(score), multiplier, 1e-12)
}

func (s *ScorerTestSuite) TestInvalidConfig() {
	_, err := quality.New(&quality.Config{
		LengthWeight:      -1,
		MinScore:          10,
		MaxScore:          10,
		FloorMultiplier:   0.9,
		CeilingMultiplier: 0.5,
	})
	s.True(errors.IsInvalidArgument(err))
}
