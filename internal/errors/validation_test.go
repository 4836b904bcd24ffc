package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("MaxStrokes", "must be between 1 and 100")
	ve.AddFieldError("CanvasSize", "must not be negative")

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal(
		"validation failed: CanvasSize: must not be negative; MaxStrokes: must be between 1 and 100",
		ve.Error(),
	)

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("Key", "is required").
		Fieldf("MaxStrokes", "must be between %d and %d", 1, 100).
		RequiredField("Repository").
		InvalidField("Store", "unknown backend")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.Assert().Nil(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "garden:roster", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("Key", tc.value, vb)
			if tc.shouldErr {
				s.Assert().Error(vb.Build())
			} else {
				s.Assert().NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateFloatRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateFloatRange("ConfidenceFloor", 0.4, 0, 1, vb)
	s.Assert().NoError(vb.Build())

	errors.ValidateFloatRange("ConfidenceFloor", 1.5, 0, 1, vb)
	s.Assert().Error(vb.Build())
}

func (s *ValidationTestSuite) TestValidateEnum() {
	allowed := []string{"file", "redis", "sqlite"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("Store", "redis", allowed, vb)
	s.Assert().NoError(vb.Build())

	errors.ValidateEnum("Store", "mongo", allowed, vb)
	err := vb.Build()
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "must be one of: file, redis, sqlite")
}
