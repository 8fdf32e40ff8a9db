package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arrakeen/dune-api/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestEmptyBuilderReturnsNil() {
	s.Assert().NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestBuilderAccumulatesFields() {
	err := errors.NewValidationBuilder().
		RequiredField("Name").
		InvalidField("Quality", "must be an integer").
		Build()

	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	meta := errors.GetMeta(err)
	fields, ok := meta["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	s.Assert().Equal([]string{"is required"}, fields["Name"])
	s.Assert().Equal([]string{"is invalid: must be an integer"}, fields["Quality"])
}

func (s *ValidationTestSuite) TestErrorMessageIsDeterministic() {
	ve := errors.NewValidationError()
	ve.AddFieldError("b", "second")
	ve.AddFieldError("a", "first")

	// Sorted field order keeps messages stable across runs.
	s.Assert().Equal("validation failed: a: first; b: second", ve.Error())
}

func (s *ValidationTestSuite) TestValidateHelpers() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Name", "  ", vb)
	errors.ValidateRange("Value", 12, 4, 8, vb)

	err := vb.Build()
	s.Require().Error(err)

	vb2 := errors.NewValidationBuilder()
	errors.ValidateRequired("Name", "Chani", vb2)
	errors.ValidateRange("Value", 6, 4, 8, vb2)
	s.Assert().NoError(vb2.Build())
}
