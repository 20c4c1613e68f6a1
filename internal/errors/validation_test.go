package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("name", "is required")
	ve.AddFieldErrorf("hp", "must be at least %d", 0)

	s.True(ve.HasErrors())
	s.Equal("validation failed: hp: must be at least 0; name: is required", ve.Error())

	err := ve.ToError()
	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		Fieldf("port", "must be between %d and %d", 1, 65535).
		RequiredField("driver").
		InvalidField("mode", "not a combat mode")

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "Goblin Ambush", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("name", tc.value, vb)
			if tc.shouldErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRangeAndEnum() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("port", 0, 1, 65535, vb)
	errors.ValidateEnum("driver", "mongo", []string{"redis", "postgres"}, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Contains(err.Error(), "port: must be between 1 and 65535")
	s.Contains(err.Error(), "driver: must be one of: redis, postgres")
}
