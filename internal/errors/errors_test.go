package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "battle not found",
			expected: "NOT_FOUND: battle not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "hp must be a number",
			expected: "INVALID_ARGUMENT: hp must be a number",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.NotFound("battle not found").
		WithMeta("battle_id", int64(7))

	s.Equal(int64(7), err.Meta["battle_id"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("disk on fire")
	wrapped := errors.Wrap(baseErr, "failed to save battle")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to save battle", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("record not found")
	wrapped := errors.Wrap(baseErr, "battle not found")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
	s.Nil(errors.Transport(nil, "should be nil"))
}

func (s *ErrorsTestSuite) TestTransport() {
	s.Run("plain error becomes unavailable", func() {
		err := errors.Transport(fmt.Errorf("connection refused"), "failed to load battle")
		s.True(errors.IsUnavailable(err))
		s.Contains(err.Error(), "connection refused")
	})

	s.Run("structured error keeps its code", func() {
		err := errors.Transport(errors.NotFound("battle 3 not found"), "failed to load battle")
		s.True(errors.IsNotFound(err))
	})
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("other")
	err3 := errors.InvalidArgument("test")

	s.True(err1.Is(err2))
	s.False(err1.Is(err3))
	s.True(stderrors.Is(errors.Wrap(err1, "wrapped"), err2))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	invalidErr := errors.InvalidArgument("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.True(errors.IsNotFound(notFoundErr))
	s.True(errors.IsNotFound(wrappedErr))
	s.False(errors.IsNotFound(invalidErr))
	s.True(errors.IsInvalidArgument(invalidErr))
	s.True(errors.IsFailedPrecondition(errors.FailedPrecondition("test")))
	s.True(errors.IsFailedPrecondition(errors.FailedPreconditionf("needs %s", "postgres")))
	s.Equal(errors.CodeInternal, errors.GetCode(errors.Internal("bad state")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("user facing").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped message")

	s.Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal("value", wrapped.Meta["key"])
}

func (s *ErrorsTestSuite) TestCodeFromHTTPStatus() {
	testCases := []struct {
		status   int
		expected errors.Code
	}{
		{http.StatusOK, errors.CodeOK},
		{http.StatusCreated, errors.CodeOK},
		{http.StatusBadRequest, errors.CodeInvalidArgument},
		{http.StatusUnauthorized, errors.CodeUnauthenticated},
		{http.StatusNotFound, errors.CodeNotFound},
		{http.StatusConflict, errors.CodeAlreadyExists},
		{http.StatusInternalServerError, errors.CodeUnavailable},
		{http.StatusBadGateway, errors.CodeUnavailable},
	}

	for _, tc := range testCases {
		s.Run(http.StatusText(tc.status), func() {
			s.Equal(tc.expected, errors.CodeFromHTTPStatus(tc.status))
		})
	}
}
