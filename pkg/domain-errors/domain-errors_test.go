package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives shared by the codecs,
// the fee resolver and the HTTP layer.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeLookup, Message: "permit does not exist"}
		s.Equal("permit does not exist", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeValidation}
		s.Equal("validation_failed", err.Error())
	})
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	s.Run("same code different message", func() {
		a := &Error{Code: CodeValidation, Message: "license_fee out of range"}
		b := &Error{Code: CodeValidation, Message: "missing segment"}
		s.True(a.Is(b))
	})

	s.Run("different codes", func() {
		s.False((&Error{Code: CodeValidation}).Is(&Error{Code: CodeLookup}))
	})

	s.Run("non-domain target", func() {
		s.False((&Error{Code: CodeNotFound}).Is(errors.New("not found")))
	})

	s.Run("through fmt wrapping", func() {
		inner := New(CodeLookup, "unknown permit")
		wrapped := fmt.Errorf("quote: %w", inner)
		s.True(errors.Is(wrapped, &Error{Code: CodeLookup}))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves original domain code", func() {
		original := New(CodeValidation, "date_of_birth is not RFC3339")
		wrapped := Wrap(original, CodeInternal, "encode licensee")

		var domainErr *Error
		s.Require().True(errors.As(wrapped, &domainErr))
		s.Equal(CodeValidation, domainErr.Code)
		s.Equal("encode licensee", domainErr.Message)
	})

	s.Run("uses provided code for plain errors", func() {
		sentinel := errors.New("value exceeds width")
		wrapped := Wrap(sentinel, CodeValidation, "license_fee exceeds 136 bits")

		s.True(HasCode(wrapped, CodeValidation))
		s.True(errors.Is(wrapped, sentinel))
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.True(HasCode(New(CodeLookup, "x"), CodeLookup))
	s.False(HasCode(New(CodeLookup, "x"), CodeValidation))
	s.False(HasCode(errors.New("plain"), CodeLookup))
	s.False(HasCode(nil, CodeLookup))
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Equal(CodeConflict, CodeOf(New(CodeConflict, "user exists")))
	s.Equal(CodeUnavailable, CodeOf(fmt.Errorf("ledger: %w", New(CodeUnavailable, "rpc down"))))
	s.Equal(CodeInternal, CodeOf(errors.New("boom")))
}
