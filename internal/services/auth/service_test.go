package auth

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	s.Require().NoError(err)

	s.service, err = New(Config{TokenHash: string(hash)}, testutil.NopLogger())
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestVerifySucceeds() {
	s.True(s.service.Enabled())
	s.NoError(s.service.Verify("s3cret"))
}

func (s *ServiceSuite) TestVerifyUsesCacheOnRepeat() {
	s.Require().NoError(s.service.Verify("s3cret"))
	s.NoError(s.service.Verify("s3cret"))
	s.True(s.service.hasCache)
}

func (s *ServiceSuite) TestVerifyFailsWithWrongToken() {
	s.ErrorIs(s.service.Verify("guess"), model.ErrUnauthorized)
}

func (s *ServiceSuite) TestVerifyFailsWithEmptyToken() {
	s.ErrorIs(s.service.Verify(""), model.ErrUnauthorized)
}

func (s *ServiceSuite) TestWrongTokenAfterCachedSuccess() {
	s.Require().NoError(s.service.Verify("s3cret"))
	s.ErrorIs(s.service.Verify("s3cret!"), model.ErrUnauthorized)
}

func (s *ServiceSuite) TestDisabledAcceptsAnything() {
	service, err := New(Config{}, testutil.NopLogger())
	s.Require().NoError(err)

	s.False(service.Enabled())
	s.NoError(service.Verify(""))
}

func (s *ServiceSuite) TestNewRejectsMalformedHash() {
	_, err := New(Config{TokenHash: "not-a-hash"}, testutil.NopLogger())
	s.Error(err)
}

func (s *ServiceSuite) TestHashTokenRoundTrip() {
	hash, err := HashToken("abc")
	s.Require().NoError(err)

	service, err := New(Config{TokenHash: hash}, testutil.NopLogger())
	s.Require().NoError(err)
	s.NoError(service.Verify("abc"))

	_, err = HashToken("")
	s.Error(err)
}
