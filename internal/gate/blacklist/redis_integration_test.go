//go:build integration

package blacklist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"estategate/pkg/testutil/containers"
)

type RedisRegistrySuite struct {
	suite.Suite
	redis *containers.RedisContainer
	reg   *RedisRegistry
}

func TestRedisRegistrySuite(t *testing.T) {
	suite.Run(t, new(RedisRegistrySuite))
}

func (s *RedisRegistrySuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.reg = NewRedisRegistry(s.redis.Client.Client, WithKey("test:blacklist"))
}

func (s *RedisRegistrySuite) TearDownSuite() {
	s.redis.Terminate(context.Background())
}

func (s *RedisRegistrySuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisRegistrySuite) TestMembership() {
	ctx := context.Background()
	s.Require().NoError(s.reg.Seed(ctx, []string{"BLOCK123", " BLOCK123 ", "X-9"}))

	ok, err := s.reg.IsBlacklisted(ctx, "BLOCK123")
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.reg.IsBlacklisted(ctx, "block123")
	s.Require().NoError(err)
	s.False(ok)

	codes, err := s.reg.List(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"BLOCK123", "X-9"}, codes)
}

func (s *RedisRegistrySuite) TestSeedReplacesPreviousSet() {
	ctx := context.Background()
	s.Require().NoError(s.reg.Seed(ctx, []string{"OLD1"}))
	s.Require().NoError(s.reg.Seed(ctx, []string{"NEW1"}))

	ok, err := s.reg.IsBlacklisted(ctx, "OLD1")
	s.Require().NoError(err)
	s.False(ok)

	codes, err := s.reg.List(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"NEW1"}, codes)
}
