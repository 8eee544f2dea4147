package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MemorySuite struct {
	suite.Suite
	store *Memory
	ctx   context.Context
}

func (s *MemorySuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(MemorySuite))
}

func (s *MemorySuite) TestRoundTrip() {
	s.Run("get before any set reports not found", func() {
		_, err := s.store.Get(s.ctx, "travel-quotes")
		s.Require().ErrorIs(err, ErrNotFound)
	})

	s.Run("set then get returns the value", func() {
		s.Require().NoError(s.store.Set(s.ctx, "travel-quotes", `[{"id":"TRV1"}]`))

		got, err := s.store.Get(s.ctx, "travel-quotes")
		s.Require().NoError(err)
		s.Equal(`[{"id":"TRV1"}]`, got)
	})

	s.Run("set fully replaces the previous value", func() {
		s.Require().NoError(s.store.Set(s.ctx, "golf-quotes", `[1]`))
		s.Require().NoError(s.store.Set(s.ctx, "golf-quotes", `[1,2]`))

		got, err := s.store.Get(s.ctx, "golf-quotes")
		s.Require().NoError(err)
		s.Equal(`[1,2]`, got)
	})
}

func (s *MemorySuite) TestDelete() {
	s.Require().NoError(s.store.Set(s.ctx, "marine-quotes", `[]`))
	s.Require().NoError(s.store.Delete(s.ctx, "marine-quotes"))

	_, err := s.store.Get(s.ctx, "marine-quotes")
	s.Require().ErrorIs(err, ErrNotFound)

	s.Run("deleting an absent key is a no-op", func() {
		s.Require().NoError(s.store.Delete(s.ctx, "marine-quotes"))
	})
}

func (s *MemorySuite) TestKeysAreIndependent() {
	s.Require().NoError(s.store.Set(s.ctx, "travel-quotes", `[1]`))
	s.Require().NoError(s.store.Set(s.ctx, "golf-quotes", `[2]`))

	travel, err := s.store.Get(s.ctx, "travel-quotes")
	s.Require().NoError(err)
	golf, err := s.store.Get(s.ctx, "golf-quotes")
	s.Require().NoError(err)

	s.Equal(`[1]`, travel)
	s.Equal(`[2]`, golf)
}
