package services

import "context"

func (s *ServiceTestSuite) TestSeatStoreClaimAndLookup() {
	ctx := context.Background()

	s.Require().NoError(s.seats.Claim(ctx, "AB2C", "session-1", "player-1"))

	playerID, err := s.seats.Lookup(ctx, "AB2C", "session-1")
	s.Require().NoError(err)
	s.Equal("player-1", playerID)
}

func (s *ServiceTestSuite) TestSeatStoreMissingSeat() {
	playerID, err := s.seats.Lookup(context.Background(), "AB2C", "session-9")
	s.Require().NoError(err)
	s.Equal("", playerID)
}

func (s *ServiceTestSuite) TestSeatStoreScopedPerRoom() {
	ctx := context.Background()

	// One browser session can hold a different seat in each room.
	s.Require().NoError(s.seats.Claim(ctx, "AB2C", "session-1", "player-1"))
	s.Require().NoError(s.seats.Claim(ctx, "XY2Z", "session-1", "player-2"))

	first, err := s.seats.Lookup(ctx, "AB2C", "session-1")
	s.Require().NoError(err)
	second, err := s.seats.Lookup(ctx, "XY2Z", "session-1")
	s.Require().NoError(err)

	s.Equal("player-1", first)
	s.Equal("player-2", second)
}

func (s *ServiceTestSuite) TestSeatStoreRelease() {
	ctx := context.Background()

	s.Require().NoError(s.seats.Claim(ctx, "AB2C", "session-1", "player-1"))
	s.Require().NoError(s.seats.Release(ctx, "AB2C", "session-1"))

	playerID, err := s.seats.Lookup(ctx, "AB2C", "session-1")
	s.Require().NoError(err)
	s.Equal("", playerID)
}
