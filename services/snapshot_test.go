package services

import "imposterparty/models"

func (s *ServiceTestSuite) TestRoomCacheRefreshTracksMutations() {
	g, players := s.newLobby(3)

	snap := s.cache.Get(g.RoomCode)
	s.Require().NotNil(snap)
	s.Len(snap.Players, 3)
	s.Equal(models.StatusWaiting, snap.Game.Status)

	_, err := s.rounds.StartGame(g.RoomCode, 3, nil)
	s.Require().NoError(err)

	snap = s.cache.Get(g.RoomCode)
	s.Require().NotNil(snap)
	s.Equal(models.StatusPlaying, snap.Game.Status)
	s.Equal(1, snap.Game.CurrentRound)
	for i, p := range snap.Players {
		s.Equal(players[i].ID, p.ID, "snapshot players keep join order")
	}
}

func (s *ServiceTestSuite) TestRoomCacheMiss() {
	s.Nil(s.cache.Get("ZZZZ"))
}

func (s *ServiceTestSuite) TestRoomCacheDrop() {
	g, _ := s.newLobby(1)

	s.cache.Drop(g.RoomCode)
	s.Nil(s.cache.Get(g.RoomCode))
}
