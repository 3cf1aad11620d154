package services

import (
	"sort"

	"imposterparty/game"
	"imposterparty/models"
)

// Scenario: create game, 3 players join, host starts with 3 rounds.
func (s *ServiceTestSuite) TestStartGame() {
	g, _ := s.newLobby(3)

	started, err := s.rounds.StartGame(g.RoomCode, 3, nil)
	s.Require().NoError(err)

	s.Equal(models.StatusPlaying, started.Status)
	s.Equal(1, started.CurrentRound)
	s.Equal(3, started.TotalRounds)
	s.NotEmpty(started.SecretWord)
	s.NotEmpty(started.Category)
	s.False(started.ResultsRevealed)
	s.Equal([]string{started.SecretWord}, started.UsedWordList())

	players := s.reloadPlayers(g.ID)
	s.Require().Len(players, 3)

	imposters := 0
	orders := make([]int, 0, len(players))
	for _, p := range players {
		if p.IsImposter {
			imposters++
		}
		s.Equal(0, p.Score)
		s.Equal(0, p.Votes)
		s.False(p.HasVoted)
		s.False(p.IsEliminated)
		orders = append(orders, p.TurnOrder)
	}
	s.Equal(1, imposters, "exactly one impostor per round")

	sort.Ints(orders)
	s.Equal([]int{0, 1, 2}, orders, "turn order is a permutation")
}

func (s *ServiceTestSuite) TestStartGameInsufficientPlayers() {
	g, _ := s.newLobby(2)

	_, err := s.rounds.StartGame(g.RoomCode, 3, nil)
	s.ErrorIs(err, game.ErrInsufficientPlayers)
	s.Equal(models.StatusWaiting, s.reloadGame(g.RoomCode).Status)
}

func (s *ServiceTestSuite) TestStartGameTwice() {
	g, _ := s.newLobby(3)

	_, err := s.rounds.StartGame(g.RoomCode, 3, nil)
	s.Require().NoError(err)

	_, err = s.rounds.StartGame(g.RoomCode, 3, nil)
	s.ErrorIs(err, game.ErrGameAlreadyStarted)
	s.Equal(1, s.reloadGame(g.RoomCode).CurrentRound, "a repeated start never advances the round")
}

func (s *ServiceTestSuite) TestStartGameDefaultRounds() {
	g, _ := s.newLobby(3)

	started, err := s.rounds.StartGame(g.RoomCode, 0, nil)
	s.Require().NoError(err)
	s.Equal(game.DefaultTotalRounds, started.TotalRounds)
}

// Scenario: round 1 completes, host starts round 2.
func (s *ServiceTestSuite) TestStartNewRound() {
	g, players := s.newLobby(3)

	started, err := s.rounds.StartGame(g.RoomCode, 3, nil)
	s.Require().NoError(err)
	firstWord := started.SecretWord

	// Dirty the per-round state the way a played round would.
	for _, p := range players {
		s.Require().NoError(s.db.Model(&models.Player{}).Where("id = ?", p.ID).
			Updates(map[string]interface{}{"votes": 2, "has_voted": true, "is_eliminated": true}).Error)
	}
	s.Require().NoError(s.db.Model(&models.Game{}).Where("id = ?", g.ID).
		Update("results_revealed", true).Error)

	advanced, err := s.rounds.StartNewRound(g.RoomCode, nil)
	s.Require().NoError(err)

	s.Equal(2, advanced.CurrentRound)
	s.False(advanced.ResultsRevealed)
	s.NotEqual(firstWord, advanced.SecretWord, "no repeat before pool exhaustion")
	s.Equal([]string{firstWord, advanced.SecretWord}, advanced.UsedWordList())

	imposters := 0
	for _, p := range s.reloadPlayers(g.ID) {
		if p.IsImposter {
			imposters++
		}
		s.Equal(0, p.Votes)
		s.False(p.HasVoted)
		s.False(p.IsEliminated)
	}
	s.Equal(1, imposters)
}

func (s *ServiceTestSuite) TestStartNewRoundPreservesScores() {
	g, players := s.newLobby(3)
	_, err := s.rounds.StartGame(g.RoomCode, 3, nil)
	s.Require().NoError(err)

	s.Require().NoError(s.db.Model(&models.Player{}).Where("id = ?", players[0].ID).
		Update("score", 20).Error)

	_, err = s.rounds.StartNewRound(g.RoomCode, nil)
	s.Require().NoError(err)

	reloaded := s.reloadPlayers(g.ID)
	s.Equal(20, reloaded[0].Score, "scores carry across rounds")
}

func (s *ServiceTestSuite) TestStartNewRoundBeforeStart() {
	g, _ := s.newLobby(3)

	_, err := s.rounds.StartNewRound(g.RoomCode, nil)
	s.ErrorIs(err, game.ErrGameNotStarted)
}

func (s *ServiceTestSuite) TestStartNewRoundAfterLastRound() {
	g, _ := s.newLobby(3)
	_, err := s.rounds.StartGame(g.RoomCode, 1, nil)
	s.Require().NoError(err)

	_, err = s.rounds.StartNewRound(g.RoomCode, nil)
	s.ErrorIs(err, game.ErrNoMoreRounds)
	s.Equal(1, s.reloadGame(g.RoomCode).CurrentRound)
}

// Scenario: host ends the game mid-round; nothing else may transition it.
func (s *ServiceTestSuite) TestEndGame() {
	g, players := s.newLobby(3)
	_, err := s.rounds.StartGame(g.RoomCode, 3, nil)
	s.Require().NoError(err)

	ended, err := s.rounds.EndGame(g.RoomCode, nil)
	s.Require().NoError(err)
	s.Equal(models.StatusFinished, ended.Status)

	_, err = s.rounds.StartNewRound(g.RoomCode, nil)
	s.ErrorIs(err, game.ErrGameFinished)

	err = s.votes.CastVote(g.RoomCode, players[0].ID, players[1].ID, nil)
	s.ErrorIs(err, game.ErrGameFinished)

	_, err = s.rounds.EndGame(g.RoomCode, nil)
	s.ErrorIs(err, game.ErrGameFinished)
}

func (s *ServiceTestSuite) TestEndGameFromLobby() {
	g, _ := s.newLobby(1)

	ended, err := s.rounds.EndGame(g.RoomCode, nil)
	s.Require().NoError(err)
	s.Equal(models.StatusFinished, ended.Status)
}

func (s *ServiceTestSuite) TestRoundBoundInvariant() {
	g, _ := s.newLobby(3)
	_, err := s.rounds.StartGame(g.RoomCode, 2, nil)
	s.Require().NoError(err)

	for {
		loaded := s.reloadGame(g.RoomCode)
		s.LessOrEqual(loaded.CurrentRound, loaded.TotalRounds)
		if _, err := s.rounds.StartNewRound(g.RoomCode, nil); err != nil {
			s.ErrorIs(err, game.ErrNoMoreRounds)
			break
		}
	}
	s.Equal(2, s.reloadGame(g.RoomCode).CurrentRound)
}
