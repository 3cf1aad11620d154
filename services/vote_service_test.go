package services

import (
	"imposterparty/game"
	"imposterparty/models"
)

// startedGame creates a 3-player game in round 1 and splits the roster into
// the impostor and the crew.
func (s *ServiceTestSuite) startedGame() (*models.Game, models.Player, []models.Player) {
	g, _ := s.newLobby(3)
	_, err := s.rounds.StartGame(g.RoomCode, 3, nil)
	s.Require().NoError(err)

	var imposter models.Player
	var crew []models.Player
	for _, p := range s.reloadPlayers(g.ID) {
		if p.IsImposter {
			imposter = p
		} else {
			crew = append(crew, p)
		}
	}
	s.Require().NotEmpty(imposter.ID)
	s.Require().Len(crew, 2)
	return s.reloadGame(g.RoomCode), imposter, crew
}

func (s *ServiceTestSuite) playerByID(id string) models.Player {
	var p models.Player
	s.Require().NoError(s.db.Where("id = ?", id).First(&p).Error)
	return p
}

func (s *ServiceTestSuite) TestCastVote() {
	g, imposter, crew := s.startedGame()

	s.Require().NoError(s.votes.CastVote(g.RoomCode, crew[0].ID, imposter.ID, nil))

	s.Equal(1, s.playerByID(imposter.ID).Votes)
	s.True(s.playerByID(crew[0].ID).HasVoted)
}

func (s *ServiceTestSuite) TestCastVoteTwiceIsRejected() {
	g, imposter, crew := s.startedGame()

	s.Require().NoError(s.votes.CastVote(g.RoomCode, crew[0].ID, imposter.ID, nil))
	err := s.votes.CastVote(g.RoomCode, crew[0].ID, crew[1].ID, nil)
	s.ErrorIs(err, game.ErrAlreadyVoted)

	// The rejected cast changed no count.
	s.Equal(1, s.playerByID(imposter.ID).Votes)
	s.Equal(0, s.playerByID(crew[1].ID).Votes)
}

func (s *ServiceTestSuite) TestCastVoteBeforeStart() {
	g, players := s.newLobby(3)

	err := s.votes.CastVote(g.RoomCode, players[0].ID, players[1].ID, nil)
	s.ErrorIs(err, game.ErrGameNotStarted)
}

func (s *ServiceTestSuite) TestCastVoteUnknownPlayers() {
	g, _, crew := s.startedGame()

	s.ErrorIs(s.votes.CastVote(g.RoomCode, "nobody", crew[0].ID, nil), game.ErrPlayerNotFound)
	s.ErrorIs(s.votes.CastVote(g.RoomCode, crew[0].ID, "nobody", nil), game.ErrPlayerNotFound)
}

func (s *ServiceTestSuite) TestSelfVoteAllowedByDefault() {
	g, _, crew := s.startedGame()

	s.NoError(s.votes.CastVote(g.RoomCode, crew[0].ID, crew[0].ID, nil))
	s.Equal(1, s.playerByID(crew[0].ID).Votes)
}

func (s *ServiceTestSuite) TestRestrictiveVotePolicy() {
	strict := NewVoteService(s.db, s.cache, game.VotePolicy{})
	g, imposter, crew := s.startedGame()

	s.ErrorIs(strict.CastVote(g.RoomCode, crew[0].ID, crew[0].ID, nil), game.ErrCannotVoteSelf)

	s.Require().NoError(s.db.Model(&models.Player{}).Where("id = ?", crew[1].ID).
		Update("is_eliminated", true).Error)
	s.ErrorIs(strict.CastVote(g.RoomCode, crew[0].ID, crew[1].ID, nil), game.ErrEliminatedTarget)

	// Neither rejected cast consumed the voter's vote.
	s.NoError(strict.CastVote(g.RoomCode, crew[0].ID, imposter.ID, nil))
}

// Scenario: 2 votes land on a crew member, 1 on the impostor. The impostor
// escapes and collects 20; everyone else stays put.
func (s *ServiceTestSuite) TestRevealImposterEscapes() {
	g, imposter, crew := s.startedGame()

	s.Require().NoError(s.votes.CastVote(g.RoomCode, crew[0].ID, crew[1].ID, nil))
	s.Require().NoError(s.votes.CastVote(g.RoomCode, imposter.ID, crew[1].ID, nil))
	s.Require().NoError(s.votes.CastVote(g.RoomCode, crew[1].ID, imposter.ID, nil))

	result, err := s.votes.RevealResults(g.RoomCode, nil)
	s.Require().NoError(err)

	s.Equal(crew[1].ID, result.Outcome.MostVotedID)
	s.Equal(imposter.ID, result.Outcome.ImposterID)
	s.False(result.Outcome.PlayersWin)
	s.False(result.AlreadyRevealed)

	s.Equal(game.ImposterWinPoints, s.playerByID(imposter.ID).Score)
	s.Equal(0, s.playerByID(crew[0].ID).Score)
	s.Equal(0, s.playerByID(crew[1].ID).Score)
	s.True(s.reloadGame(g.RoomCode).ResultsRevealed)
}

func (s *ServiceTestSuite) TestRevealPlayersWin() {
	g, imposter, crew := s.startedGame()

	s.Require().NoError(s.votes.CastVote(g.RoomCode, crew[0].ID, imposter.ID, nil))
	s.Require().NoError(s.votes.CastVote(g.RoomCode, crew[1].ID, imposter.ID, nil))
	s.Require().NoError(s.votes.CastVote(g.RoomCode, imposter.ID, crew[0].ID, nil))

	result, err := s.votes.RevealResults(g.RoomCode, nil)
	s.Require().NoError(err)

	s.True(result.Outcome.PlayersWin)
	s.Equal(0, s.playerByID(imposter.ID).Score)
	s.Equal(game.CrewWinPoints, s.playerByID(crew[0].ID).Score)
	s.Equal(game.CrewWinPoints, s.playerByID(crew[1].ID).Score)
}

func (s *ServiceTestSuite) TestDoubleRevealAwardsNothing() {
	g, imposter, crew := s.startedGame()

	s.Require().NoError(s.votes.CastVote(g.RoomCode, crew[0].ID, imposter.ID, nil))
	s.Require().NoError(s.votes.CastVote(g.RoomCode, crew[1].ID, imposter.ID, nil))
	s.Require().NoError(s.votes.CastVote(g.RoomCode, imposter.ID, crew[0].ID, nil))

	first, err := s.votes.RevealResults(g.RoomCode, nil)
	s.Require().NoError(err)
	s.False(first.AlreadyRevealed)

	second, err := s.votes.RevealResults(g.RoomCode, nil)
	s.Require().NoError(err)
	s.True(second.AlreadyRevealed)
	s.Equal(first.Outcome, second.Outcome)

	s.Equal(game.CrewWinPoints, s.playerByID(crew[0].ID).Score, "a retried reveal re-awards nothing")
	s.Equal(game.CrewWinPoints, s.playerByID(crew[1].ID).Score)
	s.Equal(0, s.playerByID(imposter.ID).Score)
}

func (s *ServiceTestSuite) TestRevealWithoutAllVotesStillComputes() {
	// Reveal gating on "everyone voted" lives in the UI; the engine does not
	// block an early reveal.
	g, imposter, crew := s.startedGame()

	s.Require().NoError(s.votes.CastVote(g.RoomCode, crew[0].ID, imposter.ID, nil))

	result, err := s.votes.RevealResults(g.RoomCode, nil)
	s.Require().NoError(err)
	s.Equal(imposter.ID, result.Outcome.MostVotedID)
	s.True(result.Outcome.PlayersWin)
}
