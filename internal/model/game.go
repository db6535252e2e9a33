package model

import "time"

type Team string

const (
	TeamRed  Team = "RED"
	TeamBlue Team = "BLUE"
)

type GameStatus string

const (
	GameLobby      GameStatus = "LOBBY"
	GameInProgress GameStatus = "IN_PROGRESS"
	GameEnded      GameStatus = "ENDED"
)

// Game is one live session, keyed by its public code. It owns the round,
// faceoff and score sub-state; the question bank is only referenced.
type Game struct {
	Code   string     `json:"code" bson:"code"`
	Topic  string     `json:"topic,omitempty" bson:"topic,omitempty"`
	Status GameStatus `json:"status" bson:"status"`

	RoundNumber     int       `json:"roundNumber" bson:"roundNumber"`
	MaxRounds       int       `json:"maxRounds" bson:"maxRounds"`
	CurrentTeam     *Team     `json:"currentTeam,omitempty" bson:"currentTeam,omitempty"`
	Strikes         int       `json:"strikes" bson:"strikes"`
	RedScore        int       `json:"redScore" bson:"redScore"`
	BlueScore       int       `json:"blueScore" bson:"blueScore"`
	CurrentQuestion *Question `json:"currentQuestion,omitempty" bson:"currentQuestion,omitempty"`

	// Revealed answer ids for the current round. Session-scoped on purpose:
	// the same Question may be in play in many games at once.
	RevealedAnswerIDs []string `json:"revealedAnswerIds" bson:"revealedAnswerIds"`

	Winner *Team `json:"winner,omitempty" bson:"winner,omitempty"`

	// Faceoff sub-state
	RedFaceoffPlayerID  string `json:"redFaceoffPlayerId,omitempty" bson:"redFaceoffPlayerId,omitempty"`
	BlueFaceoffPlayerID string `json:"blueFaceoffPlayerId,omitempty" bson:"blueFaceoffPlayerId,omitempty"`
	RedFaceoffAnswer    string `json:"redFaceoffAnswer,omitempty" bson:"redFaceoffAnswer,omitempty"`
	BlueFaceoffAnswer   string `json:"blueFaceoffAnswer,omitempty" bson:"blueFaceoffAnswer,omitempty"`
	FaceoffInProgress   bool   `json:"faceoffInProgress" bson:"faceoffInProgress"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// IsRevealed reports whether the answer id is revealed in the current round.
func (g *Game) IsRevealed(answerID string) bool {
	for _, id := range g.RevealedAnswerIDs {
		if id == answerID {
			return true
		}
	}
	return false
}

// Reveal marks the answer id revealed for the current round.
func (g *Game) Reveal(answerID string) {
	if !g.IsRevealed(answerID) {
		g.RevealedAnswerIDs = append(g.RevealedAnswerIDs, answerID)
	}
}

// AddPoints credits points to the given team's score.
func (g *Game) AddPoints(team Team, points int) {
	switch team {
	case TeamRed:
		g.RedScore += points
	case TeamBlue:
		g.BlueScore += points
	}
}

// ScoreFor returns the current score of the given team.
func (g *Game) ScoreFor(team Team) int {
	if team == TeamRed {
		return g.RedScore
	}
	return g.BlueScore
}

// ClearFaceoff resets all faceoff sub-state.
func (g *Game) ClearFaceoff() {
	g.FaceoffInProgress = false
	g.RedFaceoffPlayerID = ""
	g.BlueFaceoffPlayerID = ""
	g.RedFaceoffAnswer = ""
	g.BlueFaceoffAnswer = ""
}

// Opponent returns the other team.
func Opponent(team Team) Team {
	if team == TeamRed {
		return TeamBlue
	}
	return TeamRed
}
