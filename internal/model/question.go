package model

// Answer is one slot on a question's board. Revealed-ness is not stored
// here; it lives in Game.RevealedAnswerIDs.
type Answer struct {
	ID     string `json:"id" bson:"id"`
	Text   string `json:"text" bson:"text"`
	Points int    `json:"points" bson:"points"`
}

// Question is a prompt plus its ordered answer board.
type Question struct {
	ID      string   `json:"id" bson:"_id,omitempty"`
	Text    string   `json:"text" bson:"text"`
	Answers []Answer `json:"answers" bson:"answers"`
}
