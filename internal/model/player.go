package model

import "time"

// Player belongs to exactly one game and is deleted with it.
type Player struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	GameCode string    `json:"gameCode" bson:"gameCode"`
	Name     string    `json:"name" bson:"name"`
	Team     Team      `json:"team" bson:"team"`
	JoinedAt time.Time `json:"joinedAt" bson:"joinedAt"`
}
