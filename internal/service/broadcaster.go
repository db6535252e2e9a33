package service

import "feudlive/internal/model"

// Broadcaster pushes game snapshots to connected viewers (avoids import
// cycle with the ws package). Implementations must never block; publish
// failures are not part of a mutation's contract.
type Broadcaster interface {
	BroadcastGameState(code string, game *model.Game)
}
