package service

import "errors"

var (
	ErrGameNotFound          = errors.New("game not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrAnswerNotFound        = errors.New("answer not found for current question")
	ErrNameTaken             = errors.New("player name already taken in this lobby")
	ErrGameNotInProgress     = errors.New("game is not in progress")
	ErrNoFaceoffInProgress   = errors.New("no faceoff in progress")
	ErrStealNotAllowed       = errors.New("steal not allowed before three strikes")
	ErrAnswerAlreadyRevealed = errors.New("answer already revealed")
)
